package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"exam-tutor/internal/domain"
	"exam-tutor/internal/repository"
)

type chatResponse struct {
	answer string
	err    error
}

// mockLLM replays responses in order and records every request.
type mockLLM struct {
	mu        sync.Mutex
	responses []chatResponse
	requests  []domain.ChatRequest
	deadlines []time.Time
}

func (m *mockLLM) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	deadline, _ := ctx.Deadline()
	m.deadlines = append(m.deadlines, deadline)
	if len(m.responses) == 0 {
		return "", errors.New("no llm response configured")
	}
	idx := len(m.requests) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx].answer, m.responses[idx].err
}

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func answering(answers ...string) *mockLLM {
	m := &mockLLM{}
	for _, a := range answers {
		m.responses = append(m.responses, chatResponse{answer: a})
	}
	return m
}

func failing(err error) *mockLLM {
	return &mockLLM{responses: []chatResponse{{err: err}}}
}

// blockingLLM waits for the context to end and returns its error.
type blockingLLM struct{}

func (blockingLLM) Chat(ctx context.Context, _ domain.ChatRequest) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type mockStore struct {
	saveErr  error
	listErr  error
	saved    []domain.Exchange
	lastCall string
	lastArg  string
}

func (m *mockStore) Save(_ context.Context, ex domain.Exchange) (domain.Exchange, error) {
	if m.saveErr != nil {
		return domain.Exchange{}, m.saveErr
	}
	ex.ID = int64(len(m.saved) + 1)
	ex.Timestamp = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	m.saved = append(m.saved, ex)
	return ex, nil
}

func (m *mockStore) ListAll(_ context.Context) ([]domain.Exchange, error) {
	m.lastCall, m.lastArg = "all", ""
	return nil, m.listErr
}

func (m *mockStore) ListBySubject(_ context.Context, subject string) ([]domain.Exchange, error) {
	m.lastCall, m.lastArg = "subject", subject
	return nil, m.listErr
}

func (m *mockStore) ListByExamType(_ context.Context, examType string) ([]domain.Exchange, error) {
	m.lastCall, m.lastArg = "examType", examType
	return nil, m.listErr
}

func newTestInvoker(t *testing.T, llm LLMClient) *Invoker {
	t.Helper()
	inv, err := NewInvoker(llm, "gpt-4o", time.Second, nil)
	require.NoError(t, err)
	return inv
}

func newTestService(t *testing.T, llm LLMClient, store TranscriptStore) *TutorService {
	t.Helper()
	svc, err := NewTutorService(newTestInvoker(t, llm), store, 2000, nil)
	require.NoError(t, err)
	return svc
}

func newMemoryService(t *testing.T, llm LLMClient) (*TutorService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	return newTestService(t, llm, store), store
}

func expectError(t *testing.T, err error, code ErrorCode, reason string) {
	t.Helper()
	var usecaseErr *Error
	require.ErrorAs(t, err, &usecaseErr)
	require.Equal(t, code, usecaseErr.Code)
	require.Equal(t, reason, usecaseErr.Reason)
}
