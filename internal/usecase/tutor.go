package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"exam-tutor/internal/domain"
)

// TranscriptStore is the subset of the repository the service needs.
type TranscriptStore interface {
	Save(ctx context.Context, ex domain.Exchange) (domain.Exchange, error)
	ListAll(ctx context.Context) ([]domain.Exchange, error)
	ListBySubject(ctx context.Context, subject string) ([]domain.Exchange, error)
	ListByExamType(ctx context.Context, examType string) ([]domain.Exchange, error)
}

// TutorService answers questions and book analyses and keeps the transcript.
type TutorService struct {
	invoker        *Invoker
	store          TranscriptStore
	maxQuestionLen int
	logger         *zap.Logger
}

type ChatInput struct {
	Question string
	Subject  string
	ExamType string
}

type ChatOutput struct {
	ID         int64
	Answer     string
	Timestamp  time.Time
	IsFallback bool
}

type BookInput struct {
	Domain   domain.Domain
	BookName string
	Topic    string
	Chapter  string
	BookID   string
}

type BookOutput struct {
	ID         int64
	Analysis   string
	BookName   string
	Topic      string
	Chapter    string
	Timestamp  time.Time
	IsFallback bool
}

// MessageFilter selects a transcript view. Subject wins when both are set.
type MessageFilter struct {
	Subject  string
	ExamType string
}

// NewTutorService creates a TutorService. A maxQuestionLen of zero disables the
// question length check.
func NewTutorService(inv *Invoker, store TranscriptStore, maxQuestionLen int, logger *zap.Logger) (*TutorService, error) {
	if inv == nil {
		return nil, errors.New("usecase: invoker must not be nil")
	}
	if store == nil {
		return nil, errors.New("usecase: transcript store must not be nil")
	}
	if maxQuestionLen < 0 {
		maxQuestionLen = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TutorService{
		invoker:        inv,
		store:          store,
		maxQuestionLen: maxQuestionLen,
		logger:         logger,
	}, nil
}

// Chat answers a free-form question and records the exchange. Provider
// overload yields the fallback answer with IsFallback set.
func (s *TutorService) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	if strings.TrimSpace(in.Question) == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "empty_question", nil)
	}
	if s.maxQuestionLen > 0 && utf8.RuneCountInString(in.Question) > s.maxQuestionLen {
		return ChatOutput{}, newError(ErrorInvalidInput, "question_too_long", nil)
	}
	subject := strings.TrimSpace(in.Subject)
	examType := strings.TrimSpace(in.ExamType)

	res, err := s.invoker.Resolve(ctx, Invocation{
		Domain:   domain.DomainChat,
		Messages: buildChatMessages(in.Question, subject, examType),
		Question: in.Question,
		Subject:  subject,
	})
	if err != nil {
		return ChatOutput{}, err
	}

	saved, err := s.store.Save(ctx, domain.Exchange{
		Question:   in.Question,
		Answer:     res.Answer,
		Subject:    subject,
		ExamType:   examType,
		IsFallback: res.IsFallback,
	})
	if err != nil {
		return ChatOutput{}, newError(ErrorInternal, "transcript_write_error", err)
	}

	return ChatOutput{
		ID:         saved.ID,
		Answer:     saved.Answer,
		Timestamp:  saved.Timestamp,
		IsFallback: saved.IsFallback,
	}, nil
}

// AnalyzeBook produces a study analysis for a physics, mathematics or biology
// book and records it with the prompt headline as the question.
func (s *TutorService) AnalyzeBook(ctx context.Context, in BookInput) (BookOutput, error) {
	if !in.Domain.IsBookAnalysis() {
		return BookOutput{}, newError(ErrorInvalidInput, "unknown_book_domain", nil)
	}
	bookName := strings.TrimSpace(in.BookName)
	if bookName == "" {
		return BookOutput{}, newError(ErrorInvalidInput, "empty_book_name", nil)
	}
	topic := strings.TrimSpace(in.Topic)
	chapter := strings.TrimSpace(in.Chapter)
	bookID := strings.TrimSpace(in.BookID)

	res, err := s.invoker.Resolve(ctx, Invocation{
		Domain:   in.Domain,
		Messages: buildBookMessages(in.Domain, bookName, topic, chapter, bookID),
		BookName: bookName,
		Subject:  in.Domain.Subject(),
	})
	if err != nil {
		return BookOutput{}, err
	}

	saved, err := s.store.Save(ctx, domain.Exchange{
		Question:   bookHeadline(in.Domain, bookName, topic, chapter),
		Answer:     res.Answer,
		Subject:    in.Domain.Subject(),
		IsFallback: res.IsFallback,
	})
	if err != nil {
		return BookOutput{}, newError(ErrorInternal, "transcript_write_error", err)
	}

	return BookOutput{
		ID:         saved.ID,
		Analysis:   saved.Answer,
		BookName:   bookName,
		Topic:      topic,
		Chapter:    chapter,
		Timestamp:  saved.Timestamp,
		IsFallback: saved.IsFallback,
	}, nil
}

// Messages lists the transcript, narrowed by subject or else by exam type.
func (s *TutorService) Messages(ctx context.Context, f MessageFilter) ([]domain.Exchange, error) {
	var (
		out []domain.Exchange
		err error
	)
	switch {
	case f.Subject != "":
		out, err = s.store.ListBySubject(ctx, f.Subject)
	case f.ExamType != "":
		out, err = s.store.ListByExamType(ctx, f.ExamType)
	default:
		out, err = s.store.ListAll(ctx)
	}
	if err != nil {
		return nil, newError(ErrorInternal, "transcript_read_error", err)
	}
	if out == nil {
		out = []domain.Exchange{}
	}
	return out, nil
}
