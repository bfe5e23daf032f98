package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"exam-tutor/internal/domain"
)

const (
	defaultTemperature     = 0.7
	defaultProviderTimeout = 30 * time.Second
	quotaExhaustedType     = "insufficient_quota"
)

type LLMClient interface {
	Chat(ctx context.Context, req domain.ChatRequest) (string, error)
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

type providerErrorTyper interface {
	ErrorType() string
}

// Invocation is one prompt pair plus what the fallback text needs.
type Invocation struct {
	Domain   domain.Domain
	Messages []domain.ChatMessage
	Question string
	Subject  string
	BookName string
}

type Resolution struct {
	Answer     string
	IsFallback bool
}

// Invoker makes exactly one provider call per request and substitutes canned
// text when the provider reports overload.
type Invoker struct {
	llm     LLMClient
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewInvoker creates an Invoker. A non-positive timeout uses the default.
func NewInvoker(llm LLMClient, model string, timeout time.Duration, logger *zap.Logger) (*Invoker, error) {
	if llm == nil {
		return nil, errors.New("usecase: llm client must not be nil")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("usecase: model must not be empty")
	}
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{llm: llm, model: model, timeout: timeout, logger: logger}, nil
}

// Resolve returns provider output or, on overload, the fallback text. Every
// other failure is returned as an UPSTREAM_ERROR.
func (inv *Invoker) Resolve(ctx context.Context, in Invocation) (Resolution, error) {
	temperature := defaultTemperature
	answer, err := inv.call(ctx, domain.ChatRequest{
		Messages:    in.Messages,
		Temperature: &temperature,
		MaxTokens:   in.Domain.MaxTokens(),
	})
	if err != nil {
		if isOverload(err) {
			inv.logger.Warn("provider overloaded, using fallback answer",
				zap.String("domain", string(in.Domain)),
				zap.Error(err),
			)
			return Resolution{Answer: fallbackAnswer(in), IsFallback: true}, nil
		}
		inv.logger.Error("provider call failed",
			zap.String("domain", string(in.Domain)),
			zap.Error(err),
		)
		return Resolution{}, newError(ErrorUpstream, "provider_error", err)
	}
	if answer == "" {
		answer = emptyAnswer(in.Domain)
	}
	return Resolution{Answer: answer}, nil
}

// call sends req with the configured model under the per-call timeout.
func (inv *Invoker) call(ctx context.Context, req domain.ChatRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()
	req.Model = inv.model
	return inv.llm.Chat(ctx, req)
}

// isOverload reports whether err is a rate limit or quota exhaustion.
func isOverload(err error) bool {
	if status, ok := upstreamStatusCode(err); ok && status == http.StatusTooManyRequests {
		return true
	}
	var typed providerErrorTyper
	if errors.As(err, &typed) && typed.ErrorType() == quotaExhaustedType {
		return true
	}
	return false
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
