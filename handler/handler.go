package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"exam-tutor/internal/domain"
	"exam-tutor/internal/usecase"
)

const (
	correlationHeader     = "X-Correlation-Id"
	defaultMaxUploadBytes = 10 << 20
)

type TutorUseCase interface {
	Chat(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
	AnalyzeBook(ctx context.Context, in usecase.BookInput) (usecase.BookOutput, error)
	Messages(ctx context.Context, f usecase.MessageFilter) ([]domain.Exchange, error)
	ScanBook(ctx context.Context, in usecase.ScanInput) (domain.ScanResult, error)
}

type chatRequest struct {
	Question string `json:"question" validate:"required"`
	Subject  string `json:"subject"`
	ExamType string `json:"examType"`
}

type bookRequest struct {
	BookName string `json:"bookName" validate:"required"`
	Topic    string `json:"topic"`
	Chapter  string `json:"chapter"`
	BookID   string `json:"bookId"`
}

type chatResponse struct {
	ID         int64     `json:"id"`
	Answer     string    `json:"answer"`
	Timestamp  time.Time `json:"timestamp"`
	IsFallback bool      `json:"isFallback"`
}

type bookResponse struct {
	ID         int64     `json:"id"`
	Analysis   string    `json:"analysis"`
	BookName   string    `json:"bookName"`
	Topic      string    `json:"topic,omitempty"`
	Chapter    string    `json:"chapter,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	IsFallback bool      `json:"isFallback"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// requiredReasons name the rejection for each required field.
var requiredReasons = map[string]string{
	"Question": "empty_question",
	"BookName": "empty_book_name",
}

// reasonMessages turn INVALID_INPUT reasons into client-facing text.
var reasonMessages = map[string]string{
	"empty_question":    "Question is required",
	"question_too_long": "Question is too long",
	"empty_book_name":   "Book name is required",
	"empty_image":       "An image file is required",
	"not_an_image":      "Only image files are allowed",
	"invalid_body":      "Invalid request body",
	"invalid_field":     "Invalid request",
	"missing_file":      "No file uploaded",
	"file_too_large":    "File is too large",
}

type route struct {
	method string
	serve  func(ctx context.Context, req events.APIGatewayProxyRequest) (int, any, error)
}

func (h *Handler) routeTable() map[string]route {
	return map[string]route{
		"/api/chat":                 {method: http.MethodPost, serve: h.chat},
		"/api/messages":             {method: http.MethodGet, serve: h.messages},
		"/api/analyze-physics-book": {method: http.MethodPost, serve: h.analyzeBook(domain.DomainPhysicsBook)},
		"/api/analyze-math-book":    {method: http.MethodPost, serve: h.analyzeBook(domain.DomainMathBook)},
		"/api/analyze-biology-book": {method: http.MethodPost, serve: h.analyzeBook(domain.DomainBiologyBook)},
		"/api/scan-book":            {method: http.MethodPost, serve: h.scanBook},
		"/api/health":               {method: http.MethodGet, serve: h.health},
	}
}

type Handler struct {
	uc             TutorUseCase
	validate       *validator.Validate
	logger         *zap.Logger
	maxUploadBytes int64
	routes         map[string]route
}

type Option func(*Handler)

// WithLogger sets the logger used for request outcomes. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMaxUploadBytes caps the size of the file in a scan upload.
func WithMaxUploadBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

// NewHandler creates a Handler for the tutor routes. The use case must not be nil.
func NewHandler(uc TutorUseCase, opts ...Option) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: use case must not be nil")
	}
	h := &Handler{
		uc:             uc,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		logger:         zap.NewNop(),
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.routes = h.routeTable()
	return h, nil
}

// Handle routes an API Gateway proxy event. It never returns an error; every
// failure is rendered as a JSON response.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	correlationID := correlationIDFrom(req)
	logger := h.logger.With(
		zap.String("correlation_id", correlationID),
		zap.String("method", req.HTTPMethod),
		zap.String("path", req.Path),
	)

	status, body, err := h.dispatch(ctx, req)
	if err != nil {
		status, body = h.renderError(logger, err)
	}

	logger.Info("request handled",
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
	)
	return jsonResponse(status, body, correlationID), nil
}

func (h *Handler) dispatch(ctx context.Context, req events.APIGatewayProxyRequest) (int, any, error) {
	path := req.Path
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	r, ok := h.routes[path]
	if !ok {
		return http.StatusNotFound, errorResponse{Message: "Not found"}, nil
	}
	if !strings.EqualFold(req.HTTPMethod, r.method) {
		return http.StatusMethodNotAllowed, errorResponse{Message: "Method not allowed"}, nil
	}
	return r.serve(ctx, req)
}

func (h *Handler) chat(ctx context.Context, req events.APIGatewayProxyRequest) (int, any, error) {
	var in chatRequest
	if err := h.decode(req, &in); err != nil {
		return 0, nil, err
	}
	out, err := h.uc.Chat(ctx, usecase.ChatInput{
		Question: in.Question,
		Subject:  in.Subject,
		ExamType: in.ExamType,
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, chatResponse{
		ID:         out.ID,
		Answer:     out.Answer,
		Timestamp:  out.Timestamp,
		IsFallback: out.IsFallback,
	}, nil
}

func (h *Handler) analyzeBook(d domain.Domain) func(context.Context, events.APIGatewayProxyRequest) (int, any, error) {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (int, any, error) {
		var in bookRequest
		if err := h.decode(req, &in); err != nil {
			return 0, nil, err
		}
		out, err := h.uc.AnalyzeBook(ctx, usecase.BookInput{
			Domain:   d,
			BookName: in.BookName,
			Topic:    in.Topic,
			Chapter:  in.Chapter,
			BookID:   in.BookID,
		})
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, bookResponse{
			ID:         out.ID,
			Analysis:   out.Analysis,
			BookName:   out.BookName,
			Topic:      out.Topic,
			Chapter:    out.Chapter,
			Timestamp:  out.Timestamp,
			IsFallback: out.IsFallback,
		}, nil
	}
}

func (h *Handler) messages(ctx context.Context, req events.APIGatewayProxyRequest) (int, any, error) {
	out, err := h.uc.Messages(ctx, usecase.MessageFilter{
		Subject:  queryParam(req, "subject"),
		ExamType: queryParam(req, "examType"),
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, out, nil
}

func (h *Handler) health(_ context.Context, _ events.APIGatewayProxyRequest) (int, any, error) {
	return http.StatusOK, healthResponse{Status: "ok"}, nil
}

// decode parses a JSON body into dst and runs its validation tags.
func (h *Handler) decode(req events.APIGatewayProxyRequest, dst any) error {
	body, err := requestBody(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return invalidInput("invalid_body", err)
	}
	return h.check(dst)
}

func (h *Handler) check(v any) error {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		reason, ok := requiredReasons[verrs[0].Field()]
		if !ok {
			reason = "invalid_field"
		}
		return invalidInput(reason, err)
	}
	return invalidInput("invalid_body", err)
}

func (h *Handler) renderError(logger *zap.Logger, err error) (int, errorResponse) {
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) && ucErr.Code == usecase.ErrorInvalidInput {
		logger.Info("request rejected", zap.String("reason", ucErr.Reason), zap.Error(err))
		msg, ok := reasonMessages[ucErr.Reason]
		if !ok {
			msg = reasonMessages["invalid_field"]
		}
		return http.StatusBadRequest, errorResponse{Message: msg}
	}
	logger.Error("request failed", zap.Error(err))
	return http.StatusInternalServerError, errorResponse{Message: "An error occurred while processing your request."}
}

func jsonResponse(status int, body any, correlationID string) events.APIGatewayProxyResponse {
	raw, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		raw = []byte(`{"message":"An error occurred while processing your request."}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: correlationID,
		},
		Body: string(raw),
	}
}

func correlationIDFrom(req events.APIGatewayProxyRequest) string {
	if v := headerValue(req, correlationHeader); v != "" {
		return v
	}
	return newCorrelationID()
}

// headerValue looks a header up case-insensitively in both header maps.
func headerValue(req events.APIGatewayProxyRequest, name string) string {
	for k, v := range req.Headers {
		if strings.EqualFold(k, name) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	for k, vs := range req.MultiValueHeaders {
		if strings.EqualFold(k, name) && len(vs) > 0 && strings.TrimSpace(vs[0]) != "" {
			return strings.TrimSpace(vs[0])
		}
	}
	return ""
}

func queryParam(req events.APIGatewayProxyRequest, name string) string {
	if v := req.QueryStringParameters[name]; v != "" {
		return v
	}
	if vs := req.MultiValueQueryStringParameters[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

var newCorrelationID = func() string {
	return uuid.NewString()
}
