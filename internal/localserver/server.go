// Package localserver exposes the Lambda proxy handler over plain HTTP for
// local development.
package localserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	correlationHeader = "X-Correlation-Id"
	shutdownTimeout   = 10 * time.Second
	// bodyOverhead leaves room for multipart framing and base64 growth on top
	// of the upload cap the handler enforces.
	bodyOverhead = 1 << 20
)

// ProxyHandler is the signature of the Lambda API Gateway proxy handler.
type ProxyHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type Server struct {
	handler ProxyHandler
	logger  *zap.Logger
	maxBody int64
	router  *chi.Mux
}

// New creates a Server that proxies every route to h.
func New(h ProxyHandler, maxUploadBytes int64, logger *zap.Logger) (*Server, error) {
	if h == nil {
		return nil, errors.New("localserver: handler must not be nil")
	}
	if maxUploadBytes <= 0 {
		return nil, errors.New("localserver: max upload bytes must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		handler: h,
		logger:  logger,
		maxBody: maxUploadBytes + bodyOverhead,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Handle("/*", http.HandlerFunc(s.proxy))
	s.router = r
	return s, nil
}

func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe binds addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("local server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("local server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) proxy(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is too large")
		return
	}
	if r.Header.Get(correlationHeader) == "" {
		r.Header.Set(correlationHeader, middleware.GetReqID(r.Context()))
	}

	resp, err := s.handler(r.Context(), toProxyRequest(r, body))
	if err != nil {
		s.logger.Error("proxy handler failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An error occurred while processing your request.")
		return
	}
	writeProxyResponse(w, resp)
}

func toProxyRequest(r *http.Request, body []byte) events.APIGatewayProxyRequest {
	req := events.APIGatewayProxyRequest{
		HTTPMethod:                      r.Method,
		Path:                            r.URL.Path,
		Headers:                         make(map[string]string, len(r.Header)),
		MultiValueHeaders:               make(map[string][]string, len(r.Header)),
		QueryStringParameters:           map[string]string{},
		MultiValueQueryStringParameters: map[string][]string{},
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: middleware.GetReqID(r.Context()),
			Identity:  events.APIGatewayRequestIdentity{SourceIP: r.RemoteAddr},
		},
	}
	for k, vs := range r.Header {
		req.Headers[k] = vs[0]
		req.MultiValueHeaders[k] = vs
	}
	for k, vs := range r.URL.Query() {
		req.QueryStringParameters[k] = vs[0]
		req.MultiValueQueryStringParameters[k] = vs
	}

	// API Gateway base64-encodes binary payloads; multipart uploads always are.
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") || !utf8.Valid(body) {
		req.Body = base64.StdEncoding.EncodeToString(body)
		req.IsBase64Encoded = true
	} else {
		req.Body = string(body)
	}
	return req
}

func writeProxyResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	for k, vs := range resp.MultiValueHeaders {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "An error occurred while processing your request.")
			return
		}
		body = decoded
	}
	w.WriteHeader(status)
	_, _ = io.Copy(w, bytes.NewReader(body))
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
