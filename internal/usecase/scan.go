package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"exam-tutor/internal/domain"
)

const (
	ocrMaxTokens      = 1500
	analysisMaxTokens = 2000
	noTextExtracted   = "No text could be extracted"
)

type ScanInput struct {
	Image        []byte
	ContentType  string
	BookName     string
	BookID       string
	Chapter      string
	ChapterIndex string
}

// ScanBook extracts the text of a photographed page and asks the provider for
// a structured study summary. Unlike chat there is no fallback: any provider
// failure, overload included, is an UPSTREAM_ERROR. Scans are not recorded.
func (s *TutorService) ScanBook(ctx context.Context, in ScanInput) (domain.ScanResult, error) {
	if len(in.Image) == 0 {
		return domain.ScanResult{}, newError(ErrorInvalidInput, "empty_image", nil)
	}
	if !strings.HasPrefix(in.ContentType, "image/") {
		return domain.ScanResult{}, newError(ErrorInvalidInput, "not_an_image", nil)
	}
	bookName := strings.TrimSpace(in.BookName)
	if bookName == "" {
		return domain.ScanResult{}, newError(ErrorInvalidInput, "empty_book_name", nil)
	}
	bookID := strings.TrimSpace(in.BookID)
	chapter := strings.TrimSpace(in.Chapter)

	s.logger.Info("scanning book page",
		zap.String("book_id", bookID),
		zap.String("chapter_index", in.ChapterIndex),
		zap.Int("image_bytes", len(in.Image)),
	)

	dataURL := fmt.Sprintf("data:%s;base64,%s", in.ContentType, base64.StdEncoding.EncodeToString(in.Image))
	extracted, err := s.invoker.call(ctx, domain.ChatRequest{
		Messages:  buildOCRMessages(dataURL),
		MaxTokens: ocrMaxTokens,
	})
	if err != nil {
		return domain.ScanResult{}, newError(ErrorUpstream, "ocr_error", err)
	}
	if strings.TrimSpace(extracted) == "" {
		extracted = noTextExtracted
	}

	raw, err := s.invoker.call(ctx, domain.ChatRequest{
		Messages:   buildScanAnalysisMessages(extracted, bookName, bookID, chapter),
		MaxTokens:  analysisMaxTokens,
		JSONObject: true,
	})
	if err != nil {
		return domain.ScanResult{}, newError(ErrorUpstream, "scan_analysis_error", err)
	}

	result, err := parseScanResult(raw)
	if err != nil {
		return domain.ScanResult{}, newError(ErrorUpstream, "scan_malformed_response", err)
	}
	return result, nil
}

func parseScanResult(raw string) (domain.ScanResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.ScanResult{}, errors.New("usecase: empty scan analysis")
	}
	var out domain.ScanResult
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return domain.ScanResult{}, fmt.Errorf("usecase: decode scan analysis: %w", err)
	}
	if out.Concepts == nil {
		out.Concepts = []domain.Concept{}
	}
	return out, nil
}
