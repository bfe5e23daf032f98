package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"exam-tutor/internal/usecase"
)

const (
	multipartMemory = 32 << 20
	// multipartOverhead is the room left for boundaries, part headers and
	// form fields on top of the file cap.
	multipartOverhead = 1 << 20
)

var errFileTooLarge = errors.New("handler: upload exceeds size cap")

type scanRequest struct {
	BookName     string `validate:"required"`
	BookID       string
	Chapter      string
	ChapterIndex string
}

func (h *Handler) scanBook(ctx context.Context, req events.APIGatewayProxyRequest) (int, any, error) {
	form, err := h.parseMultipart(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = form.RemoveAll() }()

	in := scanRequest{
		BookName:     formValue(form, "bookName"),
		BookID:       formValue(form, "bookId"),
		Chapter:      formValue(form, "chapter"),
		ChapterIndex: formValue(form, "chapterIndex"),
	}
	if err := h.check(&in); err != nil {
		return 0, nil, err
	}

	files := form.File["file"]
	if len(files) == 0 {
		return 0, nil, invalidInput("missing_file", nil)
	}
	image, contentType, err := readUpload(files[0], h.maxUploadBytes)
	if errors.Is(err, errFileTooLarge) {
		return 0, nil, invalidInput("file_too_large", err)
	}
	if err != nil {
		return 0, nil, invalidInput("missing_file", err)
	}

	out, err := h.uc.ScanBook(ctx, usecase.ScanInput{
		Image:        image,
		ContentType:  contentType,
		BookName:     in.BookName,
		BookID:       in.BookID,
		Chapter:      in.Chapter,
		ChapterIndex: in.ChapterIndex,
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, out, nil
}

// parseMultipart reads the proxy body as multipart/form-data. The envelope may
// exceed the file cap by multipartOverhead; the file itself is checked in
// readUpload.
func (h *Handler) parseMultipart(req events.APIGatewayProxyRequest) (*multipart.Form, error) {
	mediaType, params, err := mime.ParseMediaType(headerValue(req, "Content-Type"))
	if err != nil || mediaType != "multipart/form-data" || params["boundary"] == "" {
		return nil, invalidInput("invalid_body", err)
	}

	body, err := requestBody(req)
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > h.maxUploadBytes+multipartOverhead {
		return nil, invalidInput("file_too_large", nil)
	}

	form, err := multipart.NewReader(bytes.NewReader(body), params["boundary"]).ReadForm(multipartMemory)
	if err != nil {
		return nil, invalidInput("invalid_body", err)
	}
	return form, nil
}

func readUpload(fh *multipart.FileHeader, maxBytes int64) ([]byte, string, error) {
	if fh.Size > maxBytes {
		return nil, "", errFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > maxBytes {
		return nil, "", errFileTooLarge
	}
	if len(data) == 0 {
		return nil, "", errors.New("handler: empty upload")
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	return data, contentType, nil
}

// requestBody returns the raw proxy body, decoding it when API Gateway flagged
// it as base64.
func requestBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	body, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return nil, invalidInput("invalid_body", err)
	}
	return body, nil
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return strings.TrimSpace(vs[0])
	}
	return ""
}

func invalidInput(reason string, err error) error {
	return &usecase.Error{Code: usecase.ErrorInvalidInput, Reason: reason, Err: err}
}
