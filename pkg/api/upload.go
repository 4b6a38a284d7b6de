package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"
)

// UploadResult is the stored-file reference returned by the upload endpoint.
type UploadResult struct {
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
	Name string `json:"name,omitempty"`
}

// Uploader is the collaborator form fields delegate byte uploads to.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (UploadResult, error)
}

// Client implements Uploader via the generic /upload-file endpoint.
var _ Uploader = (*Client)(nil)

// Upload sends one file as a multipart body and returns the stored reference.
// Uploads use an extended timeout; everything else about the round-trip
// (bearer token, 401 eviction, error parsing) matches regular calls.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (UploadResult, error) {
	result, err := c.uploadFile(ctx, "/upload-file", "file", filename, content)
	if err != nil {
		return UploadResult{}, err
	}
	if result.URL == "" {
		return UploadResult{}, errors.New("api: upload response carried no url")
	}
	return result, nil
}

func (c *Client) uploadFile(ctx context.Context, path, field, filename string, content io.Reader) (UploadResult, error) {
	if ctx == nil {
		return UploadResult{}, errors.New("api: context is required")
	}
	if filename == "" {
		return UploadResult{}, errors.New("api: upload filename is required")
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile(field, filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("api: build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return UploadResult{}, fmt.Errorf("api: read upload content: %w", err)
	}
	if err := form.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("api: finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return UploadResult{}, fmt.Errorf("api: build upload request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.authorize(req)

	uploadClient := &http.Client{
		Timeout:   c.uploadTimeout,
		Transport: c.http.Transport,
	}
	res, err := uploadClient.Do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("api: upload %s: %w", filename, err)
	}
	defer res.Body.Close()

	c.log.Debug("upload",
		zap.String("path", path),
		zap.String("filename", filename),
		zap.Int("status", res.StatusCode),
	)

	var result UploadResult
	if err := c.decodeResponse(http.MethodPost, path, res, &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}
