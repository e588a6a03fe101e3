package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
)

// UploadResult is the attachment endpoint's reply.
type UploadResult struct {
	Code  int             `json:"code"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// URL extracts the file location from Data, which is either a bare string
// or an object with a url field.
func (r *UploadResult) URL() string {
	if r == nil || len(r.Data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Data, &s); err == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(r.Data, &obj); err == nil {
		return obj.URL
	}
	return ""
}

// UploadFile posts an attachment as multipart field "file".
func (c *Client) UploadFile(ctx context.Context, name string, r io.Reader) (*UploadResult, error) {
	req, err := c.multipartRequest(ctx, "/api/upload-file/", "file", name, r)
	if err != nil {
		return nil, err
	}

	var out UploadResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: out.Error}
	}
	return &out, nil
}

// UploadImage posts an inline image as multipart field "upload" and returns
// its URL.
func (c *Client) UploadImage(ctx context.Context, name string, r io.Reader) (string, error) {
	req, err := c.multipartRequest(ctx, "/ckeditor5/upload/", "upload", name, r)
	if err != nil {
		return "", err
	}

	var out struct {
		URL   string          `json:"url"`
		Error json.RawMessage `json:"error"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if msg := errorText(out.Error); msg != "" {
		return "", &APIError{StatusCode: http.StatusOK, Message: msg}
	}
	if out.URL == "" {
		return "", &APIError{StatusCode: http.StatusOK, Message: GenericErrorMessage}
	}
	return c.ResolveURL(out.URL), nil
}

func (c *Client) multipartRequest(ctx context.Context, path, field, name string, r io.Reader) (*http.Request, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, fmt.Errorf("upload: file name is required")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upload: read %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}
