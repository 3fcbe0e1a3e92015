package sharesdk

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
)

// filePath builds the /files/{name} path with the file name escaped.
func filePath(name string) string {
	return "/files/" + url.PathEscape(name)
}

// ListFiles returns the names of all files in the store.
func (s *Session) ListFiles(ctx context.Context) ([]string, error) {
	resp, err := s.doSignedRequest(ctx, http.MethodGet, "/files", nil, nil)
	if err != nil {
		return nil, err
	}

	var files []string
	if err := decodeJSON(resp, &files); err != nil {
		return nil, err
	}

	return files, nil
}

// ReadFile returns the text content of a file.
func (s *Session) ReadFile(ctx context.Context, name string) (string, error) {
	resp, err := s.doSignedRequest(ctx, http.MethodGet, filePath(name), nil, nil)
	if err != nil {
		return "", err
	}

	body, err := readSuccessBody(resp)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// DownloadFile returns a file's raw bytes together with the content type the
// server reported.
func (s *Session) DownloadFile(ctx context.Context, name string) ([]byte, string, error) {
	resp, err := s.doSignedRequest(ctx, http.MethodGet, filePath(name), nil, nil)
	if err != nil {
		return nil, "", err
	}

	body, err := readSuccessBody(resp)
	if err != nil {
		return nil, "", err
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// UploadFile stores contents under name. The body is a multipart form with a
// single "contents" field, which is what the server's write endpoint expects.
// 403 maps to ErrPermissionDenied; 409 ("file already exists") surfaces as
// *RequestError.
func (s *Session) UploadFile(ctx context.Context, name string, contents []byte) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	field, err := writer.CreateFormField("contents")
	if err != nil {
		return fmt.Errorf("sharesdk: failed to build upload body: %w", err)
	}
	if _, err := field.Write(contents); err != nil {
		return fmt.Errorf("sharesdk: failed to build upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("sharesdk: failed to build upload body: %w", err)
	}

	headers := map[string]string{
		"Content-Type": writer.FormDataContentType(),
	}

	resp, err := s.doSignedRequest(ctx, http.MethodPut, filePath(name), &buf, headers)
	if err != nil {
		return err
	}

	return checkStatus(resp)
}
