package sharesdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/oklog/ulid/v2"
)

// Header names fixed by the server contract.
const (
	headerHash      = "Hash"
	headerTimestamp = "Timestamp"
	headerRequestID = "X-Request-Id"
)

// doRequest performs an unauthenticated HTTP request (register, login).
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("sharesdk: failed to create request: %w", err)
	}

	req.Header.Set(headerRequestID, ulid.Make().String())
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return resp, nil
}

// doSignedRequest performs an HTTP request carrying both authentication
// factors. A fresh timestamp is generated and signed per call; signatures are
// never reused. The bearer token may legitimately be absent, in which case the
// Authorization header is omitted and the server enforces whichever factors
// the endpoint requires.
func (s *Session) doSignedRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	s.mu.RLock()
	token := s.token
	key := s.privateKey
	s.mu.RUnlock()

	target := s.client.url(path)

	timestamp := timestampNow()
	hash, err := SignRequest(key, timestamp, target)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("sharesdk: failed to create request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set(headerHash, hash)
	req.Header.Set(headerTimestamp, timestamp)
	req.Header.Set(headerRequestID, ulid.Make().String())

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return resp, nil
}

// readBody drains and closes the response body.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

// readSuccessBody reads the body and classifies any non-2xx status first.
func readSuccessBody(resp *http.Response) ([]byte, error) {
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyResponse(resp, body)
	}
	return body, nil
}

// decodeJSON reads the response and decodes a 2xx body into target.
func decodeJSON(resp *http.Response, target any) error {
	body, err := readSuccessBody(resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		return &TransportError{StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

// checkStatus classifies the response, discarding any success body.
func checkStatus(resp *http.Response) error {
	_, err := readSuccessBody(resp)
	return err
}
