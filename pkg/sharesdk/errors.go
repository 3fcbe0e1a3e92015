package sharesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthExpired reports that no usable session exists: the stored bearer
	// token is missing, expired, or cannot be decoded. The caller should route
	// the user to login.
	ErrAuthExpired = errors.New("sharesdk: not authenticated")

	// ErrNoPrivateKey reports that the session holds no signing key, so no
	// request can be signed. Callers treat this the same as ErrAuthExpired.
	ErrNoPrivateKey = errors.New("sharesdk: no private key in session")

	// ErrPermissionDenied is returned when the server answers 403. It is never
	// retried; the user simply lacks the required role.
	ErrPermissionDenied = errors.New("sharesdk: permission denied")
)

// genericErrorMessage stands in when the server sent no structured error body.
const genericErrorMessage = "the server rejected the request"

// RequestError is a rejected request: a 4xx other than 403. Message carries
// the server's structured error when present.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("sharesdk: request failed (%d): %s", e.StatusCode, e.Message)
}

// TransportError is a network failure or an unclassified server response
// (5xx, unexpected status, malformed body). StatusCode is 0 when the call
// never produced a response.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("sharesdk: transport error (%d): %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("sharesdk: transport error: %v", e.Err)
	default:
		return fmt.Sprintf("sharesdk: transport error (%d): %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// errorResponse is the server's structured error body, e.g.
// {"error": "username already taken"}.
type errorResponse struct {
	Error string `json:"error"`
}

// classifyResponse maps a non-2xx response onto the error taxonomy.
// 400, 409 and 422 are client errors the user can act on; 403 is a distinct
// permission failure; everything else is a transport-level problem.
func classifyResponse(resp *http.Response, body []byte) error {
	switch resp.StatusCode {
	case http.StatusForbidden:
		return ErrPermissionDenied
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		msg := genericErrorMessage
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		return &RequestError{StatusCode: resp.StatusCode, Message: msg}
	default:
		return &TransportError{StatusCode: resp.StatusCode}
	}
}
