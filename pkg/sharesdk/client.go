package sharesdk

import (
	"net/http"
	"strings"
	"time"

	"github.com/tidegate/fileshare/pkg/jwtx"
)

// SDKClient is a client for the fileshare service. It provides the
// unauthenticated operations (register, login) and creates authenticated
// Sessions, either from a fresh login or by resuming stored credentials.
type SDKClient struct {
	BaseURL string

	// HTTPClient carries no timeout of its own: calls rely on the underlying
	// network stack and on caller-provided contexts, and an in-flight call
	// always runs to completion.
	HTTPClient *http.Client
}

// NewSDKClient creates a new fileshare service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// url builds a complete URL by appending the path to the base URL. The full
// URL, not just the path, is what gets signed: the server reconstructs the
// same absolute form when verifying.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// Resume restores a session from previously stored credentials. This is the
// entry-point routing decision: no stored token, an expired token, or an
// undecodable token all yield ErrAuthExpired and the caller routes to login.
// Liveness is checked only here; an active session is never expired
// client-side mid-use.
func (c *SDKClient) Resume(store SessionStore) (*Session, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}

	if state.Token == "" || !jwtx.IsLive(state.Token, time.Now()) {
		return nil, ErrAuthExpired
	}

	return newSession(c, store, state)
}
