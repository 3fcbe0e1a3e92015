package sharesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Register creates a new account. The server answers 422 for usernames with
// invalid characters, 409 when the name is taken, and 400 with a structured
// message for weak or blank passwords; all three surface as *RequestError.
// Registration does not log the user in; call Login afterwards.
func (c *SDKClient) Register(ctx context.Context, username, password string) error {
	body, err := json.Marshal(credentials{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("sharesdk: failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/user/register", bytes.NewReader(body), headers)
	if err != nil {
		return err
	}

	return checkStatus(resp)
}

// Login authenticates with the server and returns an authenticated Session.
// On success the issued bearer token and private key are written to store
// before the session is handed back, so a crash after Login still leaves a
// resumable session behind.
func (c *SDKClient) Login(
	ctx context.Context,
	store SessionStore,
	username, password string,
) (*Session, error) {
	body, err := json.Marshal(credentials{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("sharesdk: failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/user/login", bytes.NewReader(body), headers)
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := decodeJSON(resp, &loginResp); err != nil {
		return nil, err
	}

	state := SessionState{
		Token:      loginResp.Token,
		PrivateKey: loginResp.PrivateKey,
	}
	if err := store.Save(state); err != nil {
		return nil, fmt.Errorf("sharesdk: failed to persist session: %w", err)
	}

	return newSession(c, store, state)
}
