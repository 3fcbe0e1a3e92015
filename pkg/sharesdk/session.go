package sharesdk

import (
	"crypto/rsa"
	"fmt"
	"sync"

	"github.com/tidegate/fileshare/pkg/cryptox"
)

// Session is an authenticated session holding the two credential factors: the
// bearer token and the parsed private signing key. Sessions are created by
// SDKClient.Login or SDKClient.Resume and never reach into ambient state; the
// store they were built from is the only thing they write back to, on Logout.
//
// Sessions are safe for concurrent use, though the protocol itself is
// sequential: one user action, one call in flight.
type Session struct {
	client *SDKClient
	store  SessionStore

	mu         sync.RWMutex
	token      string
	privateKey *rsa.PrivateKey
}

// newSession builds a session from stored or freshly issued credentials,
// parsing the private key once up front.
func newSession(client *SDKClient, store SessionStore, state SessionState) (*Session, error) {
	s := &Session{
		client: client,
		store:  store,
		token:  state.Token,
	}

	if state.PrivateKey != "" {
		key, err := cryptox.ParseRSAPrivateKeyPEM([]byte(state.PrivateKey))
		if err != nil {
			return nil, fmt.Errorf("sharesdk: invalid private key in session state: %w", err)
		}
		s.privateKey = key
	}

	return s, nil
}

// Token returns the current bearer token, which may be empty.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Logout purges the session: both credential factors are dropped from memory
// and the backing store is cleared unconditionally. The session is unusable
// afterwards; subsequent calls fail with ErrNoPrivateKey.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.privateKey = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("sharesdk: failed to clear session store: %w", err)
	}
	return nil
}
