package fileshare_test

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/tidegate/fileshare/pkg/cryptox"
)

/*
 * In-process stand-in for the fileshare server, faithful to its contract:
 * it provisions RSA keys at login, embeds the public key in the bearer
 * token, and verifies the detached signature on every authenticated
 * request. Tests in this package exercise the SDK end to end against it.
 */

const (
	tokenSecret   = "e2e-token-secret"
	tokenLifetime = time.Hour
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type linkRecord struct {
	Username string `json:"username"`
	FileName string `json:"file_name"`
}

type fakeServer struct {
	t *testing.T

	mu       sync.Mutex
	users    map[string]string // username -> password
	files    map[string][]byte // file name -> contents
	links    map[string]linkRecord
	writable bool // false simulates an account without upload/share rights
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()

	fs := &fakeServer{
		t:        t,
		users:    make(map[string]string),
		files:    make(map[string][]byte),
		links:    make(map[string]linkRecord),
		writable: true,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /user/register", fs.handleRegister)
	mux.HandleFunc("POST /user/login", fs.handleLogin)
	mux.HandleFunc("GET /files", fs.authenticated(fs.handleListFiles))
	mux.HandleFunc("GET /files/{name}", fs.authenticated(fs.handleGetFile))
	mux.HandleFunc("PUT /files/{name}", fs.authenticated(fs.handlePutFile))
	mux.HandleFunc("PUT /link", fs.authenticated(fs.handleCreateLink))
	mux.HandleFunc("GET /links", fs.authenticated(fs.handleListLinks))
	mux.HandleFunc("DELETE /link/{id}", fs.authenticated(fs.handleRevokeLink))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return fs, server
}

func errorBody(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (fs *fakeServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		errorBody(w, http.StatusBadRequest, "Malformed request")
		return
	}

	if !usernamePattern.MatchString(creds.Username) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, taken := fs.users[creds.Username]; taken {
		errorBody(w, http.StatusConflict, "Username already taken")
		return
	}
	if len(creds.Password) < 8 {
		errorBody(w, http.StatusBadRequest, "Password is too weak")
		return
	}

	fs.users[creds.Username] = creds.Password
	w.WriteHeader(http.StatusOK)
}

func (fs *fakeServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		errorBody(w, http.StatusBadRequest, "Malformed request")
		return
	}

	fs.mu.Lock()
	password, known := fs.users[creds.Username]
	fs.mu.Unlock()

	if !known || password != creds.Password {
		errorBody(w, http.StatusBadRequest, "Invalid username or password")
		return
	}

	// A fresh key pair is provisioned on every login. The private half goes
	// to the client; the public half travels inside the token.
	keyPEM, err := cryptox.GenerateRSAKeyPKCS8(2048)
	require.NoError(fs.t, err)
	key, err := cryptox.ParseRSAPrivateKeyPEM(keyPEM)
	require.NoError(fs.t, err)
	publicPEM, err := cryptox.PublicKeyPEM(&key.PublicKey)
	require.NoError(fs.t, err)

	claims := jwt.MapClaims{
		"sub":        creds.Username,
		"public_key": string(publicPEM),
		"exp":        time.Now().Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(tokenSecret))
	require.NoError(fs.t, err)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"token":       token,
		"private_key": string(keyPEM),
	})
}

// authenticated enforces both factors: a verifiable bearer token and a
// signature over timestamp + "+" + absolute URL using the key the token
// carries.
func (fs *fakeServer) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if bearer == "" || bearer == r.Header.Get("Authorization") {
			errorBody(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		parsed, err := jwt.Parse(bearer, func(*jwt.Token) (any, error) {
			return []byte(tokenSecret), nil
		})
		if err != nil || !parsed.Valid {
			errorBody(w, http.StatusUnauthorized, "Invalid bearer token")
			return
		}

		claims := parsed.Claims.(jwt.MapClaims)
		publicPEM, _ := claims["public_key"].(string)
		public, err := cryptox.ParseRSAPublicKeyPEM([]byte(publicPEM))
		if err != nil {
			errorBody(w, http.StatusUnauthorized, "Token carries no usable key")
			return
		}

		if !verifyRequestSignature(r, public) {
			errorBody(w, http.StatusUnauthorized, "Bad request signature")
			return
		}

		next(w, r)
	}
}

func verifyRequestSignature(r *http.Request, public *rsa.PublicKey) bool {
	timestamp := r.Header.Get("Timestamp")
	sig, err := base64.StdEncoding.DecodeString(r.Header.Get("Hash"))
	if err != nil || timestamp == "" {
		return false
	}

	message := fmt.Sprintf("%s+http://%s%s", timestamp, r.Host, r.RequestURI)
	return cryptox.VerifySHA256(public, []byte(message), sig) == nil
}

func (fs *fakeServer) handleListFiles(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	names := make([]string, 0, len(fs.files))
	for name := range fs.files {
		names = append(names, name)
	}
	fs.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(names)
}

func (fs *fakeServer) handleGetFile(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	contents, ok := fs.files[r.PathValue("name")]
	fs.mu.Unlock()

	if !ok {
		errorBody(w, http.StatusNotFound, "File not found")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(contents)
}

func (fs *fakeServer) handlePutFile(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	writable := fs.writable
	fs.mu.Unlock()

	if !writable {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		errorBody(w, http.StatusBadRequest, "Malformed upload")
		return
	}
	file, _, err := r.FormFile("contents")
	if err != nil {
		errorBody(w, http.StatusBadRequest, "Missing contents field")
		return
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		errorBody(w, http.StatusBadRequest, "Unreadable upload")
		return
	}

	name := r.PathValue("name")

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, exists := fs.files[name]; exists {
		errorBody(w, http.StatusConflict, "File already exists")
		return
	}
	fs.files[name] = contents
	w.WriteHeader(http.StatusOK)
}

func (fs *fakeServer) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	writable := fs.writable
	fs.mu.Unlock()

	if !writable {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	var req struct {
		FileName string `json:"file_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorBody(w, http.StatusBadRequest, "Malformed request")
		return
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, exists := fs.files[req.FileName]; !exists {
		errorBody(w, http.StatusNotFound, "File not found")
		return
	}

	id := strings.ToLower(ulid.Make().String()[:16])
	fs.links[id] = linkRecord{Username: "e2e", FileName: req.FileName}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(id)
}

func (fs *fakeServer) handleListLinks(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	snapshot := make(map[string]linkRecord, len(fs.links))
	for id, link := range fs.links {
		snapshot[id] = link
	}
	fs.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

func (fs *fakeServer) handleRevokeLink(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	id := r.PathValue("id")
	if _, ok := fs.links[id]; !ok {
		errorBody(w, http.StatusNotFound, "Link not found")
		return
	}
	delete(fs.links, id)
	w.WriteHeader(http.StatusOK)
}
