package sharesdk_test

import (
	"crypto/rsa"
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/tidegate/fileshare/pkg/cryptox"
	"github.com/tidegate/fileshare/pkg/jwtx"
	"github.com/tidegate/fileshare/pkg/sharesdk"
)

// testKeyPEM generates a fresh signing key for a test session.
func testKeyPEM(t *testing.T) (string, *rsa.PrivateKey) {
	t.Helper()

	pemBytes, err := cryptox.GenerateRSAKeyPKCS8(2048)
	require.NoError(t, err)

	key, err := cryptox.ParseRSAPrivateKeyPEM(pemBytes)
	require.NoError(t, err)

	return string(pemBytes), key
}

// testToken mints a bearer token expiring at exp. The signing secret is
// arbitrary; the client decodes tokens without verifying them.
func testToken(t *testing.T, username string, exp time.Time) string {
	t.Helper()

	claims := jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Username: username,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// newTestSession resumes a session against baseURL with freshly minted
// credentials, returning the session and the private key for signature checks.
func newTestSession(t *testing.T, baseURL string) (*sharesdk.Session, *rsa.PrivateKey) {
	t.Helper()

	keyPEM, key := testKeyPEM(t)
	store := sharesdk.NewMemStore()
	require.NoError(t, store.Save(sharesdk.SessionState{
		Token:      testToken(t, "alice", time.Now().Add(time.Hour)),
		PrivateKey: keyPEM,
	}))

	client := sharesdk.NewSDKClient(baseURL)
	session, err := client.Resume(store)
	require.NoError(t, err)

	return session, key
}

// verifySignedHeaders checks the dual-factor headers on a captured request:
// the timestamp and signature must agree with the canonical message form.
func verifySignedHeaders(t *testing.T, pub *rsa.PublicKey, hash, timestamp, fullURL string) {
	t.Helper()

	require.NotEmpty(t, timestamp)
	require.NotEmpty(t, hash)

	sig, err := base64.StdEncoding.DecodeString(hash)
	require.NoError(t, err)

	message := []byte(timestamp + "+" + fullURL)
	require.NoError(t, cryptox.VerifySHA256(pub, message, sig))
}
