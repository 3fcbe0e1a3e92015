package cryptox

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// GenerateRSAKeyPKCS8 generates a new RSA private key in PKCS8 format.
// The auth server provisions per-user signing keys in this format at login;
// this generator exists for tests and local provisioning tooling.
func GenerateRSAKeyPKCS8(bits int) ([]byte, error) {
	if bits < 2048 {
		return nil, fmt.Errorf("cryptox: RSA key size must be at least 2048 bits")
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate RSA key: %w", err)
	}

	privateKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal PKCS8 key: %w", err)
	}

	privateKeyPEM := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: privateKeyBytes,
	}

	return pem.EncodeToMemory(privateKeyPEM), nil
}

// ParseRSAPrivateKeyPEM parses a PEM-encoded RSA private key.
// Both PKCS8 ("PRIVATE KEY") and PKCS1 ("RSA PRIVATE KEY") blocks are accepted.
func ParseRSAPrivateKeyPEM(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("cryptox: no PEM block found in private key data")
	}

	switch block.Type {
	case "PRIVATE KEY":
		keyInterface, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("cryptox: failed to parse PKCS8 key: %w", err)
		}
		key, ok := keyInterface.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("cryptox: PKCS8 block does not contain an RSA key")
		}
		return key, nil
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("cryptox: failed to parse PKCS1 key: %w", err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("cryptox: unsupported PEM block type %q", block.Type)
	}
}

// ParseRSAPublicKeyPEM parses a PEM-encoded RSA public key in PKIX format.
func ParseRSAPublicKeyPEM(pemData []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("cryptox: no PEM block found in public key data")
	}

	keyInterface, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to parse public key: %w", err)
	}

	key, ok := keyInterface.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("cryptox: PEM block does not contain an RSA public key")
	}
	return key, nil
}

// PublicKeyPEM encodes an RSA public key as PKIX PEM. This is the form the
// auth server embeds in token claims for signature verification.
func PublicKeyPEM(key *rsa.PublicKey) ([]byte, error) {
	keyBytes, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal public key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: keyBytes,
	}), nil
}

// SignSHA256 signs message with RSASSA-PKCS1-v1.5 over a SHA-256 digest.
// The scheme is fixed by the server's verifier; do not change it here alone.
func SignSHA256(key *rsa.PrivateKey, message []byte) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("cryptox: private key is nil")
	}

	digest := sha256.Sum256(message)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to sign message: %w", err)
	}
	return sig, nil
}

// VerifySHA256 verifies an RSASSA-PKCS1-v1.5 SHA-256 signature.
func VerifySHA256(pub *rsa.PublicKey, message, sig []byte) error {
	if pub == nil {
		return fmt.Errorf("cryptox: public key is nil")
	}

	digest := sha256.Sum256(message)
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sig); err != nil {
		return fmt.Errorf("cryptox: signature verification failed: %w", err)
	}
	return nil
}
