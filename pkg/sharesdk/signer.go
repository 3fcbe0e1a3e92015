package sharesdk

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/tidegate/fileshare/pkg/cryptox"
)

// SignRequest computes the detached signature for one outgoing request: an
// RSA-SHA256 signature over timestampMs + "+" + url, base64 encoded. The HTTP
// method and body are not part of the signed message; the server verifies
// exactly this form. Pure with respect to its inputs, so the same triple
// always yields the same signature; freshness comes from the timestamp, which
// callers must regenerate per call.
func SignRequest(key *rsa.PrivateKey, timestampMs, url string) (string, error) {
	if key == nil {
		return "", ErrNoPrivateKey
	}

	sig, err := cryptox.SignSHA256(key, []byte(timestampMs+"+"+url))
	if err != nil {
		return "", fmt.Errorf("sharesdk: failed to sign request: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// timestampNow returns the current time as milliseconds since the epoch, in
// the string form the Timestamp header carries.
func timestampNow() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
