package chat

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nvoskov/teamplan/internal/config"
)

var (
	ErrBadSignature = errors.New("request signature mismatch")
	ErrStaleRequest = errors.New("request timestamp outside allowed window")
	ErrBadTimestamp = errors.New("malformed request timestamp")
)

// VerifySignature checks the v0 signing scheme: the signature must be the
// hex HMAC-SHA256 of "v0:<timestamp>:<body>" under the signing secret, and
// the timestamp must be within the replay window. Inbound events reach the
// command interpreter only after this passes.
func VerifySignature(signingSecret, timestamp, signature string, body []byte, now time.Time) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrBadTimestamp
	}
	skew := now.Sub(time.Unix(ts, 0))
	if skew < 0 {
		skew = -skew
	}
	if skew > config.SignatureMaxSkew {
		return ErrStaleRequest
	}

	mac := hmac.New(sha256.New, []byte(signingSecret))
	fmt.Fprintf(mac, "%s:%s:", config.SignatureVersion, timestamp)
	mac.Write(body)
	expected := config.SignatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}
