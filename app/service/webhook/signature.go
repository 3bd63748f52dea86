package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// CanonicalJSON serializes a payload the way the webhook sender does: keys
// sorted lexicographically, no extraneous whitespace, UTF-8 kept as-is.
// Numbers survive verbatim when the payload was decoded with json.Number.
func CanonicalJSON(payload any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Sign returns the base64 HMAC-SHA256 of the canonical JSON payload,
// keyed with the base64-decoded secret.
func Sign(payload any, secret string) (string, error) {
	canonical, err := CanonicalJSON(payload)
	if err != nil {
		return "", err
	}

	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to decode webhook secret: %w", err)
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(canonical)

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Verify checks a provided signature against the expected one. Any failure to
// compute the expected signature counts as a mismatch.
func Verify(payload any, providedSignature, secret string) bool {
	expected, err := Sign(payload, secret)
	if err != nil {
		return false
	}

	return hmac.Equal([]byte(expected), []byte(providedSignature))
}
