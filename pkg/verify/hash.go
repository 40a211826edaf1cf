package verify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// HashAlgorithm identifies the hash algorithm used for all proofs.
const HashAlgorithm = "SHA-256"

// TimestampLayout is the ISO-8601 layout used for every timestamp in the
// verification core. All timestamps are zero-padded UTC with millisecond
// precision, which makes lexicographic string comparison equivalent to
// chronological comparison.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// SHA256Hex returns the lowercase hex encoding of the SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HMACSHA256Hex returns the lowercase hex encoding of HMAC-SHA256 over
// message under the given secret.
func HMACSHA256Hex(message, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC reports whether signature is a valid HMAC-SHA256 hex digest
// of message under secret. Comparison is constant-time.
func VerifyHMAC(message, secret []byte, signature string) bool {
	expected := HMACSHA256Hex(message, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// FormatTimestamp renders t in the canonical timestamp layout (UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
