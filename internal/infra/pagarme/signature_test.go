package pagarme

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sigTestSecret = "ak_test_123"

func hexHMACSHA1(body []byte, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func hexHMACSHA256(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_SHA256Prefix(t *testing.T) {
	body := []byte(`{"type":"subscription.updated"}`)

	header := "sha256=" + hexHMACSHA256(body, sigTestSecret)
	assert.True(t, VerifySignature(body, header, sigTestSecret))

	assert.False(t, VerifySignature(body, header, "wrong-secret"))
	assert.False(t, VerifySignature([]byte(`tampered`), header, sigTestSecret))
}

func TestVerifySignature_SHA1Prefix(t *testing.T) {
	body := []byte(`{"type":"subscription.canceled"}`)

	header := "sha1=" + hexHMACSHA1(body, sigTestSecret)
	assert.True(t, VerifySignature(body, header, sigTestSecret))
	assert.False(t, VerifySignature(body, "sha1="+hexHMACSHA1(body, "other"), sigTestSecret))
}

func TestVerifySignature_NoPrefixDefaultsToLegacySHA1(t *testing.T) {
	body := []byte(`{"x":1}`)

	assert.True(t, VerifySignature(body, hexHMACSHA1(body, sigTestSecret), sigTestSecret))
	// A bare SHA-256 digest must not pass the legacy default.
	assert.False(t, VerifySignature(body, hexHMACSHA256(body, sigTestSecret), sigTestSecret))
}

func TestVerifySignature_UppercaseHexAccepted(t *testing.T) {
	body := []byte(`{"x":1}`)
	upper := "sha256=" + hexUpper(hexHMACSHA256(body, sigTestSecret))
	assert.True(t, VerifySignature(body, upper, sigTestSecret))
}

func hexUpper(s string) string {
	out := []byte(s)
	for i, ch := range out {
		if ch >= 'a' && ch <= 'f' {
			out[i] = ch - 'a' + 'A'
		}
	}
	return string(out)
}

func TestVerifySignature_EmptyInputs(t *testing.T) {
	body := []byte(`{}`)
	assert.False(t, VerifySignature(body, "", sigTestSecret))
	assert.False(t, VerifySignature(body, "sha256=abc", ""))
	assert.False(t, VerifySignature(body, "sha999=abc", sigTestSecret))
}
