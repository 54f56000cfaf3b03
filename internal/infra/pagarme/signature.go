package pagarme

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// VerifySignature checks an X-Hub-Signature header against the raw
// postback body. The gateway signs bodies with the account API key,
// historically SHA-1 and on newer accounts SHA-256; the header prefix
// says which one applies. A header without a recognized prefix is
// treated as a bare legacy SHA-1 hexdigest.
func VerifySignature(body []byte, header string, secret string) bool {
	if header == "" || secret == "" {
		return false
	}

	sha1Digest := computeHMAC(sha1.New, body, secret)
	sha256Digest := computeHMAC(sha256.New, body, secret)
	fmt.Println("🔏 postback digest sha1:", sha1Digest)
	fmt.Println("🔏 postback digest sha256:", sha256Digest)

	expected := sha1Digest
	got := header
	if v, ok := strings.CutPrefix(header, "sha256="); ok {
		expected = sha256Digest
		got = v
	} else if v, ok := strings.CutPrefix(header, "sha1="); ok {
		got = v
	}

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(got)))
}

func computeHMAC(newHash func() hash.Hash, payload []byte, secret string) string {
	mac := hmac.New(newHash, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
