package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// SignatureHeader carries the base64 HMAC-SHA256 digest of the raw webhook body.
const SignatureHeader = "X-Shopify-Hmac-Sha256"

// Verifier authenticates webhook deliveries against the shared webhook secret.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a verifier. An empty secret disables verification and
// every delivery is accepted; run that mode only when the store cannot sign.
func NewVerifier(secret string) *Verifier {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return &Verifier{}
	}
	return &Verifier{secret: []byte(trimmed)}
}

// Verify checks the digest over the exact raw body bytes. A missing or
// undecodable header fails verification whenever a secret is configured.
func (v *Verifier) Verify(rawBody []byte, signature string) bool {
	if v == nil || len(v.secret) == 0 {
		return true
	}

	provided, err := base64.StdEncoding.DecodeString(strings.TrimSpace(signature))
	if err != nil || len(provided) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	_, _ = mac.Write(rawBody)
	return hmac.Equal(provided, mac.Sum(nil))
}
