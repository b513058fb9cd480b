package identity

import (
	"fmt"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"
)

// SvixVerifier verifies identity-provider webhook deliveries. The provider
// signs each delivery with the svix scheme: svix-id, svix-timestamp and
// svix-signature headers over the raw body.
type SvixVerifier struct {
	webhook *svix.Webhook
}

// NewSvixVerifier creates a verifier for the given endpoint secret
func NewSvixVerifier(secret string) (*SvixVerifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("svix: invalid webhook secret: %w", err)
	}
	return &SvixVerifier{webhook: wh}, nil
}

// Verify checks the delivery signature over the raw body
func (v *SvixVerifier) Verify(payload []byte, headers http.Header) error {
	return v.webhook.Verify(payload, headers)
}
