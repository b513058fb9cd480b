package payment

import (
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v81"
)

// StripeConfig holds configuration for the Stripe integration
type StripeConfig struct {
	// SecretKey is the Stripe secret API key (sk_test_xxx or sk_live_xxx)
	SecretKey string `json:"secret_key" mapstructure:"secret_key"`

	// WebhookSecret is the signing secret for payment confirmation events
	WebhookSecret string `json:"webhook_secret" mapstructure:"webhook_secret"`
}

// Validate validates the Stripe configuration
func (c *StripeConfig) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("stripe: secret key is required")
	}
	if !strings.HasPrefix(c.SecretKey, "sk_") {
		return fmt.Errorf("stripe: secret key must start with sk_")
	}
	return nil
}

// InitStripeClient initializes the Stripe client with the configured API key
func (c *StripeConfig) InitStripeClient() {
	stripe.Key = c.SecretKey
}
