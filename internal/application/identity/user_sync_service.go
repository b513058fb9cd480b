package identity

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/storeadmin/backend/internal/domain/identity"
	"github.com/storeadmin/backend/internal/domain/shared"
)

// SignatureVerifier checks a webhook delivery signature over the raw body
type SignatureVerifier interface {
	Verify(payload []byte, headers http.Header) error
}

// UserSyncService mirrors identity-provider users into the local database.
// The provider delivers user lifecycle events over a signed webhook; the
// local table is a read model, never written by anything else.
type UserSyncService struct {
	userRepo identity.UserRepository
	verifier SignatureVerifier
	logger   *zap.Logger
}

// NewUserSyncService creates a UserSyncService
func NewUserSyncService(userRepo identity.UserRepository, verifier SignatureVerifier, logger *zap.Logger) *UserSyncService {
	return &UserSyncService{
		userRepo: userRepo,
		verifier: verifier,
		logger:   logger,
	}
}

type webhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleEvent verifies and applies one webhook delivery. Verification runs
// over the raw body exactly as received; any mutation invalidates the
// signature. Replays of the same event converge on the same row.
func (s *UserSyncService) HandleEvent(ctx context.Context, payload []byte, headers http.Header) error {
	if err := s.verifier.Verify(payload, headers); err != nil {
		s.logger.Warn("webhook signature verification failed", zap.Error(err))
		return shared.ErrUnauthorized
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.logger.Warn("webhook payload is not valid JSON", zap.Error(err))
		return shared.ErrInvalidInput
	}

	switch event.Type {
	case "user.created", "user.updated":
		return s.upsertUser(ctx, event)
	default:
		// Verified but irrelevant; acknowledged so the sender stops
		// retrying.
		s.logger.Debug("ignoring webhook event", zap.String("type", event.Type))
		return nil
	}
}

func (s *UserSyncService) upsertUser(ctx context.Context, event webhookEvent) error {
	var data map[string]json.RawMessage
	if err := json.Unmarshal(event.Data, &data); err != nil {
		s.logger.Warn("webhook event data is not a JSON object", zap.String("type", event.Type))
		return shared.ErrInvalidInput
	}

	var externalID string
	if raw, ok := data["id"]; ok {
		if err := json.Unmarshal(raw, &externalID); err != nil {
			externalID = ""
		}
	}
	if externalID == "" {
		s.logger.Warn("webhook event data missing user id", zap.String("type", event.Type))
		return shared.ErrInvalidInput
	}

	// The id becomes the external key; only the remaining fields are the
	// user's attributes.
	delete(data, "id")
	attributes, err := json.Marshal(data)
	if err != nil {
		return err
	}

	user, err := identity.NewUser(externalID, string(attributes))
	if err != nil {
		return err
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user synchronized",
		zap.String("type", event.Type),
		zap.String("external_id", externalID))
	return nil
}
