package service

import (
	"context"
	"fmt"
	"time"

	"hospital-management-api/internal/models"
	"hospital-management-api/pkg/utils"

	"github.com/rs/zerolog"
)

type ActivationKeyInput struct {
	DurationDays int    `json:"duration_days" binding:"required,gt=0,lte=3660"`
	Description  string `json:"description" binding:"omitempty,max=255"`
	ValidForDays int    `json:"valid_for_days" binding:"gte=0"`
}

type activationKeyWriter interface {
	CreateKey(ctx context.Context, key *models.ActivationKey) error
}

// ActivationKeyService issues plan-renewal keys for the platform operator.
type ActivationKeyService struct {
	keys  activationKeyWriter
	audit auditor
	now   func() time.Time
}

func NewActivationKeyService(keys activationKeyWriter, audit auditWriter, log zerolog.Logger) *ActivationKeyService {
	return &ActivationKeyService{keys: keys, audit: auditor{repo: audit, log: log}, now: time.Now}
}

// Issue generates a new key. The plain-text key is returned once and only
// its hash is stored.
func (s *ActivationKeyService) Issue(ctx context.Context, in ActivationKeyInput) (*models.ActivationKeyResponse, error) {
	// Generate a random 32-byte key
	plainKey, err := utils.GenerateSecretKey(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random key: %w", err)
	}

	key := &models.ActivationKey{
		KeyHash:      utils.HashToken(plainKey),
		DurationDays: in.DurationDays,
		Description:  in.Description,
	}
	if in.ValidForDays > 0 {
		expires := s.now().AddDate(0, 0, in.ValidForDays)
		key.ExpiresAt = &expires
	}

	if err := s.keys.CreateKey(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to create activation key: %w", err)
	}

	// Audit log
	s.audit.platform(ctx, "activation_key_issue",
		fmt.Sprintf("Issued activation key ID %d for %d days, description: %s", key.ID, key.DurationDays, key.Description))

	return &models.ActivationKeyResponse{
		ID:            key.ID,
		ActivationKey: plainKey,
		DurationDays:  key.DurationDays,
		Description:   key.Description,
		CreatedAt:     key.CreatedAt,
		ExpiresAt:     key.ExpiresAt,
	}, nil
}
