package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/repository"
	"hospital-management-api/pkg/utils"

	"github.com/rs/zerolog"
)

type HospitalInput struct {
	HospitalName     string  `json:"hospital_name" binding:"required,max=255"`
	HospitalEmail    string  `json:"hospital_email" binding:"required,email"`
	HospitalContact  string  `json:"hospital_contact" binding:"omitempty,max=50"`
	HospitalPassword string  `json:"hospital_password" binding:"required,min=8"`
	DiagnosisFee     float64 `json:"diagnosis_fee" binding:"gte=0"`
}

type HospitalEdit struct {
	HospitalName    string  `json:"hospital_name" binding:"required,max=255"`
	HospitalEmail   string  `json:"hospital_email" binding:"required,email"`
	HospitalContact string  `json:"hospital_contact" binding:"omitempty,max=50"`
	DiagnosisFee    float64 `json:"diagnosis_fee" binding:"gte=0"`
}

type hospitalStore interface {
	GetAllHospitals(ctx context.Context, sort repository.Sort) ([]models.Hospital, error)
	SearchHospitals(ctx context.Context, column, term string) ([]models.Hospital, error)
	GetHospitalByID(ctx context.Context, id uint) (*models.Hospital, error)
	GetHospitalByEmail(ctx context.Context, email string) (*models.Hospital, error)
	CreateHospital(ctx context.Context, hospital *models.Hospital) error
	UpdateHospital(ctx context.Context, hospital *models.Hospital) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
	RedeemActivationKey(ctx context.Context, hospitalID, keyID uint, expiry, now time.Time) error
	DeleteHospital(ctx context.Context, id uint) error
}

type activationKeyReader interface {
	GetUnusedKeyByHash(ctx context.Context, keyHash string, now time.Time) (*models.ActivationKey, error)
}

type HospitalService struct {
	store       hospitalStore
	keys        activationKeyReader
	sessions    sessionRevoker
	audit       auditor
	trialPeriod time.Duration
	now         func() time.Time
}

func NewHospitalService(
	store hospitalStore,
	keys activationKeyReader,
	sessions sessionRevoker,
	audit auditWriter,
	trialPeriod time.Duration,
	log zerolog.Logger,
) *HospitalService {
	return &HospitalService{
		store:       store,
		keys:        keys,
		sessions:    sessions,
		audit:       auditor{repo: audit, log: log},
		trialPeriod: trialPeriod,
		now:         time.Now,
	}
}

// GetAllHospitals lists every tenant for the platform operator
func (s *HospitalService) GetAllHospitals(ctx context.Context, sortTerm, sortDir string) ([]models.Hospital, error) {
	sort, err := repository.ParseSort(sortTerm, sortDir, repository.HospitalSortColumns)
	if err != nil {
		return nil, err
	}
	return s.store.GetAllHospitals(ctx, sort)
}

func (s *HospitalService) SearchHospitals(ctx context.Context, searchBy, term string) ([]models.Hospital, error) {
	return s.store.SearchHospitals(ctx, searchBy, term)
}

func (s *HospitalService) GetHospitalByID(ctx context.Context, id uint) (*models.Hospital, error) {
	return s.store.GetHospitalByID(ctx, id)
}

func (s *HospitalService) emailFree(ctx context.Context, email string, self uint) error {
	existing, err := s.store.GetHospitalByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return ErrEmailTaken
	}
	return nil
}

// Register creates a hospital account on a trial plan
func (s *HospitalService) Register(ctx context.Context, in HospitalInput) (*models.Hospital, error) {
	// Check if email already exists
	if err := s.emailFree(ctx, in.HospitalEmail, 0); err != nil {
		return nil, err
	}

	// Hash the password
	hash, err := utils.HashPassword(in.HospitalPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hospital := &models.Hospital{
		HospitalName:    in.HospitalName,
		HospitalEmail:   in.HospitalEmail,
		HospitalContact: in.HospitalContact,
		PasswordHash:    hash,
		DiagnosisFee:    in.DiagnosisFee,
		ExpiryDate:      s.now().Add(s.trialPeriod),
	}
	if err := s.store.CreateHospital(ctx, hospital); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, mutationFailed("add", "hospital", err)
	}

	// Audit log
	s.audit.record(ctx, hospital.ID, s.owner(hospital.ID), "hospital_create",
		fmt.Sprintf("Registered hospital: %s (%s)", hospital.HospitalName, hospital.HospitalEmail))
	return hospital, nil
}

func (s *HospitalService) UpdateHospital(ctx context.Context, id uint, in HospitalEdit) (*models.Hospital, error) {
	// Verify hospital exists
	hospital, err := s.store.GetHospitalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.emailFree(ctx, in.HospitalEmail, id); err != nil {
		return nil, err
	}

	oldEmail := hospital.HospitalEmail
	hospital.HospitalName = in.HospitalName
	hospital.HospitalEmail = in.HospitalEmail
	hospital.HospitalContact = in.HospitalContact
	hospital.DiagnosisFee = in.DiagnosisFee
	if err := s.store.UpdateHospital(ctx, hospital); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, mutationFailed("edit", "hospital", err)
	}

	s.audit.record(ctx, id, s.owner(id), "hospital_update",
		fmt.Sprintf("Updated hospital: %s (old email: %s)", hospital.HospitalName, oldEmail))
	return hospital, nil
}

// ChangePassword requires the former password and signs out every session of the account
func (s *HospitalService) ChangePassword(ctx context.Context, id uint, in PasswordChange) (*models.Hospital, error) {
	hospital, err := s.store.GetHospitalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !utils.ComparePassword(hospital.PasswordHash, in.FormerPassword) {
		return nil, ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, id, hash); err != nil {
		return nil, fmt.Errorf("failed to change password: %w", err)
	}
	hospital.PasswordHash = hash

	if err := s.sessions.RevokeAllForSubject(ctx, models.RoleHospital, id); err != nil {
		s.audit.log.Warn().Err(err).Uint("hospital_id", id).Msg("failed to revoke hospital sessions")
	}

	s.audit.record(ctx, id, s.owner(id), "hospital_password_change", "Changed hospital password")
	return hospital, nil
}

// RenewActivation redeems a single-use key. The plan is extended from the
// later of now and the current expiry date.
func (s *HospitalService) RenewActivation(ctx context.Context, id uint, activationKey string) (*models.Hospital, error) {
	if activationKey == "" {
		return nil, fmt.Errorf("%w: activation_key is required", ErrInvalidInput)
	}

	hospital, err := s.store.GetHospitalByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	key, err := s.keys.GetUnusedKeyByHash(ctx, utils.HashToken(activationKey), now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidActivationKey
		}
		return nil, err
	}

	from := now
	if hospital.ExpiryDate.After(from) {
		from = hospital.ExpiryDate
	}
	expiry := from.AddDate(0, 0, key.DurationDays)

	if err := s.store.RedeemActivationKey(ctx, id, key.ID, expiry, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidActivationKey
		}
		return nil, fmt.Errorf("failed to renew activation: %w", err)
	}
	hospital.ExpiryDate = expiry

	s.audit.record(ctx, id, s.owner(id), "hospital_renew",
		fmt.Sprintf("Redeemed activation key ID %d for %d days, expires %s", key.ID, key.DurationDays, expiry.Format(time.RFC3339)))
	return hospital, nil
}

// DeleteHospital removes the tenant and everything it owns
func (s *HospitalService) DeleteHospital(ctx context.Context, id uint) error {
	hospital, err := s.store.GetHospitalByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteHospital(ctx, id); err != nil {
		return fmt.Errorf("failed to delete hospital: %w", err)
	}

	s.audit.platform(ctx, "hospital_delete",
		fmt.Sprintf("Deleted hospital: %s (%s, ID: %d)", hospital.HospitalName, hospital.HospitalEmail, id))
	return nil
}

func (s *HospitalService) owner(id uint) string {
	return Actor{SubjectID: id, Role: models.RoleHospital}.String()
}
