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

type tokenStore interface {
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	FindRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	RevokeRefreshTokenByHash(ctx context.Context, hash string) error
}

type hospitalAccounts interface {
	GetHospitalByEmail(ctx context.Context, email string) (*models.Hospital, error)
}

type workerAccounts interface {
	FindByEmail(ctx context.Context, hospitalID uint, email string) (*models.Worker, error)
}

type AuthService struct {
	hospitals hospitalAccounts
	workers   workerAccounts
	tokens    tokenStore
	audit     auditor
	now       func() time.Time
}

func NewAuthService(hospitals hospitalAccounts, workers workerAccounts, tokens tokenStore, audit auditWriter, log zerolog.Logger) *AuthService {
	return &AuthService{
		hospitals: hospitals,
		workers:   workers,
		tokens:    tokens,
		audit:     auditor{repo: audit, log: log},
		now:       time.Now,
	}
}

// LoginResponse represents the response structure for signin
type LoginResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	Role         string           `json:"role"`
	// Active is set on hospital signin: whether the plan has not yet run out.
	// Signin is not refused on a lapsed plan; the client prompts for renewal.
	Active       *bool            `json:"active,omitempty"`
	Hospital     *models.Hospital `json:"hospital,omitempty"`
	Worker       *models.Worker   `json:"worker,omitempty"`
}

type SigninInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// HospitalSignin authenticates a hospital owner account
func (s *AuthService) HospitalSignin(ctx context.Context, in SigninInput) (*LoginResponse, error) {
	// Find hospital by email
	hospital, err := s.hospitals.GetHospitalByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Compare password
	if !utils.ComparePassword(hospital.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	resp, err := s.issue(ctx, hospital.ID, hospital.ID, models.RoleHospital)
	if err != nil {
		return nil, err
	}
	resp.Hospital = hospital
	active := hospital.Active(s.now())
	resp.Active = &active

	s.audit.record(ctx, hospital.ID, Actor{SubjectID: hospital.ID, Role: models.RoleHospital}.String(),
		"hospital_signin", fmt.Sprintf("Hospital %s signed in", hospital.HospitalEmail))
	return resp, nil
}

// WorkerSignin authenticates a worker of the given hospital
func (s *AuthService) WorkerSignin(ctx context.Context, hospitalID uint, in SigninInput) (*LoginResponse, error) {
	worker, err := s.workers.FindByEmail(ctx, hospitalID, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.ComparePassword(worker.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	resp, err := s.issue(ctx, worker.ID, hospitalID, models.RoleWorker)
	if err != nil {
		return nil, err
	}
	resp.Worker = worker

	s.audit.record(ctx, hospitalID, Actor{SubjectID: worker.ID, Role: models.RoleWorker}.String(),
		"worker_signin", fmt.Sprintf("Worker %s signed in", worker.WorkerEmail))
	return resp, nil
}

func (s *AuthService) issue(ctx context.Context, subjectID, hospitalID uint, role string) (*LoginResponse, error) {
	// Generate access token
	accessToken, err := utils.GenerateAccessToken(subjectID, hospitalID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	// Hash and store refresh token
	refreshToken := utils.GenerateRefreshToken()
	token := &models.RefreshToken{
		HospitalID: hospitalID,
		SubjectID:  subjectID,
		Role:       role,
		TokenHash:  utils.HashToken(refreshToken),
		ExpiresAt:  s.now().Add(utils.GetRefreshTokenExpiry()),
	}
	if err := s.tokens.CreateRefreshToken(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &LoginResponse{AccessToken: accessToken, RefreshToken: refreshToken, Role: role}, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	token, err := s.tokens.FindRefreshTokenByHash(ctx, utils.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	if s.now().After(token.ExpiresAt) {
		return "", ErrRefreshTokenExpired
	}

	accessToken, err := utils.GenerateAccessToken(token.SubjectID, token.HospitalID, token.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokens.RevokeRefreshTokenByHash(ctx, utils.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Actor is the authenticated account performing an operation.
type Actor struct {
	SubjectID uint
	Role      string
}

func (a Actor) String() string {
	return fmt.Sprintf("%s:%d", a.Role, a.SubjectID)
}
