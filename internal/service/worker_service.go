package service

import (
	"context"
	"errors"
	"fmt"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/repository"
	"hospital-management-api/pkg/utils"

	"github.com/rs/zerolog"
)

type WorkerInput struct {
	WorkerName     string `json:"worker_name" binding:"required,max=255"`
	WorkerEmail    string `json:"worker_email" binding:"required,email"`
	WorkerPhone    string `json:"worker_phone" binding:"omitempty,max=50"`
	WorkerRole     string `json:"worker_role" binding:"omitempty,max=100"`
	WorkerPassword string `json:"worker_password" binding:"required,min=8"`
}

type WorkerEdit struct {
	WorkerName  string `json:"worker_name" binding:"required,max=255"`
	WorkerEmail string `json:"worker_email" binding:"required,email"`
	WorkerPhone string `json:"worker_phone" binding:"omitempty,max=50"`
	WorkerRole  string `json:"worker_role" binding:"omitempty,max=100"`
}

type PasswordChange struct {
	FormerPassword string `json:"former_password"`
	NewPassword    string `json:"new_password" binding:"required,min=8"`
}

type workerStore interface {
	recordStore[models.Worker]
	columnSearcher[models.Worker]
	FindByEmail(ctx context.Context, hospitalID uint, email string) (*models.Worker, error)
	UpdatePassword(ctx context.Context, hospitalID, workerID uint, hash string) error
}

type sessionRevoker interface {
	RevokeAllForSubject(ctx context.Context, role string, subjectID uint) error
}

// WorkerService manages the staff accounts of a hospital.
type WorkerService struct {
	records[models.Worker]
	store    workerStore
	sessions sessionRevoker
	audit    auditor
}

func NewWorkerService(store workerStore, sessions sessionRevoker, audit auditWriter, log zerolog.Logger) *WorkerService {
	return &WorkerService{
		records:  records[models.Worker]{store: store, sortColumns: repository.WorkerSortColumns, entity: "workers"},
		store:    store,
		sessions: sessions,
		audit:    auditor{repo: audit, log: log},
	}
}

func (s *WorkerService) Search(ctx context.Context, hospitalID uint, searchBy, term string) ([]models.Worker, error) {
	return s.store.SearchBy(ctx, hospitalID, searchBy, term)
}

// emailFree fails with ErrEmailTaken when another worker of the hospital uses email.
func (s *WorkerService) emailFree(ctx context.Context, hospitalID uint, email string, self uint) error {
	existing, err := s.store.FindByEmail(ctx, hospitalID, email)
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

func (s *WorkerService) Create(ctx context.Context, hospitalID uint, in WorkerInput, actor Actor) (*models.Worker, error) {
	// Check if email already exists
	if err := s.emailFree(ctx, hospitalID, in.WorkerEmail, 0); err != nil {
		return nil, err
	}

	// Hash the password
	hash, err := utils.HashPassword(in.WorkerPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	worker := &models.Worker{
		WorkerName:   in.WorkerName,
		WorkerEmail:  in.WorkerEmail,
		WorkerPhone:  in.WorkerPhone,
		WorkerRole:   in.WorkerRole,
		PasswordHash: hash,
	}
	if err := s.store.Create(ctx, hospitalID, worker); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, mutationFailed("add", "worker", err)
	}

	s.audit.record(ctx, hospitalID, actor.String(), "worker_create", fmt.Sprintf("Added worker %s (ID: %d)", worker.WorkerEmail, worker.ID))
	return worker, nil
}

func (s *WorkerService) Update(ctx context.Context, hospitalID, id uint, in WorkerEdit, actor Actor) (*models.Worker, error) {
	worker, err := s.store.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	if err := s.emailFree(ctx, hospitalID, in.WorkerEmail, id); err != nil {
		return nil, err
	}

	worker.WorkerName = in.WorkerName
	worker.WorkerEmail = in.WorkerEmail
	worker.WorkerPhone = in.WorkerPhone
	worker.WorkerRole = in.WorkerRole
	if err := s.store.Update(ctx, hospitalID, worker); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, mutationFailed("edit", "worker", err)
	}

	s.audit.record(ctx, hospitalID, actor.String(), "worker_update", fmt.Sprintf("Edited worker ID %d", id))
	return worker, nil
}

// ChangePassword lets a worker change their own password, given the former
// one, or lets the hospital account reset it.
func (s *WorkerService) ChangePassword(ctx context.Context, hospitalID, id uint, in PasswordChange, actor Actor) (*models.Worker, error) {
	self := actor.Role == models.RoleWorker
	if self && actor.SubjectID != id {
		return nil, ErrForbidden
	}

	worker, err := s.store.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	if self && !utils.ComparePassword(worker.PasswordHash, in.FormerPassword) {
		return nil, ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, hospitalID, id, hash); err != nil {
		return nil, fmt.Errorf("failed to change password: %w", err)
	}
	worker.PasswordHash = hash

	// Existing sessions were opened with the old password
	if err := s.sessions.RevokeAllForSubject(ctx, models.RoleWorker, id); err != nil {
		s.audit.log.Warn().Err(err).Uint("worker_id", id).Msg("failed to revoke worker sessions")
	}

	s.audit.record(ctx, hospitalID, actor.String(), "worker_password_change", fmt.Sprintf("Changed password of worker ID %d", id))
	return worker, nil
}

func (s *WorkerService) Remove(ctx context.Context, hospitalID, id uint, actor Actor) error {
	if err := s.records.Delete(ctx, hospitalID, id); err != nil {
		return err
	}
	if err := s.sessions.RevokeAllForSubject(ctx, models.RoleWorker, id); err != nil {
		s.audit.log.Warn().Err(err).Uint("worker_id", id).Msg("failed to revoke worker sessions")
	}
	s.audit.record(ctx, hospitalID, actor.String(), "worker_delete", fmt.Sprintf("Deleted worker ID %d", id))
	return nil
}
