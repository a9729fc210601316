package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/repository"
	"hospital-management-api/pkg/utils"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	utils.BcryptCost = bcrypt.MinCost
	utils.InitJWT("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
	os.Exit(m.Run())
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hash
}

var (
	owner  = Actor{SubjectID: 1, Role: models.RoleHospital}
	nobody = zerolog.Nop()
)

func TestWorkerCreateRejectsDuplicateEmail(t *testing.T) {
	workers := newWorkers()
	audit := &auditFake{}
	svc := NewWorkerService(workers, &sessionsFake{}, audit, nobody)

	in := WorkerInput{WorkerName: "Nurse", WorkerEmail: "nurse@example.com", WorkerPassword: "password1"}
	w, err := svc.Create(context.Background(), 1, in, owner)
	require.NoError(t, err)
	assert.NotEqual(t, "password1", w.PasswordHash)
	assert.True(t, utils.ComparePassword(w.PasswordHash, "password1"))

	_, err = svc.Create(context.Background(), 1, in, owner)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// The same email may exist at another hospital
	_, err = svc.Create(context.Background(), 2, in, Actor{SubjectID: 2, Role: models.RoleHospital})
	require.NoError(t, err)
	assert.Equal(t, []string{"worker_create", "worker_create"}, audit.actions)
}

func TestWorkerChangePassword(t *testing.T) {
	workers := newWorkers()
	sessions := &sessionsFake{}
	svc := NewWorkerService(workers, sessions, &auditFake{}, nobody)

	alice := workers.put(1, models.Worker{WorkerEmail: "alice@example.com", PasswordHash: mustHash(t, "old-password")})
	bob := workers.put(1, models.Worker{WorkerEmail: "bob@example.com", PasswordHash: mustHash(t, "bob-password")})
	asAlice := Actor{SubjectID: alice.ID, Role: models.RoleWorker}

	_, err := svc.ChangePassword(context.Background(), 1, bob.ID, PasswordChange{NewPassword: "new-password"}, asAlice)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ChangePassword(context.Background(), 1, alice.ID, PasswordChange{FormerPassword: "wrong", NewPassword: "new-password"}, asAlice)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.ChangePassword(context.Background(), 1, alice.ID, PasswordChange{FormerPassword: "old-password", NewPassword: "new-password"}, asAlice)
	require.NoError(t, err)
	stored, _ := workers.Get(context.Background(), 1, alice.ID)
	assert.True(t, utils.ComparePassword(stored.PasswordHash, "new-password"))
	assert.Equal(t, []revokeCall{{models.RoleWorker, alice.ID}}, sessions.revoked)

	// The hospital account resets without the former password
	_, err = svc.ChangePassword(context.Background(), 1, bob.ID, PasswordChange{NewPassword: "reset-password"}, owner)
	require.NoError(t, err)
}

func TestHospitalRegisterStartsTrial(t *testing.T) {
	hospitals := newHospitals()
	svc := NewHospitalService(hospitals, hospitals, &sessionsFake{}, &auditFake{}, 30*24*time.Hour, nobody)
	svc.now = func() time.Time { return fixedNow }

	in := HospitalInput{HospitalName: "General", HospitalEmail: "gen@example.com", HospitalPassword: "password1", DiagnosisFee: 10}
	h, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(30*24*time.Hour), h.ExpiryDate)
	assert.True(t, h.Active(fixedNow))

	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

// A registration racing another one past the email check hits the unique index.
func TestDuplicateKeyIsEmailTaken(t *testing.T) {
	duplicate := fmt.Errorf("%w: %w", repository.ErrDuplicate, errors.New("Error 1062: Duplicate entry"))

	hospitals := newHospitals()
	hospitals.writeErr = duplicate
	hospitalSvc := NewHospitalService(hospitals, hospitals, &sessionsFake{}, &auditFake{}, time.Hour, nobody)
	_, err := hospitalSvc.Register(context.Background(), HospitalInput{HospitalName: "General", HospitalEmail: "gen@example.com", HospitalPassword: "password1"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	workers := newWorkers()
	workers.writeErr = duplicate
	workerSvc := NewWorkerService(workers, &sessionsFake{}, &auditFake{}, nobody)
	_, err = workerSvc.Create(context.Background(), 1, WorkerInput{WorkerName: "Nurse", WorkerEmail: "nurse@example.com", WorkerPassword: "password1"}, owner)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Any other refused write is a failed operation that keeps its cause
	cause := errors.New("Error 1406: Data too long")
	workers.writeErr = cause
	_, err = workerSvc.Create(context.Background(), 1, WorkerInput{WorkerName: "Nurse", WorkerEmail: "nurse@example.com", WorkerPassword: "password1"}, owner)
	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.ErrorIs(t, err, cause)
}

func TestHospitalRenewActivation(t *testing.T) {
	tests := []struct {
		name   string
		expiry time.Time
		want   time.Time
	}{
		{name: "lapsed plan renews from now", expiry: fixedNow.AddDate(0, 0, -5), want: fixedNow.AddDate(0, 0, 30)},
		{name: "active plan is extended", expiry: fixedNow.AddDate(0, 0, 10), want: fixedNow.AddDate(0, 0, 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hospitals := newHospitals(models.Hospital{ID: 1, HospitalName: "General", ExpiryDate: tt.expiry})
			keys := NewActivationKeyService(hospitals, &auditFake{}, nobody)
			svc := NewHospitalService(hospitals, hospitals, &sessionsFake{}, &auditFake{}, time.Hour, nobody)
			svc.now = func() time.Time { return fixedNow }

			issued, err := keys.Issue(context.Background(), ActivationKeyInput{DurationDays: 30})
			require.NoError(t, err)
			require.NotEmpty(t, issued.ActivationKey)

			_, err = svc.RenewActivation(context.Background(), 1, "not-a-key")
			assert.ErrorIs(t, err, ErrInvalidActivationKey)

			h, err := svc.RenewActivation(context.Background(), 1, issued.ActivationKey)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.ExpiryDate)

			// Keys are single use
			_, err = svc.RenewActivation(context.Background(), 1, issued.ActivationKey)
			assert.ErrorIs(t, err, ErrInvalidActivationKey)
		})
	}
}

func TestHospitalChangePasswordRequiresFormer(t *testing.T) {
	hospitals := newHospitals(models.Hospital{ID: 1, HospitalEmail: "gen@example.com", PasswordHash: mustHash(t, "old-password")})
	sessions := &sessionsFake{}
	svc := NewHospitalService(hospitals, hospitals, sessions, &auditFake{}, time.Hour, nobody)

	_, err := svc.ChangePassword(context.Background(), 1, PasswordChange{FormerPassword: "nope", NewPassword: "new-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.ChangePassword(context.Background(), 1, PasswordChange{FormerPassword: "old-password", NewPassword: "new-password"})
	require.NoError(t, err)
	assert.True(t, utils.ComparePassword(hospitals.byID[1].PasswordHash, "new-password"))
	assert.Equal(t, []revokeCall{{models.RoleHospital, 1}}, sessions.revoked)
}

type tokensFake struct {
	byHash map[string]*models.RefreshToken
}

func (f *tokensFake) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	f.byHash[token.TokenHash] = token
	return nil
}

func (f *tokensFake) FindRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	token, ok := f.byHash[hash]
	if !ok || token.Revoked {
		return nil, repository.ErrRefreshTokenNotFound
	}
	return token, nil
}

func (f *tokensFake) RevokeRefreshTokenByHash(ctx context.Context, hash string) error {
	if token, ok := f.byHash[hash]; ok {
		token.Revoked = true
	}
	return nil
}

func TestAuthSigninRefreshLogout(t *testing.T) {
	hospitals := newHospitals(
		models.Hospital{ID: 7, HospitalEmail: "gen@example.com", PasswordHash: mustHash(t, "password1"), ExpiryDate: fixedNow.AddDate(0, 0, 3)},
		models.Hospital{ID: 9, HospitalEmail: "lapsed@example.com", PasswordHash: mustHash(t, "password1"), ExpiryDate: fixedNow.AddDate(0, 0, -1)},
	)
	workers := newWorkers()
	nurse := workers.put(7, models.Worker{WorkerEmail: "nurse@example.com", PasswordHash: mustHash(t, "nurse-pass")})
	tokens := &tokensFake{byHash: map[string]*models.RefreshToken{}}
	svc := NewAuthService(hospitals, workers, tokens, &auditFake{}, nobody)
	svc.now = func() time.Time { return fixedNow }

	_, err := svc.HospitalSignin(context.Background(), SigninInput{Email: "gen@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.HospitalSignin(context.Background(), SigninInput{Email: "missing@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := svc.HospitalSignin(context.Background(), SigninInput{Email: "gen@example.com", Password: "password1"})
	require.NoError(t, err)
	claims, err := utils.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.HospitalID)
	assert.Equal(t, models.RoleHospital, claims.Role)
	require.NotNil(t, resp.Active)
	assert.True(t, *resp.Active)

	// A lapsed plan still signs in, flagged inactive
	lapsed, err := svc.HospitalSignin(context.Background(), SigninInput{Email: "lapsed@example.com", Password: "password1"})
	require.NoError(t, err)
	require.NotNil(t, lapsed.Active)
	assert.False(t, *lapsed.Active)

	// Workers sign in against their own hospital only
	_, err = svc.WorkerSignin(context.Background(), 8, SigninInput{Email: "nurse@example.com", Password: "nurse-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	wresp, err := svc.WorkerSignin(context.Background(), 7, SigninInput{Email: "nurse@example.com", Password: "nurse-pass"})
	require.NoError(t, err)
	wclaims, err := utils.ValidateAccessToken(wresp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, nurse.ID, wclaims.SubjectID)
	assert.Equal(t, uint(7), wclaims.HospitalID)
	assert.Nil(t, wresp.Active)

	access, err := svc.RefreshAccessToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	require.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))
	_, err = svc.RefreshAccessToken(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	svc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	_, err = svc.RefreshAccessToken(context.Background(), wresp.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenExpired)
}
