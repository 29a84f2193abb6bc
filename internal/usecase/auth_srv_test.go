package usecase

import (
	"context"
	"testing"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/pkg/mailer"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	byID    map[uuid.UUID]*entity.User
	touched []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*entity.User{},
		byID:    map[uuid.UUID]*entity.User{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, _, _ int) ([]*entity.User, error) { return nil, nil }

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) { return 0, nil }

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	if user, ok := f.byID[id]; ok {
		user.PasswordHash = &passwordHash
	}
	return nil
}

func (f *fakeUserRepo) TouchLastActive(_ context.Context, id uuid.UUID) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakePendingRepo struct {
	byEmail map[string]*entity.PendingRegistration
	deleted []string
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{byEmail: map[string]*entity.PendingRegistration{}}
}

func (f *fakePendingRepo) Upsert(_ context.Context, pending *entity.PendingRegistration) error {
	f.byEmail[pending.Email] = pending
	return nil
}

func (f *fakePendingRepo) FindValid(_ context.Context, email, code string) (*entity.PendingRegistration, error) {
	pending, ok := f.byEmail[email]
	if !ok || pending.Code != code || time.Now().After(pending.ExpiresAt) {
		return nil, nil
	}
	return pending, nil
}

func (f *fakePendingRepo) DeleteByEmail(_ context.Context, email string) error {
	delete(f.byEmail, email)
	f.deleted = append(f.deleted, email)
	return nil
}

func (f *fakePendingRepo) DeleteExpired(_ context.Context) (int64, error) { return 0, nil }

func authTestService(users *fakeUserRepo, pendings *fakePendingRepo) AuthService {
	repo := &repository.Repository{
		User:    users,
		Pending: pendings,
	}
	maker := utils.NewJWTMaker("test-secret", 15)
	// Empty SMTP host: codes are logged, never sent
	mail := mailer.NewMailer(utils.EmailConfig{}, zap.NewNop())
	return NewAuthService(repo, maker, mail, zap.NewNop())
}

func TestRegisterIssuesTokenImmediately(t *testing.T) {
	users := newFakeUserRepo()
	pendings := newFakePendingRepo()
	svc := authTestService(users, pendings)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		Name:     "New User",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.False(t, resp.User.EmailVerified)

	// Account exists and the verification code is staged
	assert.NotNil(t, users.byEmail["new@example.com"])
	require.NotNil(t, pendings.byEmail["new@example.com"])
	assert.Len(t, pendings.byEmail["new@example.com"].Code, 6)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := authTestService(users, newFakePendingRepo())

	req := &request.RegisterRequest{Email: "dup@example.com", Password: "password123", Name: "First"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserExists)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc := authTestService(newFakeUserRepo(), newFakePendingRepo())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
		Name:     "X",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginRoundTrip(t *testing.T) {
	users := newFakeUserRepo()
	svc := authTestService(users, newFakePendingRepo())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "a@example.com",
		Password: "password123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "a@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Len(t, users.touched, 1)
}

func TestLoginGenericFailure(t *testing.T) {
	users := newFakeUserRepo()
	svc := authTestService(users, newFakePendingRepo())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "a@example.com",
		Password: "password123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	// Wrong password and unknown email fail identically
	_, wrongPass := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "a@example.com",
		Password: "wrong-password",
	})
	_, unknown := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestVerifyEmailFlipsFlagAndConsumesCode(t *testing.T) {
	users := newFakeUserRepo()
	pendings := newFakePendingRepo()
	svc := authTestService(users, pendings)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "v@example.com",
		Password: "password123",
		Name:     "Vera",
	})
	require.NoError(t, err)
	code := pendings.byEmail["v@example.com"].Code

	resp, err := svc.VerifyEmail(context.Background(), &request.VerifyEmailRequest{
		Email: "v@example.com",
		Code:  code,
	})
	require.NoError(t, err)

	assert.True(t, resp.EmailVerified)
	assert.True(t, users.byEmail["v@example.com"].EmailVerified)
	assert.Nil(t, pendings.byEmail["v@example.com"])

	// Replaying the consumed code fails
	_, err = svc.VerifyEmail(context.Background(), &request.VerifyEmailRequest{
		Email: "v@example.com",
		Code:  code,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyEmailWrongCode(t *testing.T) {
	users := newFakeUserRepo()
	pendings := newFakePendingRepo()
	svc := authTestService(users, pendings)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "v@example.com",
		Password: "password123",
		Name:     "Vera",
	})
	require.NoError(t, err)

	_, err = svc.VerifyEmail(context.Background(), &request.VerifyEmailRequest{
		Email: "v@example.com",
		Code:  "000000",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, users.byEmail["v@example.com"].EmailVerified)
}
