package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/mailer"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

const verificationCodeTTL = 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) (*response.UserResponse, error)
	Refresh(ctx context.Context, claims *utils.TokenClaims) (*response.AuthResponse, error)
}

type authService struct {
	repo     *repository.Repository
	jwtMaker *utils.JWTMaker
	mailer   *mailer.Mailer
	log      *zap.Logger
}

func NewAuthService(repo *repository.Repository, jwtMaker *utils.JWTMaker, mail *mailer.Mailer, log *zap.Logger) AuthService {
	return &authService{
		repo:     repo,
		jwtMaker: jwtMaker,
		mailer:   mail,
		log:      log.With(zap.String("service", "auth")),
	}
}

// Register creates the account immediately (unverified) and emails a
// 6-digit code. The caller gets a usable token right away; verification
// only flips the email_verified flag.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:         req.Email,
		Name:          req.Name,
		PasswordHash:  &passwordHash,
		Role:          entity.RoleCustomer,
		EmailVerified: false,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	code := utils.GenerateVerificationCode(6)
	pending := &entity.PendingRegistration{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Code:         code,
		ExpiresAt:    now.Add(verificationCodeTTL),
	}
	if err := s.repo.Pending.Upsert(ctx, pending); err != nil {
		return nil, fmt.Errorf("store verification code: %w", err)
	}

	// Mail failures must not lose the account; the code can be re-read
	// from logs or resent later.
	if err := s.mailer.SendVerificationCode(req.Email, code); err != nil {
		s.log.Warn("Failed to send verification email",
			zap.Error(err),
			zap.String("email", req.Email),
		)
	}

	token, expiresAt, err := s.jwtMaker.Issue(user.ID.String(), user.Email, string(user.Role))
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to look up user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Unknown email and wrong password produce the same answer.
	if user == nil || user.PasswordHash == nil || !utils.CheckPasswordHash(req.Password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.User.TouchLastActive(ctx, user.ID); err != nil {
		s.log.Warn("Failed to touch last active", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	token, expiresAt, err := s.jwtMaker.Issue(user.ID.String(), user.Email, string(user.Role))
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	pending, err := s.repo.Pending.FindValid(ctx, req.Email, req.Code)
	if err != nil {
		s.log.Error("Failed to look up verification code", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find verification code: %w", err)
	}
	if pending == nil {
		return nil, fmt.Errorf("%w: invalid or expired verification code", ErrNotFound)
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	user.EmailVerified = true
	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("mark email verified: %w", err)
	}

	if err := s.repo.Pending.DeleteByEmail(ctx, req.Email); err != nil {
		s.log.Warn("Failed to delete used verification code", zap.Error(err), zap.String("email", req.Email))
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// Refresh trusts the already-verified claims and does not hit the
// database; role changes only take effect at the next login.
func (s *authService) Refresh(ctx context.Context, claims *utils.TokenClaims) (*response.AuthResponse, error) {
	token, expiresAt, err := s.jwtMaker.Refresh(claims)
	if err != nil {
		s.log.Error("Failed to refresh token", zap.Error(err))
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	userID, err := utils.ParseUUID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}
