package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	Me(ctx context.Context, userID string) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req *request.ChangePasswordRequest) error

	ListAddresses(ctx context.Context, userID string) ([]response.AddressResponse, error)
	CreateAddress(ctx context.Context, userID string, req *request.CreateAddressRequest) (*response.AddressResponse, error)
	UpdateAddress(ctx context.Context, userID, addressID string, req *request.UpdateAddressRequest) (*response.AddressResponse, error)
	SetDefaultAddress(ctx context.Context, userID, addressID string) error
	DeleteAddress(ctx context.Context, userID, addressID string) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	id, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrNotFound)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	return user, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.repo.User.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if existing != nil {
			return nil, ErrUserExists
		}
		// Changing the address invalidates prior verification.
		user.Email = *req.Email
		user.EmailVerified = false
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req *request.ChangePasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if user.PasswordHash == nil || !utils.CheckPasswordHash(req.CurrentPassword, *user.PasswordHash) {
		return ErrInvalidCredentials
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.User.UpdatePassword(ctx, user.ID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

func (s *userService) ListAddresses(ctx context.Context, userID string) ([]response.AddressResponse, error) {
	id, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrNotFound)
	}

	addresses, err := s.repo.Address.FindByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	return response.AddressesToResponse(addresses), nil
}

func (s *userService) CreateAddress(ctx context.Context, userID string, req *request.CreateAddressRequest) (*response.AddressResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrNotFound)
	}

	now := time.Now()
	address := &entity.Address{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:     id,
		Name:       req.Name,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	}

	if err := s.repo.Address.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	if req.IsDefault {
		if err := s.repo.Address.SetDefault(ctx, id, address.ID); err != nil {
			return nil, fmt.Errorf("set default address: %w", err)
		}
	}

	resp := response.AddressToResponse(address)
	return &resp, nil
}

// ownedAddress loads an address and checks it belongs to the caller.
func (s *userService) ownedAddress(ctx context.Context, userID, addressID string) (*entity.Address, uuid.UUID, error) {
	uid, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: invalid user ID", ErrNotFound)
	}

	aid, err := utils.ParseUUID(addressID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: invalid address ID", ErrNotFound)
	}

	address, err := s.repo.Address.FindByID(ctx, aid)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("find address: %w", err)
	}
	if address == nil || address.UserID != uid {
		return nil, uuid.Nil, fmt.Errorf("%w: address not found", ErrNotFound)
	}
	return address, uid, nil
}

func (s *userService) UpdateAddress(ctx context.Context, userID, addressID string, req *request.UpdateAddressRequest) (*response.AddressResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	address, _, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	address.Name = req.Name
	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.PostalCode = req.PostalCode
	address.Country = req.Country

	if err := s.repo.Address.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	resp := response.AddressToResponse(address)
	return &resp, nil
}

func (s *userService) SetDefaultAddress(ctx context.Context, userID, addressID string) error {
	address, uid, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return err
	}

	if err := s.repo.Address.SetDefault(ctx, uid, address.ID); err != nil {
		return fmt.Errorf("set default address: %w", err)
	}

	return nil
}

func (s *userService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	address, _, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return err
	}

	if err := s.repo.Address.Delete(ctx, address.ID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	return nil
}
