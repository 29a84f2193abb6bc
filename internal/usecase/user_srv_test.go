package usecase

import (
	"context"
	"testing"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAddressRepo struct {
	byID map[uuid.UUID]*entity.Address
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{byID: map[uuid.UUID]*entity.Address{}}
}

func (f *fakeAddressRepo) Create(_ context.Context, address *entity.Address) error {
	f.byID[address.ID] = address
	return nil
}

func (f *fakeAddressRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Address, error) {
	return f.byID[id], nil
}

func (f *fakeAddressRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	var result []*entity.Address
	for _, address := range f.byID {
		if address.UserID == userID {
			result = append(result, address)
		}
	}
	return result, nil
}

func (f *fakeAddressRepo) Update(_ context.Context, address *entity.Address) error {
	f.byID[address.ID] = address
	return nil
}

// SetDefault flips the flag on the target and clears every other address
// of the same user, like the transactional UPDATE pair.
func (f *fakeAddressRepo) SetDefault(_ context.Context, userID, addressID uuid.UUID) error {
	for _, address := range f.byID {
		if address.UserID == userID {
			address.IsDefault = address.ID == addressID
		}
	}
	return nil
}

func (f *fakeAddressRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func userTestService(addresses *fakeAddressRepo) UserService {
	repo := &repository.Repository{
		Address: addresses,
	}
	return NewUserService(repo, zap.NewNop())
}

func seedAddress(addresses *fakeAddressRepo, userID uuid.UUID, isDefault bool) *entity.Address {
	address := &entity.Address{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		UserID:       userID,
		Name:         "Jane Doe",
		Line1:        "1 Main St",
		City:         "Springfield",
		State:        "IL",
		PostalCode:   "62701",
		Country:      "US",
		IsDefault:    isDefault,
	}
	addresses.byID[address.ID] = address
	return address
}

func TestSetDefaultAddressClearsOthers(t *testing.T) {
	addresses := newFakeAddressRepo()
	svc := userTestService(addresses)

	userID := uuid.New()
	first := seedAddress(addresses, userID, true)
	second := seedAddress(addresses, userID, false)

	require.NoError(t, svc.SetDefaultAddress(context.Background(), userID.String(), second.ID.String()))

	assert.False(t, first.IsDefault)
	assert.True(t, second.IsDefault)
}

func TestSetDefaultAddressOwnership(t *testing.T) {
	addresses := newFakeAddressRepo()
	svc := userTestService(addresses)

	other := seedAddress(addresses, uuid.New(), false)

	// A stranger's address id reads as not found, never as forbidden
	err := svc.SetDefaultAddress(context.Background(), uuid.New().String(), other.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, other.IsDefault)
}
