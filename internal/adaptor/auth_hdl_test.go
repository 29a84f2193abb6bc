package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuthService struct {
	registerErr error
}

func (f *fakeAuthService) Register(_ context.Context, _ *request.RegisterRequest) (*response.AuthResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &response.AuthResponse{Token: "token"}, nil
}

func (f *fakeAuthService) Login(_ context.Context, _ *request.LoginRequest) (*response.AuthResponse, error) {
	return nil, usecase.ErrInvalidCredentials
}

func (f *fakeAuthService) VerifyEmail(_ context.Context, _ *request.VerifyEmailRequest) (*response.UserResponse, error) {
	return nil, usecase.ErrNotFound
}

func (f *fakeAuthService) Refresh(_ context.Context, _ *utils.TokenClaims) (*response.AuthResponse, error) {
	return nil, usecase.ErrInvalidCredentials
}

var _ usecase.AuthService = (*fakeAuthService)(nil)

func registerRequest(t *testing.T) *http.Request {
	t.Helper()
	body, err := json.Marshal(request.RegisterRequest{
		Email:    "dup@example.com",
		Password: "password123",
		Name:     "First",
	})
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
}

func TestRegisterDuplicateEmailBody(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthService{registerErr: usecase.ErrUserExists}, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Register(rec, registerRequest(t))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "User already exists", resp.Error)
}

func TestRegisterCreated(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Register(rec, registerRequest(t))

	assert.Equal(t, http.StatusCreated, rec.Code)
}
