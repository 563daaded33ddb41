package mocks

import (
	"time"

	"github.com/david-solomon-henshaw/app/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateFunc func(ref domain.UserRef) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate issues a token for the referenced account
func (m *MockTokenService) Generate(ref domain.UserRef) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ref)
	}
	return "mock_token", nil
}

// Validate parses and validates a token
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	if token != "mock_token" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    1,
		Role:      domain.RolePatient,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
		TokenID:   "mock_jti",
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
