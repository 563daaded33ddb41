package mocks

import (
	"context"

	"github.com/david-solomon-henshaw/app/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	LoginFunc     func(ctx context.Context, email, password string) (*domain.LoginResult, error)
	VerifyOTPFunc func(ctx context.Context, email, code string) (*domain.AuthResult, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Login runs the credential check and OTP dispatch step
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	// Default behavior: accept as a patient
	return &domain.LoginResult{Role: domain.RolePatient}, nil
}

// VerifyOTP completes the second factor and issues a token
func (m *MockAuthService) VerifyOTP(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, code)
	}
	// Default behavior: successful verification with a canned token
	return &domain.AuthResult{
		Account: &domain.Account{
			Ref:   domain.UserRef{Role: domain.RolePatient, ID: 1},
			Email: email,
		},
		Token:     "mock_token",
		ExpiresIn: 3600,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
