package mocks

import (
	"context"

	"github.com/david-solomon-henshaw/app/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc func(ctx context.Context, account *domain.Account) error
	CheckFunc func(ctx context.Context, account *domain.Account, code string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue generates and dispatches a code for the account
func (m *MockOTPService) Issue(ctx context.Context, account *domain.Account) error {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, account)
	}
	return nil
}

// Check validates a submitted code against the stored state
func (m *MockOTPService) Check(ctx context.Context, account *domain.Account, code string) error {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, account, code)
	}
	// Default behavior: accept "123456" as the valid code
	if code != "123456" {
		return domain.ErrOTPInvalid
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
