package mocks

import (
	"context"
	"time"

	"github.com/david-solomon-henshaw/app/domain"
)

// MockDirectory implements domain.IdentityDirectory interface for testing
type MockDirectory struct {
	LookupFunc  func(ctx context.Context, email string) (*domain.Account, error)
	ResolveFunc func(ctx context.Context, ref domain.UserRef) (*domain.Account, error)
	SaveOTPFunc func(ctx context.Context, ref domain.UserRef, code string, expiresAt *time.Time) error
}

// NewMockDirectory creates a new MockDirectory with default behaviors
func NewMockDirectory() *MockDirectory {
	return &MockDirectory{}
}

// Lookup resolves an account by email
func (m *MockDirectory) Lookup(ctx context.Context, email string) (*domain.Account, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Resolve resolves an account by role-tagged reference
func (m *MockDirectory) Resolve(ctx context.Context, ref domain.UserRef) (*domain.Account, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, ref)
	}
	return nil, domain.ErrUserNotFound
}

// SaveOTP stores or clears the code on the directory record
func (m *MockDirectory) SaveOTP(ctx context.Context, ref domain.UserRef, code string, expiresAt *time.Time) error {
	if m.SaveOTPFunc != nil {
		return m.SaveOTPFunc(ctx, ref, code, expiresAt)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.IdentityDirectory = (*MockDirectory)(nil)
