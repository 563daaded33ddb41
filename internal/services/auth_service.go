package services

import (
	"context"
	"fmt"
	"time"

	"github.com/david-solomon-henshaw/app/domain"
)

// AuthServiceImpl implements domain.AuthService. Every login and
// verification attempt produces exactly one action log entry, success
// or failure.
type AuthServiceImpl struct {
	directory   domain.IdentityDirectory
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	auditSvc    domain.AuditService
	tokenTTL    time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	directory domain.IdentityDirectory,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	auditSvc domain.AuditService,
	tokenTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		directory:   directory,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		auditSvc:    auditSvc,
		tokenTTL:    tokenTTL,
	}
}

// Login implements domain.AuthService. A successful credential check
// issues an OTP; no token exists until VerifyOTP completes.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	account, err := s.directory.Lookup(ctx, email)
	if err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionLogin).
			BySystem().OnError().
			Describe(fmt.Sprintf("Failed login attempt for %s: account not found", email)).
			Failed())
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionLogin).
			ByUser(account.Ref).On(entityFor(account.Ref.Role), account.Ref.ID).
			Describe(fmt.Sprintf("Failed login attempt for %s: invalid password", email)).
			Failed())
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.otpSvc.Issue(ctx, account); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionLogin).
			ByUser(account.Ref).On(entityFor(account.Ref.Role), account.Ref.ID).
			Describe(fmt.Sprintf("Login for %s failed at OTP dispatch: %v", email, err)).
			Failed())
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionLogin).
		ByUser(account.Ref).On(entityFor(account.Ref.Role), account.Ref.ID).
		Describe(fmt.Sprintf("%s logged in, OTP sent to %s", roleLabel(account.Ref.Role), account.Email)))

	return &domain.LoginResult{Role: account.Ref.Role}, nil
}

// VerifyOTP implements domain.AuthService. The stored code is cleared
// on success and on expiry, so a code can never verify twice.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	account, err := s.directory.Lookup(ctx, email)
	if err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionVerifyOTP).
			BySystem().OnError().
			Describe(fmt.Sprintf("OTP verification attempt for unknown account %s", email)).
			Failed())
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.otpSvc.Check(ctx, account, code); err != nil {
		if err == domain.ErrOTPExpired {
			// Expired codes are dead either way; drop the stored state.
			_ = s.directory.SaveOTP(ctx, account.Ref, "", nil)
		}
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionVerifyOTP).
			ByUser(account.Ref).On(entityFor(account.Ref.Role), account.Ref.ID).
			Describe(fmt.Sprintf("OTP verification failed for %s: %v", email, err)).
			Failed())
		return nil, err
	}

	// Single use: clear before the token leaves the building.
	if err := s.directory.SaveOTP(ctx, account.Ref, "", nil); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionVerifyOTP).
			ByUser(account.Ref).On(entityFor(account.Ref.Role), account.Ref.ID).
			Describe(fmt.Sprintf("OTP verification for %s failed clearing code: %v", email, err)).
			Failed())
		return nil, fmt.Errorf("failed to clear OTP: %w", err)
	}
	account.OTP = ""
	account.OTPExpiresAt = nil

	token, err := s.tokenSvc.Generate(account.Ref)
	if err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionVerifyOTP).
			ByUser(account.Ref).On(entityFor(account.Ref.Role), account.Ref.ID).
			Describe(fmt.Sprintf("OTP verified for %s but token issuance failed: %v", email, err)).
			Failed())
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionVerifyOTP).
		ByUser(account.Ref).On(entityFor(account.Ref.Role), account.Ref.ID).
		Describe(fmt.Sprintf("%s %s completed OTP verification", roleLabel(account.Ref.Role), account.Email)))

	return &domain.AuthResult{
		Account:   account,
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

func entityFor(role domain.Role) domain.EntityKind {
	switch role {
	case domain.RoleAdmin:
		return domain.EntityAdmin
	case domain.RolePatient:
		return domain.EntityPatient
	case domain.RoleCaregiver:
		return domain.EntityCaregiver
	}
	return domain.EntityError
}

func roleLabel(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "Admin"
	case domain.RolePatient:
		return "Patient"
	case domain.RoleCaregiver:
		return "Caregiver"
	}
	return "Unknown"
}
