package domain

import (
	"errors"
	"testing"
)

func TestIdentityErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{name: "ErrUserNotFound", err: ErrUserNotFound, expectedMsg: "user not found"},
		{name: "ErrInvalidCredentials", err: ErrInvalidCredentials, expectedMsg: "invalid credentials"},
		{name: "ErrUserAlreadyExists", err: ErrUserAlreadyExists, expectedMsg: "user already exists"},
		{name: "ErrPatientNotFound", err: ErrPatientNotFound, expectedMsg: "patient not found"},
		{name: "ErrCaregiverNotFound", err: ErrCaregiverNotFound, expectedMsg: "caregiver not found"},
		{name: "ErrAdminNotFound", err: ErrAdminNotFound, expectedMsg: "admin not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
			for _, other := range tests {
				if other.name != tt.name && errors.Is(tt.err, other.err) {
					t.Errorf("error %s should not match %s", tt.name, other.name)
				}
			}
		})
	}
}

func TestOTPErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{name: "ErrNoPendingOTP", err: ErrNoPendingOTP, expectedMsg: "no otp request found"},
		{name: "ErrOTPExpired", err: ErrOTPExpired, expectedMsg: "otp has expired"},
		{name: "ErrOTPInvalid", err: ErrOTPInvalid, expectedMsg: "invalid otp code"},
		{name: "ErrOTPMaxAttempts", err: ErrOTPMaxAttempts, expectedMsg: "maximum otp attempts exceeded"},
		{name: "ErrOTPResendLimit", err: ErrOTPResendLimit, expectedMsg: "otp resend limit exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
			if !errors.Is(tt.err, tt.err) {
				t.Error("error should match itself")
			}
		})
	}
}

func TestAppointmentErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{name: "ErrAppointmentNotFound", err: ErrAppointmentNotFound, expectedMsg: "appointment not found"},
		{name: "ErrAlreadyCanceled", err: ErrAlreadyCanceled, expectedMsg: "appointment is already canceled"},
		{name: "ErrValidation", err: ErrValidation, expectedMsg: "missing required fields"},
		{name: "ErrInvalidStatus", err: ErrInvalidStatus, expectedMsg: "unknown appointment status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	// Services wrap infrastructure failures; sentinel identity must survive.
	wrapped := errorsJoin(ErrAppointmentNotFound)
	if !errors.Is(wrapped, ErrAppointmentNotFound) {
		t.Error("wrapped sentinel should still match with errors.Is")
	}
	if errors.Is(wrapped, ErrAlreadyCanceled) {
		t.Error("wrapped sentinel should not match a different sentinel")
	}
}

func errorsJoin(err error) error {
	return &wrappedErr{inner: err}
}

type wrappedErr struct{ inner error }

func (w *wrappedErr) Error() string { return "operation failed: " + w.inner.Error() }
func (w *wrappedErr) Unwrap() error { return w.inner }
