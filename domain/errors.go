package domain

import "errors"

// Identity errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrPatientNotFound    = errors.New("patient not found")
	ErrCaregiverNotFound  = errors.New("caregiver not found")
	ErrAdminNotFound      = errors.New("admin not found")
)

// OTP errors
var (
	ErrNoPendingOTP   = errors.New("no otp request found")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Appointment errors
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAlreadyCanceled     = errors.New("appointment is already canceled")
	ErrValidation          = errors.New("missing required fields")
	ErrInvalidStatus       = errors.New("unknown appointment status")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
)
