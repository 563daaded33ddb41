package domain

import "time"

// Role identifies which directory an account lives in.
type Role string

const (
	RoleAdmin     Role = "admin"
	RolePatient   Role = "patient"
	RoleCaregiver Role = "caregiver"

	// RoleError is a sentinel used only in action log entries when no
	// account could be resolved for the operation.
	RoleError Role = "error"
)

// UserRef is a role-tagged reference to an account in one of the three
// directories. Consumers resolve it through a dispatch keyed on Role
// instead of a single untyped foreign key.
type UserRef struct {
	Role Role
	ID   uint
}

// Admin represents an administrator account
type Admin struct {
	ID           uint
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	OTP          string
	OTPExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Patient represents a patient account
type Patient struct {
	ID           uint
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	DateOfBirth  time.Time
	Gender       string
	OTP          string
	OTPExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Caregiver represents a caregiver account
type Caregiver struct {
	ID           uint
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Department   string
	Available    bool
	OTP          string
	OTPExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Account is the unified view of a directory record produced by email
// lookup. It carries everything the login and OTP flows need regardless
// of which directory matched.
type Account struct {
	Ref          UserRef
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	OTP          string
	OTPExpiresAt *time.Time
}

// AppointmentStatus enumerates the lifecycle states of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusApproved  AppointmentStatus = "approved"
	StatusSuspended AppointmentStatus = "suspended"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusCompleted AppointmentStatus = "completed"
)

// Valid reports whether s is one of the known lifecycle states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusSuspended, StatusCanceled, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are expected from s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCanceled || s == StatusCompleted
}

// Appointment represents a patient's appointment request and its
// admin-managed schedule.
type Appointment struct {
	ID                   uint
	PatientID            uint
	CaregiverID          *uint
	Department           string
	PatientRequestedDate string
	PatientRequestedTime string
	AppointmentDate      *time.Time
	StartTime            *time.Time
	Status               AppointmentStatus
	ApprovedAt           *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AppointmentRequest is the patient-supplied creation input
type AppointmentRequest struct {
	PatientID            uint
	Department           string
	PatientRequestedDate string
	PatientRequestedTime string
}

// AppointmentUpdate carries the optional fields of an admin update.
// Nil fields keep their stored value.
type AppointmentUpdate struct {
	Status          *AppointmentStatus
	CaregiverID     *uint
	AppointmentDate *time.Time
	StartTime       *time.Time
}

// LoginResult is returned after a successful credential check. It is a
// role hint only; no token exists until the OTP step completes.
type LoginResult struct {
	Role Role
}

// AuthResult represents the outcome of OTP verification
type AuthResult struct {
	Account   *Account
	Token     string
	ExpiresIn int64
}

// TokenClaims represents the JWT claims bound to an authenticated user
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	TokenID   string `json:"jti,omitempty"`
}

// PatientRegistration is the self-service patient signup input
type PatientRegistration struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
	DateOfBirth time.Time
	Gender      string
}

// AdminRegistration is the admin signup input
type AdminRegistration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// CaregiverInput is the admin-supplied caregiver create/update input.
// Available defaults to true when nil on create.
type CaregiverInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
	Department  string
	Available   *bool
}

// PatientProfile aggregates a patient record with its appointment
// statistics for the profile view.
type PatientProfile struct {
	Patient           *Patient
	Appointments      []Appointment
	TotalAppointments int
	TotalCaregivers   int
	CompletedCount    int
}
