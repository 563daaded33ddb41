package domain

import (
	"context"
	"time"
)

// AdminRepository defines admin directory data access operations
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByID(ctx context.Context, id uint) (*Admin, error)
	Update(ctx context.Context, admin *Admin) error
}

// PatientRepository defines patient directory data access operations
type PatientRepository interface {
	Create(ctx context.Context, patient *Patient) error
	FindByEmail(ctx context.Context, email string) (*Patient, error)
	FindByID(ctx context.Context, id uint) (*Patient, error)
	Update(ctx context.Context, patient *Patient) error
}

// CaregiverRepository defines caregiver directory data access operations
type CaregiverRepository interface {
	Create(ctx context.Context, caregiver *Caregiver) error
	FindByEmail(ctx context.Context, email string) (*Caregiver, error)
	FindByID(ctx context.Context, id uint) (*Caregiver, error)
	Update(ctx context.Context, caregiver *Caregiver) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]Caregiver, error)
}

// AppointmentRepository defines appointment data access operations
type AppointmentRepository interface {
	Create(ctx context.Context, appt *Appointment) error
	FindByID(ctx context.Context, id uint) (*Appointment, error)
	Update(ctx context.Context, appt *Appointment) error
	List(ctx context.Context) ([]Appointment, error)
	ListByPatient(ctx context.Context, patientID uint) ([]Appointment, error)
	ListByCaregiver(ctx context.Context, caregiverID uint) ([]Appointment, error)
	CountCompletedByPatient(ctx context.Context, patientID uint) (int64, error)
	CountDistinctCaregiversByPatient(ctx context.Context, patientID uint) (int64, error)
}

// ActionLogRepository persists the append-only action log. Entries are
// never updated or deleted once written.
type ActionLogRepository interface {
	Create(ctx context.Context, entry *ActionLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]ActionLogEntry, error)
}

// IdentityDirectory resolves accounts across the role-partitioned
// directories. Lookup probes admin, then patient, then caregiver; the
// first match wins by design (role precedence, not a collision check).
type IdentityDirectory interface {
	Lookup(ctx context.Context, email string) (*Account, error)
	Resolve(ctx context.Context, ref UserRef) (*Account, error)
	SaveOTP(ctx context.Context, ref UserRef, code string, expiresAt *time.Time) error
}

// AuthService defines the two-step login flow
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	VerifyOTP(ctx context.Context, email, code string) (*AuthResult, error)
}

// OTPService defines one-time code operations. Issue generates a code,
// stores it with its expiry on the account's directory record and sends
// it out; Check validates a submitted code against the stored state
// without clearing it.
type OTPService interface {
	Issue(ctx context.Context, account *Account) error
	Check(ctx context.Context, account *Account, code string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines session token operations
type TokenService interface {
	Generate(ref UserRef) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// NotificationService defines the raw delivery channels
type NotificationService interface {
	SendEmail(to, subject, htmlBody string) error
	SendSMS(to, message string) error
}

// AppointmentNotifier formats and dispatches the role-specific messages
// triggered by lifecycle transitions and the OTP step.
type AppointmentNotifier interface {
	OTPCode(ctx context.Context, account *Account, code string, ttl time.Duration) error
	AppointmentApproved(ctx context.Context, patient *Patient, caregiver *Caregiver, appt *Appointment) error
	AppointmentSuspended(ctx context.Context, patient *Patient, caregiver *Caregiver, appt *Appointment) error
	AppointmentCanceled(ctx context.Context, patient *Patient, appt *Appointment) error
}

// CasbinEnforcer abstracts the enforcer so policy logic can be tested
// without a database-backed adapter.
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}

// PolicyService defines RBAC policy management operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// AuditService records action log entries. Record must never fail the
// calling operation: persistence errors are logged and swallowed.
type AuditService interface {
	Record(ctx context.Context, entry ActionLogEntry)
}

// AppointmentService owns the appointment state machine
type AppointmentService interface {
	Create(ctx context.Context, req AppointmentRequest) (*Appointment, error)
	Update(ctx context.Context, id uint, upd AppointmentUpdate, actor UserRef) (*Appointment, error)
	Cancel(ctx context.Context, id uint, status AppointmentStatus, actor UserRef) (*Appointment, error)
	List(ctx context.Context, actor UserRef) ([]Appointment, error)
	ListForPatient(ctx context.Context, patientID uint) ([]Appointment, error)
	ListForCaregiver(ctx context.Context, caregiverID uint) ([]Appointment, error)
	UpdateStatusByCaregiver(ctx context.Context, caregiverID, apptID uint, status AppointmentStatus) (*Appointment, error)
}

// AccountService owns registration and caregiver management
type AccountService interface {
	RegisterPatient(ctx context.Context, reg PatientRegistration) (*Patient, error)
	RegisterAdmin(ctx context.Context, reg AdminRegistration, actor UserRef) (*Admin, error)
	CreateCaregiver(ctx context.Context, in CaregiverInput, actor UserRef) (*Caregiver, error)
	UpdateCaregiver(ctx context.Context, id uint, in CaregiverInput) (*Caregiver, error)
	DeleteCaregiver(ctx context.Context, id uint, actor UserRef) error
	ListCaregivers(ctx context.Context) ([]Caregiver, error)
	GetCaregiver(ctx context.Context, id uint) (*Caregiver, error)
	PatientProfile(ctx context.Context, patientID uint) (*PatientProfile, error)
}
