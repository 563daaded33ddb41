package domain

import "time"

// Action tags recorded in the action log. One tag per operation; the
// entry status distinguishes success from failure.
const (
	ActionLogin             = "login"
	ActionVerifyOTP         = "verify_otp"
	ActionAddAppointment    = "add_appointment"
	ActionUpdateAppointment = "update_appointment"
	ActionCancelAppointment = "cancel_appointment"
	ActionViewAppointments  = "view_appointments"
	ActionRegisterPatient   = "register_patient"
	ActionRegisterAdmin     = "admin_register"
	ActionCreateCaregiver   = "create_caregiver"
	ActionUpdateCaregiver   = "update_caregiver"
	ActionDeleteCaregiver   = "delete_caregiver"
	ActionViewProfile       = "view_patient_profile"
)

// EntityKind names what an action log entry is about
type EntityKind string

const (
	EntityAdmin       EntityKind = "admin"
	EntityAppointment EntityKind = "appointment"
	EntityCaregiver   EntityKind = "caregiver"
	EntityPatient     EntityKind = "patient"
	EntityError       EntityKind = "error"
)

// ActionStatus marks an action log entry as a success or failure
type ActionStatus string

const (
	ActionSuccess ActionStatus = "success"
	ActionFailed  ActionStatus = "failed"
)

// ActionLogEntry is an immutable audit record. EntityID is required
// unless Entity is EntityError; UserID is nil when no account could be
// resolved for the operation.
type ActionLogEntry struct {
	ID          uint
	UserID      *uint
	UserRole    Role
	Action      string
	Description string
	Entity      EntityKind
	EntityID    *uint
	Status      ActionStatus
	Timestamp   time.Time
}

// NewActionLogEntry creates an entry with the timestamp and success
// status populated; chain the With helpers for the rest.
func NewActionLogEntry(action string) ActionLogEntry {
	return ActionLogEntry{
		Action:    action,
		Status:    ActionSuccess,
		Timestamp: time.Now().UTC(),
	}
}

// ByUser attributes the entry to a resolved account.
func (e ActionLogEntry) ByUser(ref UserRef) ActionLogEntry {
	id := ref.ID
	e.UserID = &id
	e.UserRole = ref.Role
	return e
}

// BySystem marks the entry as unattributable: no user could be resolved.
func (e ActionLogEntry) BySystem() ActionLogEntry {
	e.UserID = nil
	e.UserRole = RoleError
	return e
}

// On sets the affected entity and its id.
func (e ActionLogEntry) On(kind EntityKind, id uint) ActionLogEntry {
	e.Entity = kind
	e.EntityID = &id
	return e
}

// OnError marks the entry as describing a failure with no entity to
// point at.
func (e ActionLogEntry) OnError() ActionLogEntry {
	e.Entity = EntityError
	e.EntityID = nil
	return e
}

// Describe sets the human-readable description.
func (e ActionLogEntry) Describe(text string) ActionLogEntry {
	e.Description = text
	return e
}

// Failed flips the entry status to failed.
func (e ActionLogEntry) Failed() ActionLogEntry {
	e.Status = ActionFailed
	return e
}
