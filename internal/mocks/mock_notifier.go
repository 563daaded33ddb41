package mocks

import (
	"context"
	"time"

	"github.com/david-solomon-henshaw/app/domain"
)

// MockNotifier implements domain.AppointmentNotifier interface for
// testing. The counters record how many times each message kind was
// dispatched.
type MockNotifier struct {
	OTPCodeFunc              func(ctx context.Context, account *domain.Account, code string, ttl time.Duration) error
	AppointmentApprovedFunc  func(ctx context.Context, patient *domain.Patient, caregiver *domain.Caregiver, appt *domain.Appointment) error
	AppointmentSuspendedFunc func(ctx context.Context, patient *domain.Patient, caregiver *domain.Caregiver, appt *domain.Appointment) error
	AppointmentCanceledFunc  func(ctx context.Context, patient *domain.Patient, appt *domain.Appointment) error

	OTPCodeCalls   int
	ApprovedCalls  int
	SuspendedCalls int
	CanceledCalls  int
	LastOTPCode    string
}

// NewMockNotifier creates a new MockNotifier with default behaviors
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// OTPCode dispatches the one-time code message
func (m *MockNotifier) OTPCode(ctx context.Context, account *domain.Account, code string, ttl time.Duration) error {
	m.OTPCodeCalls++
	m.LastOTPCode = code
	if m.OTPCodeFunc != nil {
		return m.OTPCodeFunc(ctx, account, code, ttl)
	}
	return nil
}

// AppointmentApproved dispatches the approval messages
func (m *MockNotifier) AppointmentApproved(ctx context.Context, patient *domain.Patient, caregiver *domain.Caregiver, appt *domain.Appointment) error {
	m.ApprovedCalls++
	if m.AppointmentApprovedFunc != nil {
		return m.AppointmentApprovedFunc(ctx, patient, caregiver, appt)
	}
	return nil
}

// AppointmentSuspended dispatches the suspension messages
func (m *MockNotifier) AppointmentSuspended(ctx context.Context, patient *domain.Patient, caregiver *domain.Caregiver, appt *domain.Appointment) error {
	m.SuspendedCalls++
	if m.AppointmentSuspendedFunc != nil {
		return m.AppointmentSuspendedFunc(ctx, patient, caregiver, appt)
	}
	return nil
}

// AppointmentCanceled dispatches the cancellation messages
func (m *MockNotifier) AppointmentCanceled(ctx context.Context, patient *domain.Patient, appt *domain.Appointment) error {
	m.CanceledCalls++
	if m.AppointmentCanceledFunc != nil {
		return m.AppointmentCanceledFunc(ctx, patient, appt)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AppointmentNotifier = (*MockNotifier)(nil)
