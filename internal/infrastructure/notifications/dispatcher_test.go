package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david-solomon-henshaw/app/domain"
	"github.com/david-solomon-henshaw/app/internal/mocks"
)

func timePtr(t time.Time) *time.Time { return &t }

func dispatcherFixtures() (*domain.Patient, *domain.Caregiver, *domain.Appointment) {
	patient := &domain.Patient{
		ID:          1,
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		PhoneNumber: "+15550001111",
	}
	caregiver := &domain.Caregiver{
		ID:        2,
		FirstName: "Cara",
		LastName:  "Giver",
		Email:     "cara@example.com",
	}
	appt := &domain.Appointment{
		ID:              3,
		PatientID:       1,
		CaregiverID:     &caregiver.ID,
		AppointmentDate: timePtr(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),
		StartTime:       timePtr(time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)),
		Status:          domain.StatusApproved,
	}
	return patient, caregiver, appt
}

func TestDispatcher_OTPCode(t *testing.T) {
	svc := mocks.NewMockNotificationService()
	d := NewDispatcher(svc)

	account := &domain.Account{
		Ref:   domain.UserRef{Role: domain.RolePatient, ID: 1},
		Email: "jane@example.com",
	}
	err := d.OTPCode(context.Background(), account, "483920", 10*time.Minute)
	require.NoError(t, err)

	require.Len(t, svc.Emails, 1)
	assert.Equal(t, "jane@example.com", svc.Emails[0].To)
	assert.Contains(t, svc.Emails[0].Body, "483920")
	assert.Contains(t, svc.Emails[0].Body, "10 minutes")
}

func TestDispatcher_AppointmentApproved(t *testing.T) {
	svc := mocks.NewMockNotificationService()
	d := NewDispatcher(svc)
	patient, caregiver, appt := dispatcherFixtures()

	err := d.AppointmentApproved(context.Background(), patient, caregiver, appt)
	require.NoError(t, err)

	require.Len(t, svc.Emails, 2)
	assert.Equal(t, "jane@example.com", svc.Emails[0].To)
	assert.Contains(t, svc.Emails[0].Body, "Cara Giver")
	assert.Equal(t, "cara@example.com", svc.Emails[1].To)
	assert.Contains(t, svc.Emails[1].Body, "Jane Doe")
}

func TestDispatcher_AppointmentApprovedWithoutCaregiver(t *testing.T) {
	svc := mocks.NewMockNotificationService()
	d := NewDispatcher(svc)
	patient, _, appt := dispatcherFixtures()
	appt.CaregiverID = nil

	err := d.AppointmentApproved(context.Background(), patient, nil, appt)
	require.NoError(t, err)

	require.Len(t, svc.Emails, 1)
	assert.Contains(t, svc.Emails[0].Body, "your caregiver")
}

func TestDispatcher_AppointmentCanceledSendsSMS(t *testing.T) {
	svc := mocks.NewMockNotificationService()
	d := NewDispatcher(svc)
	patient, _, appt := dispatcherFixtures()

	err := d.AppointmentCanceled(context.Background(), patient, appt)
	require.NoError(t, err)

	require.Len(t, svc.Emails, 1)
	require.Len(t, svc.SMS, 1)
	assert.Equal(t, "+15550001111", svc.SMS[0].To)
	assert.Contains(t, svc.SMS[0].Message, "September 15, 2026")
}

func TestDispatcher_AppointmentCanceledWithoutPhone(t *testing.T) {
	svc := mocks.NewMockNotificationService()
	d := NewDispatcher(svc)
	patient, _, appt := dispatcherFixtures()
	patient.PhoneNumber = ""

	err := d.AppointmentCanceled(context.Background(), patient, appt)
	require.NoError(t, err)

	assert.Len(t, svc.Emails, 1)
	assert.Empty(t, svc.SMS)
}

func TestDispatcher_EmailFailurePropagates(t *testing.T) {
	svc := mocks.NewMockNotificationService()
	svc.SendEmailFunc = func(to, subject, htmlBody string) error {
		return errors.New("smtp down")
	}
	d := NewDispatcher(svc)
	patient, caregiver, appt := dispatcherFixtures()

	err := d.AppointmentSuspended(context.Background(), patient, caregiver, appt)
	assert.Error(t, err)
}

func TestDispatcher_UnscheduledAppointmentDates(t *testing.T) {
	svc := mocks.NewMockNotificationService()
	d := NewDispatcher(svc)
	patient, _, appt := dispatcherFixtures()
	appt.AppointmentDate = nil
	appt.StartTime = nil

	err := d.AppointmentCanceled(context.Background(), patient, appt)
	require.NoError(t, err)

	require.NotEmpty(t, svc.Emails)
	assert.Contains(t, svc.Emails[0].Body, "a date to be scheduled")
}
