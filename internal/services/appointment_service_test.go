package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/david-solomon-henshaw/app/domain"
	"github.com/david-solomon-henshaw/app/internal/mocks"
)

func statusPtr(s domain.AppointmentStatus) *domain.AppointmentStatus { return &s }
func uintPtr(v uint) *uint                                           { return &v }

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:                   9,
		PatientID:            4,
		Department:           "cardiology",
		PatientRequestedDate: "2026-09-10",
		PatientRequestedTime: "09:00",
		Status:               domain.StatusPending,
	}
}

func newAppointmentFixtures() (*mocks.MockAppointmentRepository, *mocks.MockPatientRepository, *mocks.MockCaregiverRepository, *mocks.MockNotifier, *mocks.MockAuditService) {
	apptRepo := mocks.NewMockAppointmentRepository()
	patientRepo := mocks.NewMockPatientRepository()
	patientRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Patient, error) {
		return &domain.Patient{ID: id, Email: "patient@emed.example", PhoneNumber: "+2348010000001"}, nil
	}
	caregiverRepo := mocks.NewMockCaregiverRepository()
	caregiverRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Caregiver, error) {
		return &domain.Caregiver{ID: id, Email: "caregiver@emed.example", Department: "cardiology"}, nil
	}
	return apptRepo, patientRepo, caregiverRepo, mocks.NewMockNotifier(), mocks.NewMockAuditService()
}

func TestAppointmentServiceImpl_Create(t *testing.T) {
	tests := []struct {
		name          string
		req           domain.AppointmentRequest
		patientExists bool
		expectedError error
	}{
		{
			name: "successful creation",
			req: domain.AppointmentRequest{
				PatientID:            4,
				Department:           "cardiology",
				PatientRequestedDate: "2026-09-10",
				PatientRequestedTime: "09:00",
			},
			patientExists: true,
		},
		{
			name: "missing department",
			req: domain.AppointmentRequest{
				PatientID:            4,
				PatientRequestedDate: "2026-09-10",
				PatientRequestedTime: "09:00",
			},
			patientExists: true,
			expectedError: domain.ErrValidation,
		},
		{
			name: "unknown patient",
			req: domain.AppointmentRequest{
				PatientID:            77,
				Department:           "cardiology",
				PatientRequestedDate: "2026-09-10",
				PatientRequestedTime: "09:00",
			},
			patientExists: false,
			expectedError: domain.ErrPatientNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apptRepo, patientRepo, caregiverRepo, notifier, audit := newAppointmentFixtures()
			if !tt.patientExists {
				patientRepo.FindByIDFunc = nil
			}

			svc := NewAppointmentService(apptRepo, patientRepo, caregiverRepo, notifier, audit)
			appt, err := svc.Create(context.Background(), tt.req)

			if tt.expectedError != nil {
				if err != tt.expectedError {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if appt.Status != domain.StatusPending {
					t.Errorf("expected pending status, got %s", appt.Status)
				}
				if appt.CaregiverID != nil || appt.AppointmentDate != nil || appt.ApprovedAt != nil {
					t.Error("expected scheduling fields to start empty")
				}
			}

			if len(audit.Entries) != 1 {
				t.Fatalf("expected 1 action log entry, got %d", len(audit.Entries))
			}
			if audit.Entries[0].Action != domain.ActionAddAppointment {
				t.Errorf("expected action %q, got %q", domain.ActionAddAppointment, audit.Entries[0].Action)
			}
			// Creation never notifies; only transitions do.
			if notifier.ApprovedCalls+notifier.SuspendedCalls+notifier.CanceledCalls != 0 {
				t.Error("expected no notifications on creation")
			}
		})
	}
}

func TestAppointmentServiceImpl_Create_ValidationAuditEchoesInput(t *testing.T) {
	apptRepo, patientRepo, caregiverRepo, notifier, audit := newAppointmentFixtures()
	svc := NewAppointmentService(apptRepo, patientRepo, caregiverRepo, notifier, audit)

	_, err := svc.Create(context.Background(), domain.AppointmentRequest{
		PatientID:            4,
		Department:           "cardiology",
		PatientRequestedDate: "2026-09-10",
	})
	if err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	// The failed entry carries the partial input the patient submitted.
	entry := audit.Last()
	if entry.Status != domain.ActionFailed {
		t.Fatalf("expected a failed action log entry, got %s", entry.Status)
	}
	for _, want := range []string{"patient 4", `"cardiology"`, `"2026-09-10"`} {
		if !strings.Contains(entry.Description, want) {
			t.Errorf("expected description to contain %s, got %q", want, entry.Description)
		}
	}
}

func TestAppointmentServiceImpl_Update_Approve(t *testing.T) {
	apptRepo, patientRepo, caregiverRepo, notifier, audit := newAppointmentFixtures()
	stored := pendingAppointment()
	apptRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Appointment, error) {
		cp := *stored
		return &cp, nil
	}
	apptRepo.UpdateFunc = func(ctx context.Context, appt *domain.Appointment) error {
		*stored = *appt
		return nil
	}

	svc := NewAppointmentService(apptRepo, patientRepo, caregiverRepo, notifier, audit)
	admin := domain.UserRef{Role: domain.RoleAdmin, ID: 1}
	when := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

	appt, err := svc.Update(context.Background(), 9, domain.AppointmentUpdate{
		Status:          statusPtr(domain.StatusApproved),
		CaregiverID:     uintPtr(3),
		AppointmentDate: &when,
		StartTime:       &when,
	}, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != domain.StatusApproved {
		t.Errorf("expected approved, got %s", appt.Status)
	}
	if appt.ApprovedAt == nil {
		t.Fatal("expected approvedAt to be set on first approval")
	}
	firstApproval := *appt.ApprovedAt
	if notifier.ApprovedCalls != 1 {
		t.Errorf("expected 1 approval notification, got %d", notifier.ApprovedCalls)
	}

	// A second approval keeps the original timestamp but still notifies,
	// so a rescheduled date or time reaches both parties.
	later := when.Add(48 * time.Hour)
	appt, err = svc.Update(context.Background(), 9, domain.AppointmentUpdate{
		Status:          statusPtr(domain.StatusApproved),
		AppointmentDate: &later,
	}, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !appt.ApprovedAt.Equal(firstApproval) {
		t.Errorf("expected approvedAt %v to be preserved, got %v", firstApproval, appt.ApprovedAt)
	}
	if notifier.ApprovedCalls != 2 {
		t.Errorf("expected re-approval to notify again, got %d calls", notifier.ApprovedCalls)
	}
}

func TestAppointmentServiceImpl_Update_NotificationKeyedOnStatus(t *testing.T) {
	apptRepo, patientRepo, caregiverRepo, notifier, audit := newAppointmentFixtures()
	stored := pendingAppointment()
	stored.Status = domain.StatusSuspended
	apptRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Appointment, error) {
		cp := *stored
		return &cp, nil
	}

	svc := NewAppointmentService(apptRepo, patientRepo, caregiverRepo, notifier, audit)
	admin := domain.UserRef{Role: domain.RoleAdmin, ID: 1}

	// Re-asserting the stored suspension still mails the parties.
	if _, err := svc.Update(context.Background(), 9, domain.AppointmentUpdate{
		Status: statusPtr(domain.StatusSuspended),
	}, admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifier.SuspendedCalls != 1 {
		t.Errorf("expected 1 suspension notification, got %d", notifier.SuspendedCalls)
	}

	// An update that carries no status sends nothing.
	when := time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC)
	if _, err := svc.Update(context.Background(), 9, domain.AppointmentUpdate{
		AppointmentDate: &when,
	}, admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifier.ApprovedCalls+notifier.SuspendedCalls+notifier.CanceledCalls != 1 {
		t.Error("expected no notification for a date-only update")
	}
}

func TestAppointmentServiceImpl_Update_PartialKeepsFields(t *testing.T) {
	apptRepo, patientRepo, caregiverRepo, notifier, audit := newAppointmentFixtures()
	stored := pendingAppointment()
	stored.CaregiverID = uintPtr(3)
	apptRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Appointment, error) {
		cp := *stored
		return &cp, nil
	}

	svc := NewAppointmentService(apptRepo, patientRepo, caregiverRepo, notifier, audit)
	appt, err := svc.Update(context.Background(), 9, domain.AppointmentUpdate{
		Status: statusPtr(domain.StatusSuspended),
	}, domain.UserRef{Role: domain.RoleAdmin, ID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.CaregiverID == nil || *appt.CaregiverID != 3 {
		t.Errorf("expected caregiver assignment to survive partial update, got %v", appt.CaregiverID)
	}
	if notifier.SuspendedCalls != 1 {
		t.Errorf("expected 1 suspension notification, got %d", notifier.SuspendedCalls)
	}
}

func TestAppointmentServiceImpl_Update_InvalidStatus(t *testing.T) {
	apptRepo, patientRepo, caregiverRepo, notifier, audit := newAppointmentFixtures()
	apptRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Appointment, error) {
		return pendingAppointment(), nil
	}

	svc := NewAppointmentService(apptRepo, patientRepo, caregiverRepo, notifier, audit)
	bad := domain.AppointmentStatus("scheduled")
	_, err := svc.Update(context.Background(), 9, domain.AppointmentUpdate{Status: &bad}, domain.UserRef{Role: domain.RoleAdmin, ID: 1})
	if err != domain.ErrInvalidStatus {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if audit.Last().Status != domain.ActionFailed {
		t.Error("expected a failed action log entry")
	}
}

func TestAppointmentServiceImpl_Cancel(t *testing.T) {
	tests := []struct {
		name           string
		storedStatus   domain.AppointmentStatus
		expectedError  error
		expectNotified bool
	}{
		{
			name:           "cancel pending appointment",
			storedStatus:   domain.StatusPending,
			expectNotified: true,
		},
		{
			name:           "cancel approved appointment",
			storedStatus:   domain.StatusApproved,
			expectNotified: true,
		},
		{
			name:          "already canceled",
			storedStatus:  domain.StatusCanceled,
			expectedError: domain.ErrAlreadyCanceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apptRepo, patientRepo, caregiverRepo, notifier, audit := newAppointmentFixtures()
			apptRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Appointment, error) {
				appt := pendingAppointment()
				appt.Status = tt.storedStatus
				return appt, nil
			}

			svc := NewAppointmentService(apptRepo, patientRepo, caregiverRepo, notifier, audit)
			actor := domain.UserRef{Role: domain.RolePatient, ID: 4}
			appt, err := svc.Cancel(context.Background(), 9, domain.StatusCanceled, actor)

			if tt.expectedError != nil {
				if err != tt.expectedError {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if appt.Status != domain.StatusCanceled {
					t.Errorf("expected canceled, got %s", appt.Status)
				}
			}

			if len(audit.Entries) != 1 {
				t.Fatalf("expected 1 action log entry, got %d", len(audit.Entries))
			}
			if tt.expectNotified && notifier.CanceledCalls != 1 {
				t.Errorf("expected 1 cancellation notification, got %d", notifier.CanceledCalls)
			}
			if !tt.expectNotified && notifier.CanceledCalls != 0 {
				t.Errorf("expected no notification, got %d", notifier.CanceledCalls)
			}
		})
	}
}

func TestAppointmentServiceImpl_Cancel_PersistFailureSkipsNotification(t *testing.T) {
	apptRepo, patientRepo, caregiverRepo, notifier, audit := newAppointmentFixtures()
	apptRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Appointment, error) {
		return pendingAppointment(), nil
	}
	apptRepo.UpdateFunc = func(ctx context.Context, appt *domain.Appointment) error {
		return context.DeadlineExceeded
	}

	svc := NewAppointmentService(apptRepo, patientRepo, caregiverRepo, notifier, audit)
	_, err := svc.Cancel(context.Background(), 9, domain.StatusCanceled, domain.UserRef{Role: domain.RolePatient, ID: 4})
	if err == nil {
		t.Fatal("expected an error when persistence fails")
	}
	if notifier.CanceledCalls != 0 {
		t.Error("expected no notification when the state change was not persisted")
	}
	if audit.Last().Status != domain.ActionFailed {
		t.Error("expected a failed action log entry")
	}
}

func TestAppointmentServiceImpl_UpdateStatusByCaregiver(t *testing.T) {
	tests := []struct {
		name          string
		caregiverID   uint
		assignedTo    *uint
		status        domain.AppointmentStatus
		expectedError error
	}{
		{
			name:        "caregiver completes own appointment",
			caregiverID: 3,
			assignedTo:  uintPtr(3),
			status:      domain.StatusCompleted,
		},
		{
			name:          "appointment assigned to someone else",
			caregiverID:   3,
			assignedTo:    uintPtr(8),
			status:        domain.StatusCompleted,
			expectedError: domain.ErrUnauthorized,
		},
		{
			name:          "unassigned appointment",
			caregiverID:   3,
			assignedTo:    nil,
			status:        domain.StatusCompleted,
			expectedError: domain.ErrUnauthorized,
		},
		{
			name:          "invalid status",
			caregiverID:   3,
			assignedTo:    uintPtr(3),
			status:        domain.AppointmentStatus("done"),
			expectedError: domain.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apptRepo, patientRepo, caregiverRepo, notifier, audit := newAppointmentFixtures()
			apptRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Appointment, error) {
				appt := pendingAppointment()
				appt.Status = domain.StatusApproved
				appt.CaregiverID = tt.assignedTo
				return appt, nil
			}

			svc := NewAppointmentService(apptRepo, patientRepo, caregiverRepo, notifier, audit)
			appt, err := svc.UpdateStatusByCaregiver(context.Background(), tt.caregiverID, 9, tt.status)

			if tt.expectedError != nil {
				if err != tt.expectedError {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if appt.Status != tt.status {
				t.Errorf("expected status %s, got %s", tt.status, appt.Status)
			}
			if len(audit.Entries) != 1 {
				t.Errorf("expected 1 action log entry, got %d", len(audit.Entries))
			}
		})
	}
}

func TestAppointmentServiceImpl_ListForPatient(t *testing.T) {
	apptRepo, patientRepo, caregiverRepo, notifier, audit := newAppointmentFixtures()
	apptRepo.ListByPatientFunc = func(ctx context.Context, patientID uint) ([]domain.Appointment, error) {
		return []domain.Appointment{*pendingAppointment()}, nil
	}

	svc := NewAppointmentService(apptRepo, patientRepo, caregiverRepo, notifier, audit)
	appts, err := svc.ListForPatient(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(appts) != 1 {
		t.Errorf("expected 1 appointment, got %d", len(appts))
	}
	if audit.Last().Action != domain.ActionViewAppointments {
		t.Errorf("expected action %q, got %q", domain.ActionViewAppointments, audit.Last().Action)
	}
}
