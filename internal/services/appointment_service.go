package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/david-solomon-henshaw/app/domain"
)

// AppointmentServiceImpl implements domain.AppointmentService. State
// changes are persisted first and audited second; notification dispatch
// runs last and never affects the outcome of the operation.
type AppointmentServiceImpl struct {
	apptRepo      domain.AppointmentRepository
	patientRepo   domain.PatientRepository
	caregiverRepo domain.CaregiverRepository
	notifier      domain.AppointmentNotifier
	auditSvc      domain.AuditService
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	apptRepo domain.AppointmentRepository,
	patientRepo domain.PatientRepository,
	caregiverRepo domain.CaregiverRepository,
	notifier domain.AppointmentNotifier,
	auditSvc domain.AuditService,
) domain.AppointmentService {
	return &AppointmentServiceImpl{
		apptRepo:      apptRepo,
		patientRepo:   patientRepo,
		caregiverRepo: caregiverRepo,
		notifier:      notifier,
		auditSvc:      auditSvc,
	}
}

// Create implements domain.AppointmentService. New appointments always
// start pending; scheduling fields stay empty until an admin acts.
func (s *AppointmentServiceImpl) Create(ctx context.Context, req domain.AppointmentRequest) (*domain.Appointment, error) {
	actor := domain.UserRef{Role: domain.RolePatient, ID: req.PatientID}

	if req.PatientID == 0 || req.Department == "" || req.PatientRequestedDate == "" || req.PatientRequestedTime == "" {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionAddAppointment).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Appointment request rejected, missing required fields: patient %d, department %q, date %q, time %q",
				req.PatientID, req.Department, req.PatientRequestedDate, req.PatientRequestedTime)).
			Failed())
		return nil, domain.ErrValidation
	}

	if _, err := s.patientRepo.FindByID(ctx, req.PatientID); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionAddAppointment).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Appointment request rejected: patient %d not found", req.PatientID)).
			Failed())
		return nil, err
	}

	appt := &domain.Appointment{
		PatientID:            req.PatientID,
		Department:           req.Department,
		PatientRequestedDate: req.PatientRequestedDate,
		PatientRequestedTime: req.PatientRequestedTime,
		Status:               domain.StatusPending,
	}
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionAddAppointment).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Failed to create appointment for patient %d: %v", req.PatientID, err)).
			Failed())
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionAddAppointment).
		ByUser(actor).On(domain.EntityAppointment, appt.ID).
		Describe(fmt.Sprintf("Patient requested a %s appointment for %s %s",
			appt.Department, appt.PatientRequestedDate, appt.PatientRequestedTime)))

	return appt, nil
}

// Update implements domain.AppointmentService. Nil fields of upd keep
// their stored values. ApprovedAt is set exactly once, on the first
// transition to approved, and survives later transitions.
func (s *AppointmentServiceImpl) Update(ctx context.Context, id uint, upd domain.AppointmentUpdate, actor domain.UserRef) (*domain.Appointment, error) {
	appt, err := s.apptRepo.FindByID(ctx, id)
	if err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateAppointment).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Update failed: appointment %d not found", id)).
			Failed())
		return nil, err
	}

	if upd.Status != nil && !upd.Status.Valid() {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateAppointment).
			ByUser(actor).On(domain.EntityAppointment, appt.ID).
			Describe(fmt.Sprintf("Update rejected: invalid status %q for appointment %d", *upd.Status, id)).
			Failed())
		return nil, domain.ErrInvalidStatus
	}

	previous := appt.Status
	if upd.Status != nil {
		appt.Status = *upd.Status
	}
	if upd.CaregiverID != nil {
		if _, err := s.caregiverRepo.FindByID(ctx, *upd.CaregiverID); err != nil {
			s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateAppointment).
				ByUser(actor).On(domain.EntityAppointment, appt.ID).
				Describe(fmt.Sprintf("Update rejected: caregiver %d not found", *upd.CaregiverID)).
				Failed())
			return nil, err
		}
		appt.CaregiverID = upd.CaregiverID
	}
	if upd.AppointmentDate != nil {
		appt.AppointmentDate = upd.AppointmentDate
	}
	if upd.StartTime != nil {
		appt.StartTime = upd.StartTime
	}
	if appt.Status == domain.StatusApproved && appt.ApprovedAt == nil {
		now := time.Now().UTC()
		appt.ApprovedAt = &now
	}

	if err := s.apptRepo.Update(ctx, appt); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateAppointment).
			ByUser(actor).On(domain.EntityAppointment, appt.ID).
			Describe(fmt.Sprintf("Failed to update appointment %d: %v", id, err)).
			Failed())
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateAppointment).
		ByUser(actor).On(domain.EntityAppointment, appt.ID).
		Describe(fmt.Sprintf("Appointment %d updated: status %s", appt.ID, appt.Status)))

	// Approved and suspended updates always notify, even when the status
	// is re-asserted, so a rescheduled date or time reaches both parties.
	if upd.Status != nil {
		switch appt.Status {
		case domain.StatusApproved, domain.StatusSuspended:
			s.notifyTransition(ctx, appt)
		default:
			if appt.Status != previous {
				s.notifyTransition(ctx, appt)
			}
		}
	}

	return appt, nil
}

// Cancel implements domain.AppointmentService. Canceling an already
// canceled appointment is reported as a conflict, not an idempotent
// no-op.
func (s *AppointmentServiceImpl) Cancel(ctx context.Context, id uint, status domain.AppointmentStatus, actor domain.UserRef) (*domain.Appointment, error) {
	if !status.Valid() {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionCancelAppointment).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Cancel rejected: invalid status %q for appointment %d", status, id)).
			Failed())
		return nil, domain.ErrInvalidStatus
	}

	appt, err := s.apptRepo.FindByID(ctx, id)
	if err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionCancelAppointment).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Cancel failed: appointment %d not found", id)).
			Failed())
		return nil, err
	}

	if appt.Status == domain.StatusCanceled {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionCancelAppointment).
			ByUser(actor).On(domain.EntityAppointment, appt.ID).
			Describe(fmt.Sprintf("Cancel rejected: appointment %d is already canceled", id)).
			Failed())
		return nil, domain.ErrAlreadyCanceled
	}

	previous := appt.Status
	appt.Status = status
	if err := s.apptRepo.Update(ctx, appt); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionCancelAppointment).
			ByUser(actor).On(domain.EntityAppointment, appt.ID).
			Describe(fmt.Sprintf("Failed to cancel appointment %d: %v", id, err)).
			Failed())
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionCancelAppointment).
		ByUser(actor).On(domain.EntityAppointment, appt.ID).
		Describe(fmt.Sprintf("Appointment %d canceled (was %s)", appt.ID, previous)))

	if appt.Status != previous {
		s.notifyTransition(ctx, appt)
	}

	return appt, nil
}

// List implements domain.AppointmentService
func (s *AppointmentServiceImpl) List(ctx context.Context, actor domain.UserRef) ([]domain.Appointment, error) {
	appts, err := s.apptRepo.List(ctx)
	if err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionViewAppointments).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Failed to list appointments: %v", err)).
			Failed())
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionViewAppointments).
		ByUser(actor).On(entityFor(actor.Role), actor.ID).
		Describe(fmt.Sprintf("%s viewed all appointments (%d)", roleLabel(actor.Role), len(appts))))

	return appts, nil
}

// ListForPatient implements domain.AppointmentService
func (s *AppointmentServiceImpl) ListForPatient(ctx context.Context, patientID uint) ([]domain.Appointment, error) {
	actor := domain.UserRef{Role: domain.RolePatient, ID: patientID}

	if _, err := s.patientRepo.FindByID(ctx, patientID); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionViewAppointments).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Failed to list appointments: patient %d not found", patientID)).
			Failed())
		return nil, err
	}

	appts, err := s.apptRepo.ListByPatient(ctx, patientID)
	if err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionViewAppointments).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Failed to list appointments for patient %d: %v", patientID, err)).
			Failed())
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionViewAppointments).
		ByUser(actor).On(domain.EntityPatient, patientID).
		Describe(fmt.Sprintf("Patient viewed own appointments (%d)", len(appts))))

	return appts, nil
}

// ListForCaregiver implements domain.AppointmentService
func (s *AppointmentServiceImpl) ListForCaregiver(ctx context.Context, caregiverID uint) ([]domain.Appointment, error) {
	actor := domain.UserRef{Role: domain.RoleCaregiver, ID: caregiverID}

	if _, err := s.caregiverRepo.FindByID(ctx, caregiverID); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionViewAppointments).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Failed to list appointments: caregiver %d not found", caregiverID)).
			Failed())
		return nil, err
	}

	appts, err := s.apptRepo.ListByCaregiver(ctx, caregiverID)
	if err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionViewAppointments).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Failed to list appointments for caregiver %d: %v", caregiverID, err)).
			Failed())
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionViewAppointments).
		ByUser(actor).On(domain.EntityCaregiver, caregiverID).
		Describe(fmt.Sprintf("Caregiver viewed assigned appointments (%d)", len(appts))))

	return appts, nil
}

// UpdateStatusByCaregiver implements domain.AppointmentService. A
// caregiver may only move appointments assigned to them, typically to
// completed after the visit.
func (s *AppointmentServiceImpl) UpdateStatusByCaregiver(ctx context.Context, caregiverID, apptID uint, status domain.AppointmentStatus) (*domain.Appointment, error) {
	actor := domain.UserRef{Role: domain.RoleCaregiver, ID: caregiverID}

	if !status.Valid() {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateAppointment).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Status update rejected: invalid status %q for appointment %d", status, apptID)).
			Failed())
		return nil, domain.ErrInvalidStatus
	}

	appt, err := s.apptRepo.FindByID(ctx, apptID)
	if err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateAppointment).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Status update failed: appointment %d not found", apptID)).
			Failed())
		return nil, err
	}

	if appt.CaregiverID == nil || *appt.CaregiverID != caregiverID {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateAppointment).
			ByUser(actor).On(domain.EntityAppointment, appt.ID).
			Describe(fmt.Sprintf("Status update rejected: appointment %d is not assigned to caregiver %d", apptID, caregiverID)).
			Failed())
		return nil, domain.ErrUnauthorized
	}

	previous := appt.Status
	appt.Status = status
	if appt.Status == domain.StatusApproved && appt.ApprovedAt == nil {
		now := time.Now().UTC()
		appt.ApprovedAt = &now
	}

	if err := s.apptRepo.Update(ctx, appt); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateAppointment).
			ByUser(actor).On(domain.EntityAppointment, appt.ID).
			Describe(fmt.Sprintf("Failed to update appointment %d status: %v", apptID, err)).
			Failed())
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateAppointment).
		ByUser(actor).On(domain.EntityAppointment, appt.ID).
		Describe(fmt.Sprintf("Caregiver moved appointment %d from %s to %s", appt.ID, previous, appt.Status)))

	if appt.Status != previous {
		s.notifyTransition(ctx, appt)
	}

	return appt, nil
}

// notifyTransition dispatches the messages a lifecycle transition
// triggers. Delivery failures are logged only; the state change has
// already been persisted and audited.
func (s *AppointmentServiceImpl) notifyTransition(ctx context.Context, appt *domain.Appointment) {
	patient, err := s.patientRepo.FindByID(ctx, appt.PatientID)
	if err != nil {
		log.Printf("notification skipped for appointment %d: %v", appt.ID, err)
		return
	}

	var caregiver *domain.Caregiver
	if appt.CaregiverID != nil {
		caregiver, err = s.caregiverRepo.FindByID(ctx, *appt.CaregiverID)
		if err != nil {
			log.Printf("caregiver lookup failed for appointment %d: %v", appt.ID, err)
			caregiver = nil
		}
	}

	switch appt.Status {
	case domain.StatusApproved:
		err = s.notifier.AppointmentApproved(ctx, patient, caregiver, appt)
	case domain.StatusSuspended:
		err = s.notifier.AppointmentSuspended(ctx, patient, caregiver, appt)
	case domain.StatusCanceled:
		err = s.notifier.AppointmentCanceled(ctx, patient, appt)
	default:
		return
	}
	if err != nil {
		log.Printf("notification dispatch failed for appointment %d (%s): %v", appt.ID, appt.Status, err)
	}
}
