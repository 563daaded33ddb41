package services

import (
	"context"
	"fmt"

	"github.com/david-solomon-henshaw/app/domain"
)

// AccountServiceImpl implements domain.AccountService. Uniqueness is
// enforced per directory: the same email may exist in two directories,
// and login resolves it by role precedence.
type AccountServiceImpl struct {
	adminRepo     domain.AdminRepository
	patientRepo   domain.PatientRepository
	caregiverRepo domain.CaregiverRepository
	apptRepo      domain.AppointmentRepository
	passwordSvc   domain.PasswordService
	auditSvc      domain.AuditService
}

// NewAccountService creates a new account service
func NewAccountService(
	adminRepo domain.AdminRepository,
	patientRepo domain.PatientRepository,
	caregiverRepo domain.CaregiverRepository,
	apptRepo domain.AppointmentRepository,
	passwordSvc domain.PasswordService,
	auditSvc domain.AuditService,
) domain.AccountService {
	return &AccountServiceImpl{
		adminRepo:     adminRepo,
		patientRepo:   patientRepo,
		caregiverRepo: caregiverRepo,
		apptRepo:      apptRepo,
		passwordSvc:   passwordSvc,
		auditSvc:      auditSvc,
	}
}

// RegisterPatient implements domain.AccountService
func (s *AccountServiceImpl) RegisterPatient(ctx context.Context, reg domain.PatientRegistration) (*domain.Patient, error) {
	if reg.FirstName == "" || reg.LastName == "" || reg.Email == "" || reg.Password == "" {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionRegisterPatient).
			BySystem().OnError().
			Describe("Patient registration rejected: missing required fields").
			Failed())
		return nil, domain.ErrValidation
	}

	if existing, err := s.patientRepo.FindByEmail(ctx, reg.Email); err == nil && existing != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionRegisterPatient).
			BySystem().OnError().
			Describe(fmt.Sprintf("Patient registration rejected: %s already registered", reg.Email)).
			Failed())
		return nil, domain.ErrUserAlreadyExists
	}

	hash, err := s.passwordSvc.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	patient := &domain.Patient{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		PhoneNumber:  reg.PhoneNumber,
		PasswordHash: hash,
		DateOfBirth:  reg.DateOfBirth,
		Gender:       reg.Gender,
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionRegisterPatient).
			BySystem().OnError().
			Describe(fmt.Sprintf("Failed to register patient %s: %v", reg.Email, err)).
			Failed())
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionRegisterPatient).
		ByUser(domain.UserRef{Role: domain.RolePatient, ID: patient.ID}).
		On(domain.EntityPatient, patient.ID).
		Describe(fmt.Sprintf("Patient %s %s registered", patient.FirstName, patient.LastName)))

	return patient, nil
}

// RegisterAdmin implements domain.AccountService
func (s *AccountServiceImpl) RegisterAdmin(ctx context.Context, reg domain.AdminRegistration, actor domain.UserRef) (*domain.Admin, error) {
	if reg.FirstName == "" || reg.LastName == "" || reg.Email == "" || reg.Password == "" {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionRegisterAdmin).
			ByUser(actor).OnError().
			Describe("Admin registration rejected: missing required fields").
			Failed())
		return nil, domain.ErrValidation
	}

	if existing, err := s.adminRepo.FindByEmail(ctx, reg.Email); err == nil && existing != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionRegisterAdmin).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Admin registration rejected: %s already registered", reg.Email)).
			Failed())
		return nil, domain.ErrUserAlreadyExists
	}

	hash, err := s.passwordSvc.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.Admin{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		PasswordHash: hash,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionRegisterAdmin).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Failed to register admin %s: %v", reg.Email, err)).
			Failed())
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionRegisterAdmin).
		ByUser(actor).On(domain.EntityAdmin, admin.ID).
		Describe(fmt.Sprintf("Admin account created for %s", admin.Email)))

	return admin, nil
}

// CreateCaregiver implements domain.AccountService. Availability
// defaults to true when the input leaves it unset.
func (s *AccountServiceImpl) CreateCaregiver(ctx context.Context, in domain.CaregiverInput, actor domain.UserRef) (*domain.Caregiver, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" || in.Department == "" {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionCreateCaregiver).
			ByUser(actor).OnError().
			Describe("Caregiver creation rejected: missing required fields").
			Failed())
		return nil, domain.ErrValidation
	}

	if existing, err := s.caregiverRepo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionCreateCaregiver).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Caregiver creation rejected: %s already registered", in.Email)).
			Failed())
		return nil, domain.ErrUserAlreadyExists
	}

	hash, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	available := true
	if in.Available != nil {
		available = *in.Available
	}

	caregiver := &domain.Caregiver{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		Department:   in.Department,
		Available:    available,
	}
	if err := s.caregiverRepo.Create(ctx, caregiver); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionCreateCaregiver).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Failed to create caregiver %s: %v", in.Email, err)).
			Failed())
		return nil, fmt.Errorf("failed to create caregiver: %w", err)
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionCreateCaregiver).
		ByUser(actor).On(domain.EntityCaregiver, caregiver.ID).
		Describe(fmt.Sprintf("Caregiver %s %s added to %s", caregiver.FirstName, caregiver.LastName, caregiver.Department)))

	return caregiver, nil
}

// UpdateCaregiver implements domain.AccountService. Empty input fields
// keep their stored values; the password is re-hashed only when a new
// one is supplied.
func (s *AccountServiceImpl) UpdateCaregiver(ctx context.Context, id uint, in domain.CaregiverInput) (*domain.Caregiver, error) {
	actor := domain.UserRef{Role: domain.RoleCaregiver, ID: id}

	caregiver, err := s.caregiverRepo.FindByID(ctx, id)
	if err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateCaregiver).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Caregiver update failed: caregiver %d not found", id)).
			Failed())
		return nil, err
	}

	if in.FirstName != "" {
		caregiver.FirstName = in.FirstName
	}
	if in.LastName != "" {
		caregiver.LastName = in.LastName
	}
	if in.Email != "" {
		caregiver.Email = in.Email
	}
	if in.PhoneNumber != "" {
		caregiver.PhoneNumber = in.PhoneNumber
	}
	if in.Department != "" {
		caregiver.Department = in.Department
	}
	if in.Available != nil {
		caregiver.Available = *in.Available
	}
	if in.Password != "" {
		hash, err := s.passwordSvc.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		caregiver.PasswordHash = hash
	}

	if err := s.caregiverRepo.Update(ctx, caregiver); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateCaregiver).
			ByUser(actor).On(domain.EntityCaregiver, id).
			Describe(fmt.Sprintf("Failed to update caregiver %d: %v", id, err)).
			Failed())
		return nil, fmt.Errorf("failed to update caregiver: %w", err)
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionUpdateCaregiver).
		ByUser(actor).On(domain.EntityCaregiver, id).
		Describe(fmt.Sprintf("Caregiver %d profile updated", id)))

	return caregiver, nil
}

// DeleteCaregiver implements domain.AccountService
func (s *AccountServiceImpl) DeleteCaregiver(ctx context.Context, id uint, actor domain.UserRef) error {
	if err := s.caregiverRepo.Delete(ctx, id); err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionDeleteCaregiver).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Failed to delete caregiver %d: %v", id, err)).
			Failed())
		return err
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionDeleteCaregiver).
		ByUser(actor).On(domain.EntityCaregiver, id).
		Describe(fmt.Sprintf("Caregiver %d removed", id)))

	return nil
}

// ListCaregivers implements domain.AccountService
func (s *AccountServiceImpl) ListCaregivers(ctx context.Context) ([]domain.Caregiver, error) {
	return s.caregiverRepo.List(ctx)
}

// GetCaregiver implements domain.AccountService
func (s *AccountServiceImpl) GetCaregiver(ctx context.Context, id uint) (*domain.Caregiver, error) {
	return s.caregiverRepo.FindByID(ctx, id)
}

// PatientProfile implements domain.AccountService. The appointment
// statistics come from the appointment table, not from counters stored
// on the patient record.
func (s *AccountServiceImpl) PatientProfile(ctx context.Context, patientID uint) (*domain.PatientProfile, error) {
	actor := domain.UserRef{Role: domain.RolePatient, ID: patientID}

	patient, err := s.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionViewProfile).
			ByUser(actor).OnError().
			Describe(fmt.Sprintf("Profile view failed: patient %d not found", patientID)).
			Failed())
		return nil, err
	}

	appts, err := s.apptRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	completed, err := s.apptRepo.CountCompletedByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed appointments: %w", err)
	}
	caregivers, err := s.apptRepo.CountDistinctCaregiversByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to count caregivers: %w", err)
	}

	s.auditSvc.Record(ctx, domain.NewActionLogEntry(domain.ActionViewProfile).
		ByUser(actor).On(domain.EntityPatient, patientID).
		Describe(fmt.Sprintf("Patient %d viewed own profile", patientID)))

	return &domain.PatientProfile{
		Patient:           patient,
		Appointments:      appts,
		TotalAppointments: len(appts),
		TotalCaregivers:   int(caregivers),
		CompletedCount:    int(completed),
	}, nil
}
