package mocks

import (
	"context"

	"github.com/david-solomon-henshaw/app/domain"
)

// MockAdminRepository implements domain.AdminRepository interface for testing
type MockAdminRepository struct {
	CreateFunc      func(ctx context.Context, admin *domain.Admin) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.Admin, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Admin, error)
	UpdateFunc      func(ctx context.Context, admin *domain.Admin) error
}

// NewMockAdminRepository creates a new MockAdminRepository with default behaviors
func NewMockAdminRepository() *MockAdminRepository {
	return &MockAdminRepository{}
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, admin)
	}
	return nil
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrAdminNotFound
}

func (m *MockAdminRepository) FindByID(ctx context.Context, id uint) (*domain.Admin, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrAdminNotFound
}

func (m *MockAdminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, admin)
	}
	return nil
}

// MockPatientRepository implements domain.PatientRepository interface for testing
type MockPatientRepository struct {
	CreateFunc      func(ctx context.Context, patient *domain.Patient) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.Patient, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Patient, error)
	UpdateFunc      func(ctx context.Context, patient *domain.Patient) error
}

// NewMockPatientRepository creates a new MockPatientRepository with default behaviors
func NewMockPatientRepository() *MockPatientRepository {
	return &MockPatientRepository{}
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, patient)
	}
	return nil
}

func (m *MockPatientRepository) FindByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrPatientNotFound
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id uint) (*domain.Patient, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrPatientNotFound
}

func (m *MockPatientRepository) Update(ctx context.Context, patient *domain.Patient) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, patient)
	}
	return nil
}

// MockCaregiverRepository implements domain.CaregiverRepository interface for testing
type MockCaregiverRepository struct {
	CreateFunc      func(ctx context.Context, caregiver *domain.Caregiver) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.Caregiver, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Caregiver, error)
	UpdateFunc      func(ctx context.Context, caregiver *domain.Caregiver) error
	DeleteFunc      func(ctx context.Context, id uint) error
	ListFunc        func(ctx context.Context) ([]domain.Caregiver, error)
}

// NewMockCaregiverRepository creates a new MockCaregiverRepository with default behaviors
func NewMockCaregiverRepository() *MockCaregiverRepository {
	return &MockCaregiverRepository{}
}

func (m *MockCaregiverRepository) Create(ctx context.Context, caregiver *domain.Caregiver) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, caregiver)
	}
	return nil
}

func (m *MockCaregiverRepository) FindByEmail(ctx context.Context, email string) (*domain.Caregiver, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrCaregiverNotFound
}

func (m *MockCaregiverRepository) FindByID(ctx context.Context, id uint) (*domain.Caregiver, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrCaregiverNotFound
}

func (m *MockCaregiverRepository) Update(ctx context.Context, caregiver *domain.Caregiver) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, caregiver)
	}
	return nil
}

func (m *MockCaregiverRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCaregiverRepository) List(ctx context.Context) ([]domain.Caregiver, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Caregiver{}, nil
}

// MockAppointmentRepository implements domain.AppointmentRepository interface for testing
type MockAppointmentRepository struct {
	CreateFunc                           func(ctx context.Context, appt *domain.Appointment) error
	FindByIDFunc                         func(ctx context.Context, id uint) (*domain.Appointment, error)
	UpdateFunc                           func(ctx context.Context, appt *domain.Appointment) error
	ListFunc                             func(ctx context.Context) ([]domain.Appointment, error)
	ListByPatientFunc                    func(ctx context.Context, patientID uint) ([]domain.Appointment, error)
	ListByCaregiverFunc                  func(ctx context.Context, caregiverID uint) ([]domain.Appointment, error)
	CountCompletedByPatientFunc          func(ctx context.Context, patientID uint) (int64, error)
	CountDistinctCaregiversByPatientFunc func(ctx context.Context, patientID uint) (int64, error)
}

// NewMockAppointmentRepository creates a new MockAppointmentRepository with default behaviors
func NewMockAppointmentRepository() *MockAppointmentRepository {
	return &MockAppointmentRepository{}
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, appt)
	}
	// Default behavior: assign an id as the database would
	appt.ID = 1
	return nil
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id uint) (*domain.Appointment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrAppointmentNotFound
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appt *domain.Appointment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, appt)
	}
	return nil
}

func (m *MockAppointmentRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Appointment{}, nil
}

func (m *MockAppointmentRepository) ListByPatient(ctx context.Context, patientID uint) ([]domain.Appointment, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, patientID)
	}
	return []domain.Appointment{}, nil
}

func (m *MockAppointmentRepository) ListByCaregiver(ctx context.Context, caregiverID uint) ([]domain.Appointment, error) {
	if m.ListByCaregiverFunc != nil {
		return m.ListByCaregiverFunc(ctx, caregiverID)
	}
	return []domain.Appointment{}, nil
}

func (m *MockAppointmentRepository) CountCompletedByPatient(ctx context.Context, patientID uint) (int64, error) {
	if m.CountCompletedByPatientFunc != nil {
		return m.CountCompletedByPatientFunc(ctx, patientID)
	}
	return 0, nil
}

func (m *MockAppointmentRepository) CountDistinctCaregiversByPatient(ctx context.Context, patientID uint) (int64, error) {
	if m.CountDistinctCaregiversByPatientFunc != nil {
		return m.CountDistinctCaregiversByPatientFunc(ctx, patientID)
	}
	return 0, nil
}

// MockActionLogRepository implements domain.ActionLogRepository interface for testing.
// Entries records every created entry in order.
type MockActionLogRepository struct {
	CreateFunc     func(ctx context.Context, entry *domain.ActionLogEntry) error
	ListRecentFunc func(ctx context.Context, limit int) ([]domain.ActionLogEntry, error)
	Entries        []domain.ActionLogEntry
}

// NewMockActionLogRepository creates a new MockActionLogRepository with default behaviors
func NewMockActionLogRepository() *MockActionLogRepository {
	return &MockActionLogRepository{}
}

func (m *MockActionLogRepository) Create(ctx context.Context, entry *domain.ActionLogEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	entry.ID = uint(len(m.Entries) + 1)
	m.Entries = append(m.Entries, *entry)
	return nil
}

func (m *MockActionLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.ActionLogEntry, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return m.Entries, nil
}

// Compile-time interface compliance verification
var (
	_ domain.AdminRepository       = (*MockAdminRepository)(nil)
	_ domain.PatientRepository     = (*MockPatientRepository)(nil)
	_ domain.CaregiverRepository   = (*MockCaregiverRepository)(nil)
	_ domain.AppointmentRepository = (*MockAppointmentRepository)(nil)
	_ domain.ActionLogRepository   = (*MockActionLogRepository)(nil)
)
