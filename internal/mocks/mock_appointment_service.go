package mocks

import (
	"context"

	"github.com/david-solomon-henshaw/app/domain"
)

// MockAppointmentService implements domain.AppointmentService interface for testing
type MockAppointmentService struct {
	CreateFunc                  func(ctx context.Context, req domain.AppointmentRequest) (*domain.Appointment, error)
	UpdateFunc                  func(ctx context.Context, id uint, upd domain.AppointmentUpdate, actor domain.UserRef) (*domain.Appointment, error)
	CancelFunc                  func(ctx context.Context, id uint, status domain.AppointmentStatus, actor domain.UserRef) (*domain.Appointment, error)
	ListFunc                    func(ctx context.Context, actor domain.UserRef) ([]domain.Appointment, error)
	ListForPatientFunc          func(ctx context.Context, patientID uint) ([]domain.Appointment, error)
	ListForCaregiverFunc        func(ctx context.Context, caregiverID uint) ([]domain.Appointment, error)
	UpdateStatusByCaregiverFunc func(ctx context.Context, caregiverID, apptID uint, status domain.AppointmentStatus) (*domain.Appointment, error)
}

// NewMockAppointmentService creates a new MockAppointmentService with default behaviors
func NewMockAppointmentService() *MockAppointmentService {
	return &MockAppointmentService{}
}

func (m *MockAppointmentService) Create(ctx context.Context, req domain.AppointmentRequest) (*domain.Appointment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &domain.Appointment{
		ID:                   1,
		PatientID:            req.PatientID,
		Department:           req.Department,
		PatientRequestedDate: req.PatientRequestedDate,
		PatientRequestedTime: req.PatientRequestedTime,
		Status:               domain.StatusPending,
	}, nil
}

func (m *MockAppointmentService) Update(ctx context.Context, id uint, upd domain.AppointmentUpdate, actor domain.UserRef) (*domain.Appointment, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, upd, actor)
	}
	return nil, domain.ErrAppointmentNotFound
}

func (m *MockAppointmentService) Cancel(ctx context.Context, id uint, status domain.AppointmentStatus, actor domain.UserRef) (*domain.Appointment, error) {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, id, status, actor)
	}
	return nil, domain.ErrAppointmentNotFound
}

func (m *MockAppointmentService) List(ctx context.Context, actor domain.UserRef) ([]domain.Appointment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor)
	}
	return []domain.Appointment{}, nil
}

func (m *MockAppointmentService) ListForPatient(ctx context.Context, patientID uint) ([]domain.Appointment, error) {
	if m.ListForPatientFunc != nil {
		return m.ListForPatientFunc(ctx, patientID)
	}
	return []domain.Appointment{}, nil
}

func (m *MockAppointmentService) ListForCaregiver(ctx context.Context, caregiverID uint) ([]domain.Appointment, error) {
	if m.ListForCaregiverFunc != nil {
		return m.ListForCaregiverFunc(ctx, caregiverID)
	}
	return []domain.Appointment{}, nil
}

func (m *MockAppointmentService) UpdateStatusByCaregiver(ctx context.Context, caregiverID, apptID uint, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if m.UpdateStatusByCaregiverFunc != nil {
		return m.UpdateStatusByCaregiverFunc(ctx, caregiverID, apptID, status)
	}
	return nil, domain.ErrAppointmentNotFound
}

// Compile-time interface compliance verification
var _ domain.AppointmentService = (*MockAppointmentService)(nil)
