package mocks

import (
	"context"

	"github.com/david-solomon-henshaw/app/domain"
)

// MockAccountService implements domain.AccountService interface for testing
type MockAccountService struct {
	RegisterPatientFunc func(ctx context.Context, reg domain.PatientRegistration) (*domain.Patient, error)
	RegisterAdminFunc   func(ctx context.Context, reg domain.AdminRegistration, actor domain.UserRef) (*domain.Admin, error)
	CreateCaregiverFunc func(ctx context.Context, in domain.CaregiverInput, actor domain.UserRef) (*domain.Caregiver, error)
	UpdateCaregiverFunc func(ctx context.Context, id uint, in domain.CaregiverInput) (*domain.Caregiver, error)
	DeleteCaregiverFunc func(ctx context.Context, id uint, actor domain.UserRef) error
	ListCaregiversFunc  func(ctx context.Context) ([]domain.Caregiver, error)
	GetCaregiverFunc    func(ctx context.Context, id uint) (*domain.Caregiver, error)
	PatientProfileFunc  func(ctx context.Context, patientID uint) (*domain.PatientProfile, error)
}

// NewMockAccountService creates a new MockAccountService with default behaviors
func NewMockAccountService() *MockAccountService {
	return &MockAccountService{}
}

func (m *MockAccountService) RegisterPatient(ctx context.Context, reg domain.PatientRegistration) (*domain.Patient, error) {
	if m.RegisterPatientFunc != nil {
		return m.RegisterPatientFunc(ctx, reg)
	}
	return &domain.Patient{
		ID:        1,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
	}, nil
}

func (m *MockAccountService) RegisterAdmin(ctx context.Context, reg domain.AdminRegistration, actor domain.UserRef) (*domain.Admin, error) {
	if m.RegisterAdminFunc != nil {
		return m.RegisterAdminFunc(ctx, reg, actor)
	}
	return &domain.Admin{
		ID:        1,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
	}, nil
}

func (m *MockAccountService) CreateCaregiver(ctx context.Context, in domain.CaregiverInput, actor domain.UserRef) (*domain.Caregiver, error) {
	if m.CreateCaregiverFunc != nil {
		return m.CreateCaregiverFunc(ctx, in, actor)
	}
	return &domain.Caregiver{
		ID:         1,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Department: in.Department,
		Available:  true,
	}, nil
}

func (m *MockAccountService) UpdateCaregiver(ctx context.Context, id uint, in domain.CaregiverInput) (*domain.Caregiver, error) {
	if m.UpdateCaregiverFunc != nil {
		return m.UpdateCaregiverFunc(ctx, id, in)
	}
	return nil, domain.ErrCaregiverNotFound
}

func (m *MockAccountService) DeleteCaregiver(ctx context.Context, id uint, actor domain.UserRef) error {
	if m.DeleteCaregiverFunc != nil {
		return m.DeleteCaregiverFunc(ctx, id, actor)
	}
	return nil
}

func (m *MockAccountService) ListCaregivers(ctx context.Context) ([]domain.Caregiver, error) {
	if m.ListCaregiversFunc != nil {
		return m.ListCaregiversFunc(ctx)
	}
	return []domain.Caregiver{}, nil
}

func (m *MockAccountService) GetCaregiver(ctx context.Context, id uint) (*domain.Caregiver, error) {
	if m.GetCaregiverFunc != nil {
		return m.GetCaregiverFunc(ctx, id)
	}
	return nil, domain.ErrCaregiverNotFound
}

func (m *MockAccountService) PatientProfile(ctx context.Context, patientID uint) (*domain.PatientProfile, error) {
	if m.PatientProfileFunc != nil {
		return m.PatientProfileFunc(ctx, patientID)
	}
	return nil, domain.ErrPatientNotFound
}

// Compile-time interface compliance verification
var _ domain.AccountService = (*MockAccountService)(nil)
