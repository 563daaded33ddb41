package services

import (
	"context"
	"fmt"
	"time"

	"github.com/david-solomon-henshaw/app/domain"
)

// DirectoryImpl implements domain.IdentityDirectory over the three
// role-partitioned repositories.
type DirectoryImpl struct {
	adminRepo     domain.AdminRepository
	patientRepo   domain.PatientRepository
	caregiverRepo domain.CaregiverRepository
}

// NewDirectory creates a new identity directory
func NewDirectory(
	adminRepo domain.AdminRepository,
	patientRepo domain.PatientRepository,
	caregiverRepo domain.CaregiverRepository,
) domain.IdentityDirectory {
	return &DirectoryImpl{
		adminRepo:     adminRepo,
		patientRepo:   patientRepo,
		caregiverRepo: caregiverRepo,
	}
}

// Lookup implements domain.IdentityDirectory. Directories are probed in
// admin, patient, caregiver order and the first match wins; an email
// present in two directories always resolves to the higher-precedence
// role.
func (d *DirectoryImpl) Lookup(ctx context.Context, email string) (*domain.Account, error) {
	if admin, err := d.adminRepo.FindByEmail(ctx, email); err == nil {
		return adminAccount(admin), nil
	} else if err != domain.ErrAdminNotFound {
		return nil, err
	}

	if patient, err := d.patientRepo.FindByEmail(ctx, email); err == nil {
		return patientAccount(patient), nil
	} else if err != domain.ErrPatientNotFound {
		return nil, err
	}

	if caregiver, err := d.caregiverRepo.FindByEmail(ctx, email); err == nil {
		return caregiverAccount(caregiver), nil
	} else if err != domain.ErrCaregiverNotFound {
		return nil, err
	}

	return nil, domain.ErrUserNotFound
}

// Resolve implements domain.IdentityDirectory
func (d *DirectoryImpl) Resolve(ctx context.Context, ref domain.UserRef) (*domain.Account, error) {
	switch ref.Role {
	case domain.RoleAdmin:
		admin, err := d.adminRepo.FindByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return adminAccount(admin), nil
	case domain.RolePatient:
		patient, err := d.patientRepo.FindByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return patientAccount(patient), nil
	case domain.RoleCaregiver:
		caregiver, err := d.caregiverRepo.FindByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return caregiverAccount(caregiver), nil
	}
	return nil, fmt.Errorf("unknown role %q", ref.Role)
}

// SaveOTP implements domain.IdentityDirectory. The code and expiry live
// on the directory record itself; passing an empty code with a nil
// expiry clears them.
func (d *DirectoryImpl) SaveOTP(ctx context.Context, ref domain.UserRef, code string, expiresAt *time.Time) error {
	switch ref.Role {
	case domain.RoleAdmin:
		admin, err := d.adminRepo.FindByID(ctx, ref.ID)
		if err != nil {
			return err
		}
		admin.OTP = code
		admin.OTPExpiresAt = expiresAt
		return d.adminRepo.Update(ctx, admin)
	case domain.RolePatient:
		patient, err := d.patientRepo.FindByID(ctx, ref.ID)
		if err != nil {
			return err
		}
		patient.OTP = code
		patient.OTPExpiresAt = expiresAt
		return d.patientRepo.Update(ctx, patient)
	case domain.RoleCaregiver:
		caregiver, err := d.caregiverRepo.FindByID(ctx, ref.ID)
		if err != nil {
			return err
		}
		caregiver.OTP = code
		caregiver.OTPExpiresAt = expiresAt
		return d.caregiverRepo.Update(ctx, caregiver)
	}
	return fmt.Errorf("unknown role %q", ref.Role)
}

func adminAccount(a *domain.Admin) *domain.Account {
	return &domain.Account{
		Ref:          domain.UserRef{Role: domain.RoleAdmin, ID: a.ID},
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		OTP:          a.OTP,
		OTPExpiresAt: a.OTPExpiresAt,
	}
}

func patientAccount(p *domain.Patient) *domain.Account {
	return &domain.Account{
		Ref:          domain.UserRef{Role: domain.RolePatient, ID: p.ID},
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		PhoneNumber:  p.PhoneNumber,
		PasswordHash: p.PasswordHash,
		OTP:          p.OTP,
		OTPExpiresAt: p.OTPExpiresAt,
	}
}

func caregiverAccount(c *domain.Caregiver) *domain.Account {
	return &domain.Account{
		Ref:          domain.UserRef{Role: domain.RoleCaregiver, ID: c.ID},
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PhoneNumber:  c.PhoneNumber,
		PasswordHash: c.PasswordHash,
		OTP:          c.OTP,
		OTPExpiresAt: c.OTPExpiresAt,
	}
}
