package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/david-solomon-henshaw/app/domain"
)

// PatientRepositoryImpl implements domain.PatientRepository using GORM
type PatientRepositoryImpl struct {
	db *gorm.DB
}

// DBPatient represents the database model for Patient (with GORM tags).
// The patient's appointment list is the FK-derived association on
// appointments.patient_id.
type DBPatient struct {
	ID           uint       `gorm:"primaryKey"`
	FirstName    string     `gorm:"size:128"`
	LastName     string     `gorm:"size:128"`
	Email        string     `gorm:"uniqueIndex;size:255"`
	PhoneNumber  string     `gorm:"size:32"`
	PasswordHash string     `gorm:"column:password"`
	DateOfBirth  time.Time
	Gender       string     `gorm:"size:16"`
	OTP          string     `gorm:"column:otp;size:16"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBPatient) TableName() string {
	return "patients"
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) domain.PatientRepository {
	return &PatientRepositoryImpl{db: db}
}

// Create implements domain.PatientRepository
func (r *PatientRepositoryImpl) Create(ctx context.Context, patient *domain.Patient) error {
	dbPatient := r.domainToDB(patient)
	if err := r.db.WithContext(ctx).Create(dbPatient).Error; err != nil {
		return err
	}
	patient.ID = dbPatient.ID
	return nil
}

// FindByEmail implements domain.PatientRepository
func (r *PatientRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	var dbPatient DBPatient
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbPatient).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrPatientNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbPatient), nil
}

// FindByID implements domain.PatientRepository
func (r *PatientRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Patient, error) {
	var dbPatient DBPatient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbPatient).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrPatientNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbPatient), nil
}

// Update implements domain.PatientRepository
func (r *PatientRepositoryImpl) Update(ctx context.Context, patient *domain.Patient) error {
	dbPatient := r.domainToDB(patient)
	return r.db.WithContext(ctx).Save(dbPatient).Error
}

func (r *PatientRepositoryImpl) domainToDB(patient *domain.Patient) *DBPatient {
	return &DBPatient{
		ID:           patient.ID,
		FirstName:    patient.FirstName,
		LastName:     patient.LastName,
		Email:        patient.Email,
		PhoneNumber:  patient.PhoneNumber,
		PasswordHash: patient.PasswordHash,
		DateOfBirth:  patient.DateOfBirth,
		Gender:       patient.Gender,
		OTP:          patient.OTP,
		OTPExpiresAt: patient.OTPExpiresAt,
	}
}

func (r *PatientRepositoryImpl) dbToDomain(dbPatient *DBPatient) *domain.Patient {
	return &domain.Patient{
		ID:           dbPatient.ID,
		FirstName:    dbPatient.FirstName,
		LastName:     dbPatient.LastName,
		Email:        dbPatient.Email,
		PhoneNumber:  dbPatient.PhoneNumber,
		PasswordHash: dbPatient.PasswordHash,
		DateOfBirth:  dbPatient.DateOfBirth,
		Gender:       dbPatient.Gender,
		OTP:          dbPatient.OTP,
		OTPExpiresAt: dbPatient.OTPExpiresAt,
		CreatedAt:    dbPatient.CreatedAt,
		UpdatedAt:    dbPatient.UpdatedAt,
	}
}
