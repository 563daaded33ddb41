package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/david-solomon-henshaw/app/domain"
)

// CaregiverRepositoryImpl implements domain.CaregiverRepository using GORM
type CaregiverRepositoryImpl struct {
	db *gorm.DB
}

// DBCaregiver represents the database model for Caregiver (with GORM tags)
type DBCaregiver struct {
	ID           uint       `gorm:"primaryKey"`
	FirstName    string     `gorm:"size:128"`
	LastName     string     `gorm:"size:128"`
	Email        string     `gorm:"uniqueIndex;size:255"`
	PhoneNumber  string     `gorm:"size:32"`
	PasswordHash string     `gorm:"column:password"`
	Department   string     `gorm:"index;size:128"`
	Available    bool       `gorm:"index"`
	OTP          string     `gorm:"column:otp;size:16"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBCaregiver) TableName() string {
	return "caregivers"
}

// NewCaregiverRepository creates a new caregiver repository
func NewCaregiverRepository(db *gorm.DB) domain.CaregiverRepository {
	return &CaregiverRepositoryImpl{db: db}
}

// Create implements domain.CaregiverRepository
func (r *CaregiverRepositoryImpl) Create(ctx context.Context, caregiver *domain.Caregiver) error {
	dbCaregiver := r.domainToDB(caregiver)
	if err := r.db.WithContext(ctx).Create(dbCaregiver).Error; err != nil {
		return err
	}
	caregiver.ID = dbCaregiver.ID
	return nil
}

// FindByEmail implements domain.CaregiverRepository
func (r *CaregiverRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Caregiver, error) {
	var dbCaregiver DBCaregiver
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbCaregiver).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrCaregiverNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbCaregiver), nil
}

// FindByID implements domain.CaregiverRepository
func (r *CaregiverRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Caregiver, error) {
	var dbCaregiver DBCaregiver
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbCaregiver).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrCaregiverNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbCaregiver), nil
}

// Update implements domain.CaregiverRepository
func (r *CaregiverRepositoryImpl) Update(ctx context.Context, caregiver *domain.Caregiver) error {
	dbCaregiver := r.domainToDB(caregiver)
	return r.db.WithContext(ctx).Save(dbCaregiver).Error
}

// Delete implements domain.CaregiverRepository. This is the only hard
// delete in the system, admin-initiated.
func (r *CaregiverRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&DBCaregiver{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCaregiverNotFound
	}
	return nil
}

// List implements domain.CaregiverRepository
func (r *CaregiverRepositoryImpl) List(ctx context.Context) ([]domain.Caregiver, error) {
	var dbCaregivers []DBCaregiver
	if err := r.db.WithContext(ctx).Order("id").Find(&dbCaregivers).Error; err != nil {
		return nil, err
	}
	caregivers := make([]domain.Caregiver, 0, len(dbCaregivers))
	for i := range dbCaregivers {
		caregivers = append(caregivers, *r.dbToDomain(&dbCaregivers[i]))
	}
	return caregivers, nil
}

func (r *CaregiverRepositoryImpl) domainToDB(caregiver *domain.Caregiver) *DBCaregiver {
	return &DBCaregiver{
		ID:           caregiver.ID,
		FirstName:    caregiver.FirstName,
		LastName:     caregiver.LastName,
		Email:        caregiver.Email,
		PhoneNumber:  caregiver.PhoneNumber,
		PasswordHash: caregiver.PasswordHash,
		Department:   caregiver.Department,
		Available:    caregiver.Available,
		OTP:          caregiver.OTP,
		OTPExpiresAt: caregiver.OTPExpiresAt,
	}
}

func (r *CaregiverRepositoryImpl) dbToDomain(dbCaregiver *DBCaregiver) *domain.Caregiver {
	return &domain.Caregiver{
		ID:           dbCaregiver.ID,
		FirstName:    dbCaregiver.FirstName,
		LastName:     dbCaregiver.LastName,
		Email:        dbCaregiver.Email,
		PhoneNumber:  dbCaregiver.PhoneNumber,
		PasswordHash: dbCaregiver.PasswordHash,
		Department:   dbCaregiver.Department,
		Available:    dbCaregiver.Available,
		OTP:          dbCaregiver.OTP,
		OTPExpiresAt: dbCaregiver.OTPExpiresAt,
		CreatedAt:    dbCaregiver.CreatedAt,
		UpdatedAt:    dbCaregiver.UpdatedAt,
	}
}
