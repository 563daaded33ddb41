package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/david-solomon-henshaw/app/domain"
)

// AdminRepositoryImpl implements domain.AdminRepository using GORM
type AdminRepositoryImpl struct {
	db *gorm.DB
}

// DBAdmin represents the database model for Admin (with GORM tags)
type DBAdmin struct {
	ID           uint       `gorm:"primaryKey"`
	FirstName    string     `gorm:"size:128"`
	LastName     string     `gorm:"size:128"`
	Email        string     `gorm:"uniqueIndex;size:255"`
	PasswordHash string     `gorm:"column:password"`
	OTP          string     `gorm:"column:otp;size:16"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBAdmin) TableName() string {
	return "admins"
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) domain.AdminRepository {
	return &AdminRepositoryImpl{db: db}
}

// Create implements domain.AdminRepository
func (r *AdminRepositoryImpl) Create(ctx context.Context, admin *domain.Admin) error {
	dbAdmin := r.domainToDB(admin)
	if err := r.db.WithContext(ctx).Create(dbAdmin).Error; err != nil {
		return err
	}
	admin.ID = dbAdmin.ID
	return nil
}

// FindByEmail implements domain.AdminRepository
func (r *AdminRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var dbAdmin DBAdmin
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbAdmin).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAdmin), nil
}

// FindByID implements domain.AdminRepository
func (r *AdminRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Admin, error) {
	var dbAdmin DBAdmin
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAdmin).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAdmin), nil
}

// Update implements domain.AdminRepository
func (r *AdminRepositoryImpl) Update(ctx context.Context, admin *domain.Admin) error {
	dbAdmin := r.domainToDB(admin)
	return r.db.WithContext(ctx).Save(dbAdmin).Error
}

func (r *AdminRepositoryImpl) domainToDB(admin *domain.Admin) *DBAdmin {
	return &DBAdmin{
		ID:           admin.ID,
		FirstName:    admin.FirstName,
		LastName:     admin.LastName,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		OTP:          admin.OTP,
		OTPExpiresAt: admin.OTPExpiresAt,
	}
}

func (r *AdminRepositoryImpl) dbToDomain(dbAdmin *DBAdmin) *domain.Admin {
	return &domain.Admin{
		ID:           dbAdmin.ID,
		FirstName:    dbAdmin.FirstName,
		LastName:     dbAdmin.LastName,
		Email:        dbAdmin.Email,
		PasswordHash: dbAdmin.PasswordHash,
		OTP:          dbAdmin.OTP,
		OTPExpiresAt: dbAdmin.OTPExpiresAt,
		CreatedAt:    dbAdmin.CreatedAt,
		UpdatedAt:    dbAdmin.UpdatedAt,
	}
}
