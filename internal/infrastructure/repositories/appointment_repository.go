package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/david-solomon-henshaw/app/domain"
)

// AppointmentRepositoryImpl implements domain.AppointmentRepository using GORM
type AppointmentRepositoryImpl struct {
	db *gorm.DB
}

// DBAppointment represents the database model for Appointment (with GORM tags)
type DBAppointment struct {
	ID                   uint   `gorm:"primaryKey"`
	PatientID            uint   `gorm:"index;not null"`
	CaregiverID          *uint  `gorm:"index"`
	Department           string `gorm:"index;size:128"`
	PatientRequestedDate string `gorm:"size:32"`
	PatientRequestedTime string `gorm:"size:32"`
	AppointmentDate      *time.Time
	StartTime            *time.Time
	Status               string `gorm:"index;size:32"`
	ApprovedAt           *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName returns the table name for GORM
func (DBAppointment) TableName() string {
	return "appointments"
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) domain.AppointmentRepository {
	return &AppointmentRepositoryImpl{db: db}
}

// Create implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) Create(ctx context.Context, appt *domain.Appointment) error {
	dbAppt := r.domainToDB(appt)
	if err := r.db.WithContext(ctx).Create(dbAppt).Error; err != nil {
		return err
	}
	appt.ID = dbAppt.ID
	appt.CreatedAt = dbAppt.CreatedAt
	return nil
}

// FindByID implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Appointment, error) {
	var dbAppt DBAppointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAppt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAppt), nil
}

// Update implements domain.AppointmentRepository. Last write wins: no
// optimistic lock is held between read and persist.
func (r *AppointmentRepositoryImpl) Update(ctx context.Context, appt *domain.Appointment) error {
	dbAppt := r.domainToDB(appt)
	return r.db.WithContext(ctx).Save(dbAppt).Error
}

// List implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) List(ctx context.Context) ([]domain.Appointment, error) {
	var dbAppts []DBAppointment
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&dbAppts).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(dbAppts), nil
}

// ListByPatient implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) ListByPatient(ctx context.Context, patientID uint) ([]domain.Appointment, error) {
	var dbAppts []DBAppointment
	if err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("created_at desc").Find(&dbAppts).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(dbAppts), nil
}

// ListByCaregiver implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) ListByCaregiver(ctx context.Context, caregiverID uint) ([]domain.Appointment, error) {
	var dbAppts []DBAppointment
	if err := r.db.WithContext(ctx).Where("caregiver_id = ?", caregiverID).Order("created_at desc").Find(&dbAppts).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(dbAppts), nil
}

// CountCompletedByPatient implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) CountCompletedByPatient(ctx context.Context, patientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBAppointment{}).
		Where("patient_id = ? AND status = ?", patientID, string(domain.StatusCompleted)).
		Count(&count).Error
	return count, err
}

// CountDistinctCaregiversByPatient implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) CountDistinctCaregiversByPatient(ctx context.Context, patientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBAppointment{}).
		Where("patient_id = ? AND caregiver_id IS NOT NULL", patientID).
		Distinct("caregiver_id").
		Count(&count).Error
	return count, err
}

func (r *AppointmentRepositoryImpl) toDomainSlice(dbAppts []DBAppointment) []domain.Appointment {
	appts := make([]domain.Appointment, 0, len(dbAppts))
	for i := range dbAppts {
		appts = append(appts, *r.dbToDomain(&dbAppts[i]))
	}
	return appts
}

func (r *AppointmentRepositoryImpl) domainToDB(appt *domain.Appointment) *DBAppointment {
	return &DBAppointment{
		ID:                   appt.ID,
		PatientID:            appt.PatientID,
		CaregiverID:          appt.CaregiverID,
		Department:           appt.Department,
		PatientRequestedDate: appt.PatientRequestedDate,
		PatientRequestedTime: appt.PatientRequestedTime,
		AppointmentDate:      appt.AppointmentDate,
		StartTime:            appt.StartTime,
		Status:               string(appt.Status),
		ApprovedAt:           appt.ApprovedAt,
		CreatedAt:            appt.CreatedAt,
	}
}

func (r *AppointmentRepositoryImpl) dbToDomain(dbAppt *DBAppointment) *domain.Appointment {
	return &domain.Appointment{
		ID:                   dbAppt.ID,
		PatientID:            dbAppt.PatientID,
		CaregiverID:          dbAppt.CaregiverID,
		Department:           dbAppt.Department,
		PatientRequestedDate: dbAppt.PatientRequestedDate,
		PatientRequestedTime: dbAppt.PatientRequestedTime,
		AppointmentDate:      dbAppt.AppointmentDate,
		StartTime:            dbAppt.StartTime,
		Status:               domain.AppointmentStatus(dbAppt.Status),
		ApprovedAt:           dbAppt.ApprovedAt,
		CreatedAt:            dbAppt.CreatedAt,
		UpdatedAt:            dbAppt.UpdatedAt,
	}
}
