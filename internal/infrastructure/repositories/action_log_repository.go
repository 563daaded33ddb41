package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/david-solomon-henshaw/app/domain"
)

// ActionLogRepositoryImpl implements domain.ActionLogRepository using
// GORM. The table is append-only: no update or delete path exists.
type ActionLogRepositoryImpl struct {
	db *gorm.DB
}

// DBActionLog represents the database model for ActionLogEntry
type DBActionLog struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      *uint  `gorm:"index"`
	UserRole    string `gorm:"size:32;not null"`
	Action      string `gorm:"index;size:64;not null"`
	Description string `gorm:"type:text;not null"`
	Entity      string `gorm:"size:32;not null"`
	EntityID    *uint  `gorm:"index"`
	Status      string `gorm:"size:16;not null"`
	Timestamp   time.Time `gorm:"index;autoCreateTime"`
}

// TableName returns the table name for GORM
func (DBActionLog) TableName() string {
	return "action_logs"
}

// NewActionLogRepository creates a new action log repository
func NewActionLogRepository(db *gorm.DB) domain.ActionLogRepository {
	return &ActionLogRepositoryImpl{db: db}
}

// Create implements domain.ActionLogRepository
func (r *ActionLogRepositoryImpl) Create(ctx context.Context, entry *domain.ActionLogEntry) error {
	dbEntry := &DBActionLog{
		UserID:      entry.UserID,
		UserRole:    string(entry.UserRole),
		Action:      entry.Action,
		Description: entry.Description,
		Entity:      string(entry.Entity),
		EntityID:    entry.EntityID,
		Status:      string(entry.Status),
		Timestamp:   entry.Timestamp,
	}
	if dbEntry.Timestamp.IsZero() {
		dbEntry.Timestamp = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(dbEntry).Error; err != nil {
		return err
	}
	entry.ID = dbEntry.ID
	return nil
}

// ListRecent implements domain.ActionLogRepository
func (r *ActionLogRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]domain.ActionLogEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var dbEntries []DBActionLog
	if err := r.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&dbEntries).Error; err != nil {
		return nil, err
	}

	entries := make([]domain.ActionLogEntry, 0, len(dbEntries))
	for _, e := range dbEntries {
		entries = append(entries, domain.ActionLogEntry{
			ID:          e.ID,
			UserID:      e.UserID,
			UserRole:    domain.Role(e.UserRole),
			Action:      e.Action,
			Description: e.Description,
			Entity:      domain.EntityKind(e.Entity),
			EntityID:    e.EntityID,
			Status:      domain.ActionStatus(e.Status),
			Timestamp:   e.Timestamp,
		})
	}
	return entries, nil
}
