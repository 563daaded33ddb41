package services

import (
	"context"
	"log"

	"github.com/david-solomon-henshaw/app/domain"
)

// AuditServiceImpl implements domain.AuditService. Recording is
// best-effort: a failed insert is logged and swallowed so the audited
// operation's outcome never depends on the log write.
type AuditServiceImpl struct {
	repo domain.ActionLogRepository
}

// NewAuditService creates a new audit service
func NewAuditService(repo domain.ActionLogRepository) domain.AuditService {
	return &AuditServiceImpl{repo: repo}
}

// Record implements domain.AuditService
func (s *AuditServiceImpl) Record(ctx context.Context, entry domain.ActionLogEntry) {
	if err := s.repo.Create(ctx, &entry); err != nil {
		log.Printf("action log write failed (action=%s status=%s): %v", entry.Action, entry.Status, err)
	}
}
