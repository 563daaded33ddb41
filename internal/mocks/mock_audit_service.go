package mocks

import (
	"context"
	"sync"

	"github.com/david-solomon-henshaw/app/domain"
)

// MockAuditService implements domain.AuditService interface for
// testing. It records every entry so tests can assert exactly one
// entry per operation outcome.
type MockAuditService struct {
	RecordFunc func(ctx context.Context, entry domain.ActionLogEntry)

	mu      sync.Mutex
	Entries []domain.ActionLogEntry
}

// NewMockAuditService creates a new MockAuditService with default behaviors
func NewMockAuditService() *MockAuditService {
	return &MockAuditService{}
}

// Record captures the entry
func (m *MockAuditService) Record(ctx context.Context, entry domain.ActionLogEntry) {
	if m.RecordFunc != nil {
		m.RecordFunc(ctx, entry)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entry)
}

// Last returns the most recent entry, or a zero entry when none exist
func (m *MockAuditService) Last() domain.ActionLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Entries) == 0 {
		return domain.ActionLogEntry{}
	}
	return m.Entries[len(m.Entries)-1]
}

// Compile-time interface compliance verification
var _ domain.AuditService = (*MockAuditService)(nil)
