package repositories

import (
	"context"
	"testing"

	"github.com/david-solomon-henshaw/app/domain"
)

func TestActionLogRepositoryImpl_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActionLogRepository(db)
	ctx := context.Background()

	entry := domain.NewActionLogEntry(domain.ActionLogin).
		ByUser(domain.UserRef{Role: domain.RolePatient, ID: 4}).
		On(domain.EntityPatient, 4).
		Describe("Patient logged in, OTP sent")

	if err := repo.Create(ctx, &entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ID == 0 {
		t.Error("expected ID to be backfilled after create")
	}

	got, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].Action != domain.ActionLogin {
		t.Errorf("expected action %q, got %q", domain.ActionLogin, got[0].Action)
	}
	if got[0].UserID == nil || *got[0].UserID != 4 {
		t.Errorf("expected user id 4, got %v", got[0].UserID)
	}
	if got[0].Status != domain.ActionSuccess {
		t.Errorf("expected status success, got %s", got[0].Status)
	}
}

func TestActionLogRepositoryImpl_CreateSystemEntry(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActionLogRepository(db)
	ctx := context.Background()

	entry := domain.NewActionLogEntry(domain.ActionLogin).
		BySystem().
		OnError().
		Describe("Failed login attempt for unknown@emed.example").
		Failed()

	if err := repo.Create(ctx, &entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].UserID != nil {
		t.Errorf("expected nil user id, got %v", got[0].UserID)
	}
	if got[0].Entity != domain.EntityError {
		t.Errorf("expected entity error, got %s", got[0].Entity)
	}
	if got[0].Status != domain.ActionFailed {
		t.Errorf("expected status failed, got %s", got[0].Status)
	}
}

func TestActionLogRepositoryImpl_ListRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActionLogRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := domain.NewActionLogEntry(domain.ActionViewAppointments).
			ByUser(domain.UserRef{Role: domain.RoleAdmin, ID: 1}).
			On(domain.EntityAppointment, uint(i+1)).
			Describe("Admin viewed appointments")
		if err := repo.Create(ctx, &entry); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := repo.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	// Newest first.
	if got[0].ID <= got[1].ID || got[1].ID <= got[2].ID {
		t.Errorf("expected entries in descending id order, got %d, %d, %d", got[0].ID, got[1].ID, got[2].ID)
	}

	// A non-positive limit falls back to the default page size.
	all, err := repo.ListRecent(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("expected 5 entries with default limit, got %d", len(all))
	}
}
