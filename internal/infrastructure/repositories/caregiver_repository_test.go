package repositories

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/david-solomon-henshaw/app/domain"
)

func TestCaregiverRepositoryImpl_FindByEmail(t *testing.T) {
	tests := []struct {
		name          string
		setupData     func(db *gorm.DB)
		email         string
		expectedError error
	}{
		{
			name: "successful find by email",
			setupData: func(db *gorm.DB) {
				db.Create(&DBCaregiver{
					ID:         1,
					FirstName:  "Grace",
					LastName:   "Okafor",
					Email:      "grace.okafor@emed.example",
					Department: "cardiology",
					Available:  true,
				})
			},
			email:         "grace.okafor@emed.example",
			expectedError: nil,
		},
		{
			name:          "email not found",
			setupData:     func(db *gorm.DB) {},
			email:         "nobody@emed.example",
			expectedError: domain.ErrCaregiverNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			tt.setupData(db)
			repo := NewCaregiverRepository(db)

			caregiver, err := repo.FindByEmail(context.Background(), tt.email)

			if tt.expectedError != nil {
				if err != tt.expectedError {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if caregiver.Email != tt.email {
				t.Errorf("expected email %s, got %s", tt.email, caregiver.Email)
			}
			if !caregiver.Available {
				t.Error("expected caregiver to be available")
			}
		})
	}
}

func TestCaregiverRepositoryImpl_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCaregiverRepository(db)
	ctx := context.Background()

	db.Create(&DBCaregiver{ID: 1, Email: "gone@emed.example"})

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(ctx, 1); err != domain.ErrCaregiverNotFound {
		t.Errorf("expected ErrCaregiverNotFound after delete, got %v", err)
	}

	// Deleting a missing row reports not found, not success.
	if err := repo.Delete(ctx, 99); err != domain.ErrCaregiverNotFound {
		t.Errorf("expected ErrCaregiverNotFound, got %v", err)
	}
}

func TestCaregiverRepositoryImpl_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCaregiverRepository(db)

	db.Create(&DBCaregiver{ID: 2, Email: "b@emed.example"})
	db.Create(&DBCaregiver{ID: 1, Email: "a@emed.example"})

	caregivers, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(caregivers) != 2 {
		t.Fatalf("expected 2 caregivers, got %d", len(caregivers))
	}
	if caregivers[0].ID != 1 || caregivers[1].ID != 2 {
		t.Errorf("expected caregivers ordered by id, got %d then %d", caregivers[0].ID, caregivers[1].ID)
	}
}
