package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/david-solomon-henshaw/app/domain"
	"github.com/david-solomon-henshaw/app/internal/mocks"
)

func accountRouter(accountSvc domain.AccountService, auditRepo domain.ActionLogRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("user_role", "admin")
	})
	h := NewAccountHandlers(accountSvc, auditRepo)
	router.POST("/api/patients/register", h.RegisterPatient)
	router.POST("/api/admin/register", h.RegisterAdmin)
	router.GET("/api/patients/:id", h.PatientProfile)
	router.POST("/api/admin/caregivers", h.CreateCaregiver)
	router.PUT("/api/admin/caregivers/:id", h.UpdateCaregiver)
	router.DELETE("/api/admin/caregivers/:id", h.DeleteCaregiver)
	router.GET("/api/admin/caregivers", h.ListCaregivers)
	router.GET("/api/admin/action-logs", h.ListActionLogs)
	return router
}

func TestAccountHandlers_RegisterPatient(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(svc *mocks.MockAccountService)
		expectedStatus int
	}{
		{
			name: "successful registration",
			requestBody: PatientRegisterRequest{
				FirstName:   "Amaka",
				LastName:    "Eze",
				Email:       "amaka@emed.example",
				Password:    "secret1",
				DateOfBirth: "1990-04-12",
			},
			setupMocks:     func(svc *mocks.MockAccountService) {},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate email conflict",
			requestBody: PatientRegisterRequest{
				FirstName: "Amaka",
				LastName:  "Eze",
				Email:     "amaka@emed.example",
				Password:  "secret1",
			},
			setupMocks: func(svc *mocks.MockAccountService) {
				svc.RegisterPatientFunc = func(ctx context.Context, reg domain.PatientRegistration) (*domain.Patient, error) {
					return nil, domain.ErrUserAlreadyExists
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "invalid date of birth",
			requestBody: PatientRegisterRequest{
				FirstName:   "Amaka",
				LastName:    "Eze",
				Email:       "amaka@emed.example",
				Password:    "secret1",
				DateOfBirth: "12/04/1990",
			},
			setupMocks:     func(svc *mocks.MockAccountService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password rejected at binding",
			requestBody:    map[string]string{"firstName": "A", "lastName": "B", "email": "a@b.example", "password": "123"},
			setupMocks:     func(svc *mocks.MockAccountService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAccountService()
			tt.setupMocks(svc)
			router := accountRouter(svc, mocks.NewMockActionLogRepository())

			w := performJSON(t, router, http.MethodPost, "/api/patients/register", tt.requestBody)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAccountHandlers_CreateCaregiver(t *testing.T) {
	svc := mocks.NewMockAccountService()
	var gotActor domain.UserRef
	svc.CreateCaregiverFunc = func(ctx context.Context, in domain.CaregiverInput, actor domain.UserRef) (*domain.Caregiver, error) {
		gotActor = actor
		return &domain.Caregiver{ID: 3, Email: in.Email, Department: in.Department, Available: true}, nil
	}
	router := accountRouter(svc, mocks.NewMockActionLogRepository())

	w := performJSON(t, router, http.MethodPost, "/api/admin/caregivers", CaregiverRequest{
		FirstName:  "Grace",
		LastName:   "Okafor",
		Email:      "grace@emed.example",
		Password:   "secret1",
		Department: "cardiology",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	if gotActor.Role != domain.RoleAdmin {
		t.Errorf("expected admin actor, got %+v", gotActor)
	}
}

func TestAccountHandlers_DeleteCaregiver(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMocks     func(svc *mocks.MockAccountService)
		expectedStatus int
	}{
		{
			name:           "successful delete",
			path:           "/api/admin/caregivers/3",
			setupMocks:     func(svc *mocks.MockAccountService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown caregiver",
			path: "/api/admin/caregivers/99",
			setupMocks: func(svc *mocks.MockAccountService) {
				svc.DeleteCaregiverFunc = func(ctx context.Context, id uint, actor domain.UserRef) error {
					return domain.ErrCaregiverNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			path:           "/api/admin/caregivers/abc",
			setupMocks:     func(svc *mocks.MockAccountService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAccountService()
			tt.setupMocks(svc)
			router := accountRouter(svc, mocks.NewMockActionLogRepository())

			req, _ := http.NewRequest(http.MethodDelete, tt.path, nil)
			w := performRequest(router, req)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAccountHandlers_PatientProfile(t *testing.T) {
	svc := mocks.NewMockAccountService()
	svc.PatientProfileFunc = func(ctx context.Context, patientID uint) (*domain.PatientProfile, error) {
		return &domain.PatientProfile{
			Patient:           &domain.Patient{ID: patientID, FirstName: "Amaka"},
			Appointments:      []domain.Appointment{{ID: 1, PatientID: patientID, Status: domain.StatusCompleted}},
			TotalAppointments: 1,
			TotalCaregivers:   1,
			CompletedCount:    1,
		}, nil
	}
	router := accountRouter(svc, mocks.NewMockActionLogRepository())

	req, _ := http.NewRequest(http.MethodGet, "/api/patients/4", nil)
	w := performRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["totalAppointments"].(float64) != 1 {
		t.Errorf("expected 1 total appointment, got %v", body["totalAppointments"])
	}
}

func TestAccountHandlers_ListActionLogs(t *testing.T) {
	auditRepo := mocks.NewMockActionLogRepository()
	entry := domain.NewActionLogEntry(domain.ActionLogin).
		ByUser(domain.UserRef{Role: domain.RolePatient, ID: 4}).
		On(domain.EntityPatient, 4).
		Describe("Patient logged in")
	_ = auditRepo.Create(context.Background(), &entry)

	router := accountRouter(mocks.NewMockAccountService(), auditRepo)
	req, _ := http.NewRequest(http.MethodGet, "/api/admin/action-logs?limit=10", nil)
	w := performRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	logs := body["actionLogs"].([]interface{})
	if len(logs) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(logs))
	}
	first := logs[0].(map[string]interface{})
	if first["action"] != domain.ActionLogin {
		t.Errorf("expected action %q, got %v", domain.ActionLogin, first["action"])
	}
}
