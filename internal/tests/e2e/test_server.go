package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/david-solomon-henshaw/app/domain"
	"github.com/david-solomon-henshaw/app/internal/config"
	httpx "github.com/david-solomon-henshaw/app/internal/http"
	"github.com/david-solomon-henshaw/app/internal/http/handlers"
	"github.com/david-solomon-henshaw/app/internal/http/middleware"
	"github.com/david-solomon-henshaw/app/internal/infrastructure/auth"
	"github.com/david-solomon-henshaw/app/internal/infrastructure/database"
	"github.com/david-solomon-henshaw/app/internal/infrastructure/repositories"
	"github.com/david-solomon-henshaw/app/internal/services"
)

const rbacModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// recordingNotifier captures outgoing messages so flows can read the
// OTP code the service issued.
type recordingNotifier struct {
	mu            sync.Mutex
	LastOTPCode   string
	ApprovedCount int
	CanceledCount int
}

func (n *recordingNotifier) OTPCode(ctx context.Context, account *domain.Account, code string, ttl time.Duration) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.LastOTPCode = code
	return nil
}

func (n *recordingNotifier) AppointmentApproved(ctx context.Context, patient *domain.Patient, caregiver *domain.Caregiver, appt *domain.Appointment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ApprovedCount++
	return nil
}

func (n *recordingNotifier) AppointmentSuspended(ctx context.Context, patient *domain.Patient, caregiver *domain.Caregiver, appt *domain.Appointment) error {
	return nil
}

func (n *recordingNotifier) AppointmentCanceled(ctx context.Context, patient *domain.Patient, appt *domain.Appointment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.CanceledCount++
	return nil
}

func (n *recordingNotifier) OTP() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.LastOTPCode
}

// TestServer runs the full HTTP stack over sqlite and miniredis.
type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Redis    *redis.Client
	Notifier *recordingNotifier

	AdminRepo     domain.AdminRepository
	PatientRepo   domain.PatientRepository
	CaregiverRepo domain.CaregiverRepository
	ApptRepo      domain.AppointmentRepository
	ActionLogRepo domain.ActionLogRepository
	PasswordSvc   domain.PasswordService
	TokenSvc      domain.TokenService
}

func newTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// A file-backed database keeps every pooled connection on the same
	// data; :memory: gives each connection its own.
	dbPath := filepath.Join(t.TempDir(), "e2e.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	modelPath := filepath.Join(t.TempDir(), "rbac_model.conf")
	if err := os.WriteFile(modelPath, []byte(rbacModel), 0o600); err != nil {
		t.Fatalf("write model: %v", err)
	}
	cas, err := auth.NewCasbinService(db, modelPath)
	if err != nil {
		t.Fatalf("casbin: %v", err)
	}
	cas.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
	cas.E.AddPolicy("role_admin", "/patients/*", "(GET|POST)")
	cas.E.AddPolicy("role_admin", "/caregivers/*", "(GET|PUT)")
	cas.E.AddPolicy("role_owner", "/patients/*", "GET")
	cas.E.AddPolicy("role_owner", "/patients/appointments", "POST")
	cas.E.AddPolicy("role_owner", "/caregivers/*", "(GET|PUT)")

	adminRepo := repositories.NewAdminRepository(db)
	patientRepo := repositories.NewPatientRepository(db)
	caregiverRepo := repositories.NewCaregiverRepository(db)
	apptRepo := repositories.NewAppointmentRepository(db)
	actionLogRepo := repositories.NewActionLogRepository(db)

	directory := services.NewDirectory(adminRepo, patientRepo, caregiverRepo)
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService("e2e-secret", "emed-test", time.Hour)
	notifier := &recordingNotifier{}
	auditSvc := services.NewAuditService(actionLogRepo)

	otpSvc := services.NewOTPService(directory, notifier, rdb, services.OTPConfig{
		Length:       6,
		TTL:          10 * time.Minute,
		MaxAttempts:  5,
		ResendWindow: 0,
	})
	authSvc := services.NewAuthService(directory, passwordSvc, tokenSvc, otpSvc, auditSvc, time.Hour)
	apptSvc := services.NewAppointmentService(apptRepo, patientRepo, caregiverRepo, notifier, auditSvc)
	accountSvc := services.NewAccountService(adminRepo, patientRepo, caregiverRepo, apptRepo, passwordSvc, auditSvc)

	ownershipRules := []config.OwnershipRule{
		{Method: "GET", Path: "/patients/:id", Source: "path", ParamName: "id"},
		{Method: "GET", Path: "/caregivers/:id", Source: "path", ParamName: "id"},
		{Method: "GET", Path: "/caregivers/:id/appointments", Source: "path", ParamName: "id"},
		{Method: "PUT", Path: "/caregivers/:id/appointment", Source: "path", ParamName: "id"},
		{Method: "POST", Path: "/patients/appointments", Source: "body", ParamName: "patientId"},
	}

	router := httpx.BuildRouter(
		handlers.NewAuthHandlers(authSvc),
		handlers.NewAccountHandlers(accountSvc, actionLogRepo),
		handlers.NewAppointmentHandlers(apptSvc),
		handlers.NewPolicyHandlers(services.NewPolicyService(cas.E)),
		middleware.NewAuthMW(tokenSvc),
		middleware.NewCasbinMW(cas.E, ownershipRules),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:        server,
		DB:            db,
		Redis:         rdb,
		Notifier:      notifier,
		AdminRepo:     adminRepo,
		PatientRepo:   patientRepo,
		CaregiverRepo: caregiverRepo,
		ApptRepo:      apptRepo,
		ActionLogRepo: actionLogRepo,
		PasswordSvc:   passwordSvc,
		TokenSvc:      tokenSvc,
	}
}

// do sends a JSON request, optionally authenticated, and decodes the
// JSON response body when there is one.
func (ts *TestServer) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	var decoded map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response %q: %v", string(raw), err)
		}
	}
	return resp.StatusCode, decoded
}

// seedAdmin creates an admin account and returns it with a valid token.
func (ts *TestServer) seedAdmin(t *testing.T, email, password string) (*domain.Admin, string) {
	t.Helper()

	hash, err := ts.PasswordSvc.Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := &domain.Admin{FirstName: "Root", LastName: "Admin", Email: email, PasswordHash: hash}
	if err := ts.AdminRepo.Create(context.Background(), admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	token := ts.tokenFor(t, domain.UserRef{Role: domain.RoleAdmin, ID: admin.ID})
	return admin, token
}

// seedPatient creates a patient account and returns it with a valid token.
func (ts *TestServer) seedPatient(t *testing.T, email, password string) (*domain.Patient, string) {
	t.Helper()

	hash, err := ts.PasswordSvc.Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	patient := &domain.Patient{FirstName: "Pat", LastName: "Doe", Email: email, PasswordHash: hash}
	if err := ts.PatientRepo.Create(context.Background(), patient); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	token := ts.tokenFor(t, domain.UserRef{Role: domain.RolePatient, ID: patient.ID})
	return patient, token
}

// seedCaregiver creates a caregiver account and returns it with a valid token.
func (ts *TestServer) seedCaregiver(t *testing.T, email string) (*domain.Caregiver, string) {
	t.Helper()

	hash, err := ts.PasswordSvc.Hash("caregiver-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	cg := &domain.Caregiver{
		FirstName:    "Cara",
		LastName:     "Giver",
		Email:        email,
		PasswordHash: hash,
		Department:   "cardiology",
		Available:    true,
	}
	if err := ts.CaregiverRepo.Create(context.Background(), cg); err != nil {
		t.Fatalf("create caregiver: %v", err)
	}
	token := ts.tokenFor(t, domain.UserRef{Role: domain.RoleCaregiver, ID: cg.ID})
	return cg, token
}

func (ts *TestServer) tokenFor(t *testing.T, ref domain.UserRef) string {
	t.Helper()
	token, err := ts.TokenSvc.Generate(ref)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func jsonNumber(v interface{}) uint {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return uint(f)
}

func pathID(prefix string, id uint) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
