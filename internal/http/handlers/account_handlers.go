package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/david-solomon-henshaw/app/domain"
)

// AccountHandlers handles registration, caregiver management and the
// patient profile view
type AccountHandlers struct {
	accountSvc domain.AccountService
	auditRepo  domain.ActionLogRepository
}

// NewAccountHandlers creates new account handlers
func NewAccountHandlers(accountSvc domain.AccountService, auditRepo domain.ActionLogRepository) *AccountHandlers {
	return &AccountHandlers{accountSvc: accountSvc, auditRepo: auditRepo}
}

// PatientRegisterRequest represents patient self-registration
type PatientRegisterRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	PhoneNumber string `json:"phoneNumber"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
}

// AdminRegisterRequest represents admin registration
type AdminRegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

// CaregiverRequest represents caregiver create/update input
type CaregiverRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	Department  string `json:"department"`
	Available   *bool  `json:"available"`
}

func accountError(c *gin.Context, err error) {
	switch err {
	case domain.ErrValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
	case domain.ErrUserAlreadyExists:
		c.JSON(http.StatusConflict, gin.H{"error": "Account already exists"})
	case domain.ErrPatientNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
	case domain.ErrCaregiverNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Caregiver not found"})
	case domain.ErrAdminNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account operation failed"})
	}
}

func caregiverJSON(cg *domain.Caregiver) gin.H {
	return gin.H{
		"id":          cg.ID,
		"firstName":   cg.FirstName,
		"lastName":    cg.LastName,
		"email":       cg.Email,
		"phoneNumber": cg.PhoneNumber,
		"department":  cg.Department,
		"available":   cg.Available,
	}
}

// RegisterPatient handles patient self-registration
func (h *AccountHandlers) RegisterPatient(c *gin.Context) {
	var req PatientRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reg := domain.PatientRegistration{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date of birth, expected YYYY-MM-DD"})
			return
		}
		reg.DateOfBirth = dob
	}

	patient, err := h.accountSvc.RegisterPatient(c.Request.Context(), reg)
	if err != nil {
		accountError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Patient registered successfully",
		"patient": gin.H{
			"id":        patient.ID,
			"firstName": patient.FirstName,
			"lastName":  patient.LastName,
			"email":     patient.Email,
		},
	})
}

// RegisterAdmin handles admin registration
func (h *AccountHandlers) RegisterAdmin(c *gin.Context) {
	var req AdminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.accountSvc.RegisterAdmin(c.Request.Context(), domain.AdminRegistration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}, actorFrom(c))
	if err != nil {
		accountError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin registered successfully",
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}

// CreateCaregiver handles admin-side caregiver creation
func (h *AccountHandlers) CreateCaregiver(c *gin.Context) {
	var req CaregiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caregiver, err := h.accountSvc.CreateCaregiver(c.Request.Context(), domain.CaregiverInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
		Available:   req.Available,
	}, actorFrom(c))
	if err != nil {
		accountError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Caregiver created",
		"caregiver": caregiverJSON(caregiver),
	})
}

// UpdateCaregiver handles caregiver profile updates
func (h *AccountHandlers) UpdateCaregiver(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid caregiver id"})
		return
	}

	var req CaregiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caregiver, err := h.accountSvc.UpdateCaregiver(c.Request.Context(), uint(id), domain.CaregiverInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
		Available:   req.Available,
	})
	if err != nil {
		accountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Caregiver updated",
		"caregiver": caregiverJSON(caregiver),
	})
}

// DeleteCaregiver handles caregiver removal
func (h *AccountHandlers) DeleteCaregiver(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid caregiver id"})
		return
	}

	if err := h.accountSvc.DeleteCaregiver(c.Request.Context(), uint(id), actorFrom(c)); err != nil {
		accountError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Caregiver deleted"})
}

// ListCaregivers handles the admin caregiver roster view
func (h *AccountHandlers) ListCaregivers(c *gin.Context) {
	caregivers, err := h.accountSvc.ListCaregivers(c.Request.Context())
	if err != nil {
		accountError(c, err)
		return
	}
	out := make([]gin.H, 0, len(caregivers))
	for i := range caregivers {
		out = append(out, caregiverJSON(&caregivers[i]))
	}
	c.JSON(http.StatusOK, gin.H{"caregivers": out})
}

// GetCaregiver handles a single caregiver read
func (h *AccountHandlers) GetCaregiver(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid caregiver id"})
		return
	}

	caregiver, err := h.accountSvc.GetCaregiver(c.Request.Context(), uint(id))
	if err != nil {
		accountError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"caregiver": caregiverJSON(caregiver)})
}

// PatientProfile handles the patient profile view with appointment
// statistics
func (h *AccountHandlers) PatientProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient id"})
		return
	}

	profile, err := h.accountSvc.PatientProfile(c.Request.Context(), uint(id))
	if err != nil {
		accountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patient": gin.H{
			"id":          profile.Patient.ID,
			"firstName":   profile.Patient.FirstName,
			"lastName":    profile.Patient.LastName,
			"email":       profile.Patient.Email,
			"phoneNumber": profile.Patient.PhoneNumber,
			"gender":      profile.Patient.Gender,
		},
		"appointments":      appointmentListJSON(profile.Appointments),
		"totalAppointments": profile.TotalAppointments,
		"totalCaregivers":   profile.TotalCaregivers,
		"completedCount":    profile.CompletedCount,
	})
}

// ListActionLogs handles the admin audit trail view
func (h *AccountHandlers) ListActionLogs(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	entries, err := h.auditRepo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load action logs"})
		return
	}

	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, gin.H{
			"id":          e.ID,
			"userId":      e.UserID,
			"userRole":    e.UserRole,
			"action":      e.Action,
			"description": e.Description,
			"entity":      e.Entity,
			"entityId":    e.EntityID,
			"status":      e.Status,
			"timestamp":   e.Timestamp,
		})
	}
	c.JSON(http.StatusOK, gin.H{"actionLogs": out})
}
