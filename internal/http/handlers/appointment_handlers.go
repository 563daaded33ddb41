package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/david-solomon-henshaw/app/domain"
)

// AppointmentHandlers handles appointment lifecycle HTTP requests
type AppointmentHandlers struct {
	apptSvc domain.AppointmentService
}

// NewAppointmentHandlers creates new appointment handlers
func NewAppointmentHandlers(apptSvc domain.AppointmentService) *AppointmentHandlers {
	return &AppointmentHandlers{apptSvc: apptSvc}
}

// CreateAppointmentRequest represents a patient's appointment request
type CreateAppointmentRequest struct {
	PatientID            uint   `json:"patientId" binding:"required"`
	Department           string `json:"department" binding:"required"`
	PatientRequestedDate string `json:"patientRequestedDate" binding:"required"`
	PatientRequestedTime string `json:"patientRequestedTime" binding:"required"`
}

// UpdateAppointmentRequest represents an admin's partial update. Absent
// fields keep their stored values.
type UpdateAppointmentRequest struct {
	Status          *string    `json:"status"`
	CaregiverID     *uint      `json:"caregiverId"`
	AppointmentDate *time.Time `json:"appointmentDate"`
	StartTime       *time.Time `json:"startTime"`
}

// CancelAppointmentRequest carries the target status of a cancellation
type CancelAppointmentRequest struct {
	Status string `json:"status" binding:"required"`
}

// CaregiverStatusRequest carries a caregiver's status change
type CaregiverStatusRequest struct {
	AppointmentID uint   `json:"appointmentId" binding:"required"`
	Status        string `json:"status" binding:"required"`
}

func appointmentJSON(appt *domain.Appointment) gin.H {
	return gin.H{
		"id":                   appt.ID,
		"patientId":            appt.PatientID,
		"caregiverId":          appt.CaregiverID,
		"department":           appt.Department,
		"patientRequestedDate": appt.PatientRequestedDate,
		"patientRequestedTime": appt.PatientRequestedTime,
		"appointmentDate":      appt.AppointmentDate,
		"startTime":            appt.StartTime,
		"status":               appt.Status,
		"approvedAt":           appt.ApprovedAt,
		"createdAt":            appt.CreatedAt,
	}
}

func appointmentListJSON(appts []domain.Appointment) []gin.H {
	out := make([]gin.H, 0, len(appts))
	for i := range appts {
		out = append(out, appointmentJSON(&appts[i]))
	}
	return out
}

func apptError(c *gin.Context, err error) {
	switch err {
	case domain.ErrValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
	case domain.ErrInvalidStatus:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment status"})
	case domain.ErrAppointmentNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
	case domain.ErrPatientNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
	case domain.ErrCaregiverNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Caregiver not found"})
	case domain.ErrAlreadyCanceled:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment is already canceled"})
	case domain.ErrUnauthorized:
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Appointment operation failed"})
	}
}

// Create handles a patient's appointment request
func (h *AppointmentHandlers) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	appt, err := h.apptSvc.Create(c.Request.Context(), domain.AppointmentRequest{
		PatientID:            req.PatientID,
		Department:           req.Department,
		PatientRequestedDate: req.PatientRequestedDate,
		PatientRequestedTime: req.PatientRequestedTime,
	})
	if err != nil {
		apptError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment requested",
		"appointment": appointmentJSON(appt),
	})
}

// Update handles an admin's schedule/status update
func (h *AppointmentHandlers) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := domain.AppointmentUpdate{
		CaregiverID:     req.CaregiverID,
		AppointmentDate: req.AppointmentDate,
		StartTime:       req.StartTime,
	}
	if req.Status != nil {
		status := domain.AppointmentStatus(*req.Status)
		upd.Status = &status
	}

	appt, err := h.apptSvc.Update(c.Request.Context(), uint(id), upd, actorFrom(c))
	if err != nil {
		apptError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Appointment updated",
		"appointment": appointmentJSON(appt),
	})
}

// Cancel handles a cancellation by patient or admin
func (h *AppointmentHandlers) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
		return
	}

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	appt, err := h.apptSvc.Cancel(c.Request.Context(), uint(id), domain.AppointmentStatus(req.Status), actorFrom(c))
	if err != nil {
		apptError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Appointment canceled",
		"appointment": appointmentJSON(appt),
	})
}

// List handles the admin view of all appointments
func (h *AppointmentHandlers) List(c *gin.Context) {
	appts, err := h.apptSvc.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		apptError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointmentListJSON(appts)})
}

// ListForPatient handles a patient's own appointment list
func (h *AppointmentHandlers) ListForPatient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient id"})
		return
	}

	appts, err := h.apptSvc.ListForPatient(c.Request.Context(), uint(id))
	if err != nil {
		apptError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointmentListJSON(appts)})
}

// ListForCaregiver handles a caregiver's assigned appointment list
func (h *AppointmentHandlers) ListForCaregiver(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid caregiver id"})
		return
	}

	appts, err := h.apptSvc.ListForCaregiver(c.Request.Context(), uint(id))
	if err != nil {
		apptError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointmentListJSON(appts)})
}

// UpdateStatusByCaregiver handles a caregiver closing out an
// appointment assigned to them
func (h *AppointmentHandlers) UpdateStatusByCaregiver(c *gin.Context) {
	caregiverID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid caregiver id"})
		return
	}

	var req CaregiverStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	appt, err := h.apptSvc.UpdateStatusByCaregiver(c.Request.Context(), uint(caregiverID), req.AppointmentID, domain.AppointmentStatus(req.Status))
	if err != nil {
		apptError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Appointment updated",
		"appointment": appointmentJSON(appt),
	})
}

// actorFrom builds the acting user's reference from the values the auth
// middleware stored on the context.
func actorFrom(c *gin.Context) domain.UserRef {
	ref := domain.UserRef{Role: domain.RoleError}
	if id, ok := c.Get("user_id"); ok {
		if uid, ok := id.(uint); ok {
			ref.ID = uid
		}
	}
	if role, ok := c.Get("user_role"); ok {
		if r, ok := role.(string); ok {
			ref.Role = domain.Role(r)
		}
	}
	return ref
}
