package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createAppointment(t *testing.T, ts *TestServer, token string, patientID uint) uint {
	t.Helper()

	status, body := ts.do(t, http.MethodPost, "/patients/appointments", token, map[string]interface{}{
		"patientId":            patientID,
		"department":           "cardiology",
		"patientRequestedDate": "2026-09-15",
		"patientRequestedTime": "10:30",
	})
	require.Equal(t, http.StatusCreated, status, "create appointment: %v", body)

	appt, ok := body["appointment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "pending", appt["status"])
	return jsonNumber(appt["id"])
}

func TestAppointmentFlow_ApproveIsIdempotent(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedAdmin(t, "admin@example.com", "admin-pass")
	patient, patientToken := ts.seedPatient(t, "pat@example.com", "secret123")
	caregiver, _ := ts.seedCaregiver(t, "cg@example.com")

	apptID := createAppointment(t, ts, patientToken, patient.ID)

	status, body := ts.do(t, http.MethodPut, pathID("/admin/appointments", apptID), adminToken, map[string]interface{}{
		"status":      "approved",
		"caregiverId": caregiver.ID,
	})
	require.Equal(t, http.StatusOK, status, "approve: %v", body)
	appt := body["appointment"].(map[string]interface{})
	firstApprovedAt := appt["approvedAt"]
	require.NotNil(t, firstApprovedAt)
	assert.Equal(t, 1, ts.Notifier.ApprovedCount)

	// A second approval keeps the original timestamp but still mails the
	// parties, so a rescheduled date reaches them.
	status, body = ts.do(t, http.MethodPut, pathID("/admin/appointments", apptID), adminToken, map[string]interface{}{
		"status": "approved",
	})
	require.Equal(t, http.StatusOK, status, "re-approve: %v", body)
	appt = body["appointment"].(map[string]interface{})
	assert.Equal(t, firstApprovedAt, appt["approvedAt"])
	assert.Equal(t, 2, ts.Notifier.ApprovedCount)
}

func TestAppointmentFlow_CancelAlreadyCanceled(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedAdmin(t, "admin@example.com", "admin-pass")
	patient, patientToken := ts.seedPatient(t, "pat@example.com", "secret123")

	apptID := createAppointment(t, ts, patientToken, patient.ID)

	status, body := ts.do(t, http.MethodPut, pathID("/admin/appointments", apptID)+"/cancel", adminToken, map[string]interface{}{
		"status": "canceled",
	})
	require.Equal(t, http.StatusOK, status, "cancel: %v", body)
	assert.Equal(t, 1, ts.Notifier.CanceledCount)

	status, _ = ts.do(t, http.MethodPut, pathID("/admin/appointments", apptID)+"/cancel", adminToken, map[string]interface{}{
		"status": "canceled",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 1, ts.Notifier.CanceledCount)
}

func TestAppointmentFlow_CaregiverCompletesOwnAppointment(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedAdmin(t, "admin@example.com", "admin-pass")
	patient, patientToken := ts.seedPatient(t, "pat@example.com", "secret123")
	caregiver, caregiverToken := ts.seedCaregiver(t, "cg@example.com")
	other, otherToken := ts.seedCaregiver(t, "other@example.com")

	apptID := createAppointment(t, ts, patientToken, patient.ID)

	status, body := ts.do(t, http.MethodPut, pathID("/admin/appointments", apptID), adminToken, map[string]interface{}{
		"status":      "approved",
		"caregiverId": caregiver.ID,
	})
	require.Equal(t, http.StatusOK, status, "approve: %v", body)

	// An unassigned caregiver cannot touch the appointment.
	status, _ = ts.do(t, http.MethodPut, pathID("/caregivers", other.ID)+"/appointment", otherToken, map[string]interface{}{
		"appointmentId": apptID,
		"status":        "completed",
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = ts.do(t, http.MethodPut, pathID("/caregivers", caregiver.ID)+"/appointment", caregiverToken, map[string]interface{}{
		"appointmentId": apptID,
		"status":        "completed",
	})
	require.Equal(t, http.StatusOK, status, "complete: %v", body)
	appt := body["appointment"].(map[string]interface{})
	assert.Equal(t, "completed", appt["status"])
}

func TestAppointmentFlow_PatientCannotCreateForOthers(t *testing.T) {
	ts := newTestServer(t)
	_, tokenA := ts.seedPatient(t, "a@example.com", "secret123")
	patientB, _ := ts.seedPatient(t, "b@example.com", "secret123")

	status, _ := ts.do(t, http.MethodPost, "/patients/appointments", tokenA, map[string]interface{}{
		"patientId":            patientB.ID,
		"department":           "cardiology",
		"patientRequestedDate": "2026-09-15",
		"patientRequestedTime": "10:30",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAppointmentFlow_ProfileCountsCompleted(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedAdmin(t, "admin@example.com", "admin-pass")
	patient, patientToken := ts.seedPatient(t, "pat@example.com", "secret123")
	caregiver, caregiverToken := ts.seedCaregiver(t, "cg@example.com")

	apptID := createAppointment(t, ts, patientToken, patient.ID)

	status, body := ts.do(t, http.MethodPut, pathID("/admin/appointments", apptID), adminToken, map[string]interface{}{
		"status":      "approved",
		"caregiverId": caregiver.ID,
	})
	require.Equal(t, http.StatusOK, status, "approve: %v", body)

	status, body = ts.do(t, http.MethodPut, pathID("/caregivers", caregiver.ID)+"/appointment", caregiverToken, map[string]interface{}{
		"appointmentId": apptID,
		"status":        "completed",
	})
	require.Equal(t, http.StatusOK, status, "complete: %v", body)

	status, body = ts.do(t, http.MethodGet, pathID("/patients", patient.ID), patientToken, nil)
	require.Equal(t, http.StatusOK, status, "profile: %v", body)
	assert.EqualValues(t, 1, body["totalAppointments"])
	assert.EqualValues(t, 1, body["totalCaregivers"])
	assert.EqualValues(t, 1, body["completedCount"])
}

func TestAppointmentFlow_AuditTrailGrows(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedAdmin(t, "admin@example.com", "admin-pass")
	patient, patientToken := ts.seedPatient(t, "pat@example.com", "secret123")

	createAppointment(t, ts, patientToken, patient.ID)

	status, body := ts.do(t, http.MethodGet, "/admin/action-logs", adminToken, nil)
	require.Equal(t, http.StatusOK, status, "action logs: %v", body)
	logs, ok := body["actionLogs"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, logs)
}
