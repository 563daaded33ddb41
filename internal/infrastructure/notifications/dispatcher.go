package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/david-solomon-henshaw/app/domain"
)

// Dispatcher formats the role-specific messages for lifecycle
// transitions and the OTP step and hands them to the delivery channels.
type Dispatcher struct {
	svc domain.NotificationService
}

func NewDispatcher(svc domain.NotificationService) domain.AppointmentNotifier {
	return &Dispatcher{svc: svc}
}

// OTPCode implements domain.AppointmentNotifier
func (d *Dispatcher) OTPCode(_ context.Context, account *domain.Account, code string, ttl time.Duration) error {
	body := wrap("OTP Verification", fmt.Sprintf(
		`<p>Hello, please use the following OTP to complete your login:</p>
		<p style="font-size:24px;font-weight:bold;text-align:center;">%s</p>
		<p>This code is valid for %d minutes. If you didn't request this, please ignore this email or contact support.</p>`,
		code, int(ttl.Minutes()),
	))
	return d.svc.SendEmail(account.Email, "Your OTP Code", body)
}

// AppointmentApproved implements domain.AppointmentNotifier. Patient and
// caregiver receive distinct messages.
func (d *Dispatcher) AppointmentApproved(_ context.Context, patient *domain.Patient, caregiver *domain.Caregiver, appt *domain.Appointment) error {
	caregiverName := "your caregiver"
	if caregiver != nil {
		caregiverName = caregiver.FirstName + " " + caregiver.LastName
	}

	patientBody := wrap("Appointment Approved", fmt.Sprintf(
		`<p>Dear %s,</p>
		<p>Your appointment on <strong>%s</strong> at <strong>%s</strong> has been approved.</p>
		<p><strong>Caregiver:</strong> %s</p>
		<p>Please be on time.</p>`,
		patient.FirstName, fmtDate(appt.AppointmentDate), fmtClock(appt.StartTime), caregiverName,
	))
	if err := d.svc.SendEmail(patient.Email, "Appointment Approved", patientBody); err != nil {
		return err
	}

	if caregiver == nil || caregiver.Email == "" {
		return nil
	}
	caregiverBody := wrap("New Appointment Assignment", fmt.Sprintf(
		`<p>Dear %s,</p>
		<p>You have been assigned to an appointment with %s %s.</p>
		<p><strong>Appointment Date:</strong> %s</p>
		<p><strong>Start Time:</strong> %s</p>
		<p>Please ensure to attend the appointment on time.</p>`,
		caregiver.FirstName, patient.FirstName, patient.LastName,
		fmtDate(appt.AppointmentDate), fmtClock(appt.StartTime),
	))
	return d.svc.SendEmail(caregiver.Email, "New Appointment Assignment", caregiverBody)
}

// AppointmentSuspended implements domain.AppointmentNotifier
func (d *Dispatcher) AppointmentSuspended(_ context.Context, patient *domain.Patient, caregiver *domain.Caregiver, appt *domain.Appointment) error {
	patientBody := wrap("Appointment Suspended", fmt.Sprintf(
		`<p>Dear %s,</p>
		<p>Your appointment on <strong>%s</strong> at <strong>%s</strong> has been suspended.</p>
		<p>We will contact you to reschedule shortly.</p>`,
		patient.FirstName, fmtDate(appt.AppointmentDate), fmtClock(appt.StartTime),
	))
	if err := d.svc.SendEmail(patient.Email, "Appointment Suspended", patientBody); err != nil {
		return err
	}

	if caregiver == nil || caregiver.Email == "" {
		return nil
	}
	caregiverBody := wrap("Appointment Suspended", fmt.Sprintf(
		`<p>Dear %s,</p>
		<p>The appointment you were assigned to with %s %s on %s has been suspended.</p>
		<p>Please await further instructions.</p>`,
		caregiver.FirstName, patient.FirstName, patient.LastName, fmtDate(appt.AppointmentDate),
	))
	return d.svc.SendEmail(caregiver.Email, "Appointment Suspended", caregiverBody)
}

// AppointmentCanceled implements domain.AppointmentNotifier. Only the
// patient is notified; a text message goes out as well when a phone
// number is on record.
func (d *Dispatcher) AppointmentCanceled(_ context.Context, patient *domain.Patient, appt *domain.Appointment) error {
	body := wrap("Appointment Cancelled", fmt.Sprintf(
		`<p>Dear %s,</p>
		<p>We regret to inform you that your appointment on <strong>%s</strong> at <strong>%s</strong> has been cancelled.</p>
		<p>Please contact us for rescheduling or further assistance.</p>`,
		patient.FirstName, fmtDate(appt.AppointmentDate), fmtClock(appt.StartTime),
	))
	if err := d.svc.SendEmail(patient.Email, "Appointment Canceled", body); err != nil {
		return err
	}

	if patient.PhoneNumber != "" {
		msg := fmt.Sprintf("eMed: your appointment on %s has been cancelled. Please contact us to reschedule.",
			fmtDate(appt.AppointmentDate))
		return d.svc.SendSMS(patient.PhoneNumber, msg)
	}
	return nil
}

// wrap applies the shared email frame around a body fragment.
func wrap(title, inner string) string {
	return fmt.Sprintf(
		`<div style="font-family:Arial,sans-serif;max-width:600px;margin:auto;border:1px solid #ddd;padding:20px;border-radius:8px;">
		<div style="background-color:#007bff;color:white;padding:10px;text-align:center;border-radius:8px 8px 0 0;"><h2>%s</h2></div>
		<div style="padding:20px;line-height:1.6;">%s</div>
		<div style="text-align:center;margin-top:20px;font-size:12px;color:#555;"><p>Best regards,<br/>The eMed Team</p></div>
		</div>`,
		title, inner,
	)
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return "a date to be scheduled"
	}
	return t.Format("January 2, 2006")
}

func fmtClock(t *time.Time) string {
	if t == nil {
		return "a time to be scheduled"
	}
	return t.Format("3:04 PM")
}
