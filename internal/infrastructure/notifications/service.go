package notifications

import (
	"github.com/david-solomon-henshaw/app/domain"
)

// Service combines the email and SMS channels behind the
// domain.NotificationService contract.
type Service struct {
	mailer *SMTPMailer
	sms    *TwilioService
}

func NewService(mailer *SMTPMailer, sms *TwilioService) domain.NotificationService {
	return &Service{mailer: mailer, sms: sms}
}

// SendEmail implements domain.NotificationService
func (s *Service) SendEmail(to, subject, htmlBody string) error {
	return s.mailer.SendEmail(to, subject, htmlBody)
}

// SendSMS implements domain.NotificationService
func (s *Service) SendSMS(to, message string) error {
	return s.sms.SendSMS(to, message)
}
