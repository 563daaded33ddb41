package mocks

import (
	"sync"

	"github.com/david-solomon-henshaw/app/domain"
)

// SentEmail captures one SendEmail call
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// SentSMS captures one SendSMS call
type SentSMS struct {
	To      string
	Message string
}

// MockNotificationService implements domain.NotificationService
// interface for testing. It records every dispatched message.
type MockNotificationService struct {
	SendEmailFunc func(to, subject, htmlBody string) error
	SendSMSFunc   func(to, message string) error

	mu     sync.Mutex
	Emails []SentEmail
	SMS    []SentSMS
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendEmail records the email and succeeds
func (m *MockNotificationService) SendEmail(to, subject, htmlBody string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, htmlBody)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Emails = append(m.Emails, SentEmail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// SendSMS records the SMS and succeeds
func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SMS = append(m.SMS, SentSMS{To: to, Message: message})
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
