package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/david-solomon-henshaw/app/domain"
)

// OTPServiceImpl implements domain.OTPService. The code and its expiry
// are persisted on the account's directory record; Redis carries only
// the resend throttle and the attempt counter.
type OTPServiceImpl struct {
	directory   domain.IdentityDirectory
	notifier    domain.AppointmentNotifier
	redisClient *redis.Client
	config      OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(
	directory domain.IdentityDirectory,
	notifier domain.AppointmentNotifier,
	redisClient *redis.Client,
	config OTPConfig,
) domain.OTPService {
	if config.Length <= 0 {
		config.Length = 6
	}
	if config.TTL <= 0 {
		config.TTL = 10 * time.Minute
	}
	return &OTPServiceImpl{
		directory:   directory,
		notifier:    notifier,
		redisClient: redisClient,
		config:      config,
	}
}

// Issue implements domain.OTPService. A reissue overwrites any code
// already stored on the record, so only the latest code verifies.
func (s *OTPServiceImpl) Issue(ctx context.Context, account *domain.Account) error {
	resendKey := s.resendKey(account.Ref)
	attemptsKey := s.attemptsKey(account.Ref)

	if s.config.ResendWindow > 0 {
		ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
		if err != nil && err != redis.Nil {
			return fmt.Errorf("failed to check resend throttle: %w", err)
		}
		if ttl > 0 {
			return domain.ErrOTPResendLimit
		}
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP code: %w", err)
	}

	expiresAt := time.Now().Add(s.config.TTL)
	if err := s.directory.SaveOTP(ctx, account.Ref, code, &expiresAt); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}
	account.OTP = code
	account.OTPExpiresAt = &expiresAt

	// Reset attempts for the new code
	if err := s.redisClient.Set(ctx, attemptsKey, 0, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to initialize attempts counter: %w", err)
	}
	if s.config.ResendWindow > 0 {
		if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
			return fmt.Errorf("failed to set resend throttle: %w", err)
		}
	}

	if err := s.notifier.OTPCode(ctx, account, code, s.config.TTL); err != nil {
		// Roll back so a code the user never received cannot linger
		_ = s.directory.SaveOTP(ctx, account.Ref, "", nil)
		s.redisClient.Del(ctx, attemptsKey, resendKey)
		return fmt.Errorf("failed to send OTP: %w", err)
	}

	return nil
}

// Check implements domain.OTPService. Expiry is reported before a code
// mismatch: an expired stored code never leaks whether the submitted
// one would have matched. Clearing the code after success is the
// caller's job.
func (s *OTPServiceImpl) Check(ctx context.Context, account *domain.Account, code string) error {
	if account.OTP == "" || account.OTPExpiresAt == nil {
		return domain.ErrNoPendingOTP
	}

	attemptsKey := s.attemptsKey(account.Ref)
	attempts, err := s.redisClient.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}
	if s.config.MaxAttempts > 0 && attempts > int64(s.config.MaxAttempts) {
		return domain.ErrOTPMaxAttempts
	}

	if time.Now().After(*account.OTPExpiresAt) {
		return domain.ErrOTPExpired
	}
	if account.OTP != code {
		return domain.ErrOTPInvalid
	}

	s.redisClient.Del(ctx, attemptsKey)
	return nil
}

func (s *OTPServiceImpl) resendKey(ref domain.UserRef) string {
	return fmt.Sprintf("otp:res:%s:%d", ref.Role, ref.ID)
}

func (s *OTPServiceImpl) attemptsKey(ref domain.UserRef) string {
	return fmt.Sprintf("otp:att:%s:%d", ref.Role, ref.ID)
}

// generateSecureCode generates a cryptographically secure numeric code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
