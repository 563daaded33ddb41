package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/david-solomon-henshaw/app/domain"
	"github.com/david-solomon-henshaw/app/internal/config"
	"github.com/david-solomon-henshaw/app/internal/infrastructure/auth"
	"github.com/david-solomon-henshaw/app/internal/infrastructure/database"
	"github.com/david-solomon-henshaw/app/internal/infrastructure/notifications"
	"github.com/david-solomon-henshaw/app/internal/infrastructure/repositories"
	"github.com/david-solomon-henshaw/app/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	AdminRepo     domain.AdminRepository
	PatientRepo   domain.PatientRepository
	CaregiverRepo domain.CaregiverRepository
	ApptRepo      domain.AppointmentRepository
	ActionLogRepo domain.ActionLogRepository

	Directory   domain.IdentityDirectory
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	Notifier    domain.AppointmentNotifier
	AuditSvc    domain.AuditService
	OTPSvc      domain.OTPService
	AuthSvc     domain.AuthService
	ApptSvc     domain.AppointmentService
	AccountSvc  domain.AccountService
	PolicySvc   domain.PolicyService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}
	if err := container.initCasbin(); err != nil {
		return nil, err
	}

	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	return c.RedisClient.Ping(context.Background()).Err()
}

func (c *Container) initCasbin() error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}
	c.Casbin = cas
	return nil
}

func (c *Container) initRepositories() {
	c.AdminRepo = repositories.NewAdminRepository(c.DB)
	c.PatientRepo = repositories.NewPatientRepository(c.DB)
	c.CaregiverRepo = repositories.NewCaregiverRepository(c.DB)
	c.ApptRepo = repositories.NewAppointmentRepository(c.DB)
	c.ActionLogRepo = repositories.NewActionLogRepository(c.DB)
}

func (c *Container) initServices() {
	c.Directory = services.NewDirectory(c.AdminRepo, c.PatientRepo, c.CaregiverRepo)
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.TokenTTL)

	mailer := notifications.NewSMTPMailer(c.Config.SMTPHost, c.Config.SMTPPort, c.Config.SMTPFrom)
	sms := notifications.NewTwilioService(c.Config.TwilioSID, c.Config.TwilioToken, c.Config.TwilioFrom)
	c.Notifier = notifications.NewDispatcher(notifications.NewService(mailer, sms))

	c.AuditSvc = services.NewAuditService(c.ActionLogRepo)

	c.OTPSvc = services.NewOTPService(c.Directory, c.Notifier, c.RedisClient, services.OTPConfig{
		Length:       c.Config.OTP_Length,
		TTL:          c.Config.OTP_TTL,
		MaxAttempts:  c.Config.OTP_MaxAttempts,
		ResendWindow: c.Config.OTP_ResendWindow,
	})

	c.AuthSvc = services.NewAuthService(
		c.Directory,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.AuditSvc,
		c.Config.TokenTTL,
	)
	c.ApptSvc = services.NewAppointmentService(
		c.ApptRepo,
		c.PatientRepo,
		c.CaregiverRepo,
		c.Notifier,
		c.AuditSvc,
	)
	c.AccountSvc = services.NewAccountService(
		c.AdminRepo,
		c.PatientRepo,
		c.CaregiverRepo,
		c.ApptRepo,
		c.PasswordSvc,
		c.AuditSvc,
	)
	c.PolicySvc = services.NewPolicyService(c.Casbin.E)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
