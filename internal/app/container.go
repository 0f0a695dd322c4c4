package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/saruni-spec/pin-registration/domain"
	"github.com/saruni-spec/pin-registration/internal/config"
	"github.com/saruni-spec/pin-registration/internal/infrastructure/auth"
	"github.com/saruni-spec/pin-registration/internal/infrastructure/database"
	"github.com/saruni-spec/pin-registration/internal/infrastructure/notifications"
	"github.com/saruni-spec/pin-registration/internal/infrastructure/repositories"
	"github.com/saruni-spec/pin-registration/internal/infrastructure/upstream"
	"github.com/saruni-spec/pin-registration/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	// Repositories
	DraftRepo     domain.DraftRepository
	SessionRepo   domain.SessionRepository
	SavedItemRepo domain.SavedItemRepository

	// Gateways
	TaxGW      domain.TaxGateway
	CurrencyGW domain.CurrencyGateway
	Sender     domain.DocumentSender

	// Services
	TokenSvc        domain.TokenService
	VerificationSvc domain.VerificationService
	DraftSvc        domain.DraftService
	InvoiceSvc      domain.InvoiceService
	RegistrationSvc domain.RegistrationService
	DeclarationSvc  domain.DeclarationService
	PolicySvc       domain.PolicyService
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
	container.initRepositories()
	container.initGateways()
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

	cas, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}

	c.DB = db
	c.Casbin = cas
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	return nil
}

func (c *Container) initRepositories() {
	// Draft writes survive a Redis outage through the in-process
	// fallback; a lost draft must never block a wizard.
	c.DraftRepo = repositories.NewResilientDraftStore(
		repositories.NewDraftRepository(c.RedisClient, c.Config.DraftTTL),
	)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.SessionTTL)
	c.SavedItemRepo = repositories.NewSavedItemRepository(c.DB)
}

func (c *Container) initGateways() {
	client := upstream.NewClient(c.Config.LookupTimeout, c.Config.SubmitTimeout, c.Config.SourceChannel)
	c.TaxGW = upstream.NewUSSDGateway(client, c.Config.USSDBaseURL, c.Config.ITaxBaseURL, c.Config.CountryPrefix)
	c.CurrencyGW = upstream.NewCustomsCurrencyGateway(client, c.Config.CustomsURL, c.Config.DeclarationMinimum)
	c.Sender = notifications.NewTwilioService(c.Config.TwilioSID, c.Config.TwilioToken, c.Config.TwilioFrom)
}

func (c *Container) initServices() {
	c.TokenSvc = auth.NewCookieTokenService(c.Config.SessionSecret, c.Config.SessionIssuer, c.Config.SessionTTL)
	c.VerificationSvc = services.NewVerificationService(c.TaxGW, c.SessionRepo, c.TokenSvc, c.Config.SessionTTL, c.Config.CountryPrefix)
	c.DraftSvc = services.NewDraftService(c.DraftRepo, c.Config.TaxRate)
	c.InvoiceSvc = services.NewInvoiceService(c.DraftRepo, c.TaxGW, c.Sender, c.Config.TaxRate)
	c.RegistrationSvc = services.NewRegistrationService(c.DraftRepo, c.TaxGW, c.Sender)
	c.DeclarationSvc = services.NewDeclarationService(c.SavedItemRepo, c.CurrencyGW)
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
