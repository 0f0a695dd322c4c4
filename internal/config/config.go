package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	Env     string `yaml:"env"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type UpstreamConfig struct {
	USSDBaseURL   string `yaml:"ussd_base_url"`
	ITaxBaseURL   string `yaml:"itax_base_url"`
	CustomsURL    string `yaml:"customs_base_url"`
	SourceChannel string `yaml:"source_channel"`
	LookupTimeout string `yaml:"lookup_timeout"`
	SubmitTimeout string `yaml:"submit_timeout"`
}

type SessionConfig struct {
	CookieName     string `yaml:"cookie_name"`
	Secret         string `yaml:"secret"`
	Issuer         string `yaml:"issuer"`
	TTL            string `yaml:"ttl"`
	AllowAnonymous bool   `yaml:"allow_anonymous"`
}

type BillingConfig struct {
	TaxRate       string `yaml:"tax_rate"`
	CountryPrefix string `yaml:"country_prefix"`
	DraftTTL      string `yaml:"draft_ttl"`
}

type DeclarationConfig struct {
	MinimumValue string `yaml:"minimum_value"`
}

type TwilioConfig struct {
	AccountSID    string `yaml:"account_sid"`
	AuthToken     string `yaml:"auth_token"`
	FromNumber    string `yaml:"from_number"`
	SupportNumber string `yaml:"support_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App         AppConfig         `yaml:"app"`
	Database    DatabaseConfig    `yaml:"database"`
	Redis       RedisConfig       `yaml:"redis"`
	Upstream    UpstreamConfig    `yaml:"upstream"`
	Session     SessionConfig     `yaml:"session"`
	Billing     BillingConfig     `yaml:"billing"`
	Declaration DeclarationConfig `yaml:"declaration"`
	Twilio      TwilioConfig      `yaml:"twilio"`
	Casbin      CasbinConfig      `yaml:"casbin"`
}

type Config struct {
	Port          string
	GinMode       string
	Production    bool
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	USSDBaseURL   string
	ITaxBaseURL   string
	CustomsURL    string
	SourceChannel string
	LookupTimeout time.Duration
	SubmitTimeout time.Duration

	SessionCookieName string
	SessionSecret     string
	SessionIssuer     string
	SessionTTL        time.Duration
	AllowAnonymous    bool

	TaxRate       decimal.Decimal
	CountryPrefix string
	DraftTTL      time.Duration

	DeclarationMinimum decimal.Decimal

	TwilioSID     string
	TwilioToken   string
	TwilioFrom    string
	SupportNumber string

	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	lookupTimeout, err := time.ParseDuration(configFile.Upstream.LookupTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream lookup timeout: %w", err)
	}

	submitTimeout, err := time.ParseDuration(configFile.Upstream.SubmitTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream submit timeout: %w", err)
	}

	sessionTTL, err := time.ParseDuration(configFile.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	draftTTL, err := time.ParseDuration(configFile.Billing.DraftTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid draft TTL: %w", err)
	}

	taxRate, err := decimal.NewFromString(configFile.Billing.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("invalid tax rate: %w", err)
	}

	declarationMin, err := decimal.NewFromString(configFile.Declaration.MinimumValue)
	if err != nil {
		return nil, fmt.Errorf("invalid declaration minimum: %w", err)
	}

	return &Config{
		Port:          fmt.Sprintf("%d", configFile.App.Port),
		GinMode:       configFile.App.GinMode,
		Production:    env("APP_ENV", configFile.App.Env) == "production",
		DSN:           env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,

		USSDBaseURL:   configFile.Upstream.USSDBaseURL,
		ITaxBaseURL:   configFile.Upstream.ITaxBaseURL,
		CustomsURL:    configFile.Upstream.CustomsURL,
		SourceChannel: configFile.Upstream.SourceChannel,
		LookupTimeout: lookupTimeout,
		SubmitTimeout: submitTimeout,

		SessionCookieName: configFile.Session.CookieName,
		SessionSecret:     env("SESSION_SECRET", configFile.Session.Secret),
		SessionIssuer:     configFile.Session.Issuer,
		SessionTTL:        sessionTTL,
		AllowAnonymous:    configFile.Session.AllowAnonymous,

		TaxRate:       taxRate,
		CountryPrefix: configFile.Billing.CountryPrefix,
		DraftTTL:      draftTTL,

		DeclarationMinimum: declarationMin,

		TwilioSID:     env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:   env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:    configFile.Twilio.FromNumber,
		SupportNumber: configFile.Twilio.SupportNumber,

		CasbinModelPath: configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
