package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type RateLimitConfig struct {
	Backend     string `yaml:"backend"` // "memory" or "redis"
	MaxAttempts int    `yaml:"max_attempts"`
	Window      string `yaml:"window"`
}

type ResetConfig struct {
	TTL string `yaml:"ttl"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type UploadConfig struct {
	Dir              string   `yaml:"dir"`
	MaxLogoSizeBytes int64    `yaml:"max_logo_size_bytes"`
	AllowedExts      []string `yaml:"allowed_extensions"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Reset     ResetConfig     `yaml:"reset"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Casbin    CasbinConfig    `yaml:"casbin"`
	Upload    UploadConfig    `yaml:"upload"`
}

type Config struct {
	Port          string
	GinMode       string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	RateLimitBackend string
	MaxLoginAttempts int
	LoginWindow      time.Duration

	ResetTokenTTL time.Duration

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	CasbinModelPath string

	UploadDir        string
	MaxLogoSizeBytes int64
	AllowedExts      []string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	// Local overrides from .env; absence is not an error
	_ = godotenv.Load()

	configFile, err := loadConfigFile(env("EBAR_CONFIG", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	tokenTTL, err := time.ParseDuration(configFile.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT TTL: %w", err)
	}

	loginWindow, err := time.ParseDuration(configFile.RateLimit.Window)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	resetTTL, err := time.ParseDuration(configFile.Reset.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	exts := make([]string, 0, len(configFile.Upload.AllowedExts))
	for _, e := range configFile.Upload.AllowedExts {
		exts = append(exts, strings.ToLower(e))
	}

	return &Config{
		Port:          fmt.Sprintf("%d", configFile.App.Port),
		GinMode:       configFile.App.GinMode,
		DSN:           env("EBAR_DSN", configFile.Database.DSN),
		RedisAddr:     env("EBAR_REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: configFile.Redis.Password,
		RedisDB:       configFile.Redis.DB,

		JWTSecret: env("EBAR_JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer: configFile.JWT.Issuer,
		TokenTTL:  tokenTTL,

		RateLimitBackend: configFile.RateLimit.Backend,
		MaxLoginAttempts: configFile.RateLimit.MaxAttempts,
		LoginWindow:      loginWindow,

		ResetTokenTTL: resetTTL,

		TwilioSID:   env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken: env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:  configFile.Twilio.FromNumber,

		CasbinModelPath: configFile.Casbin.ModelPath,

		UploadDir:        env("EBAR_UPLOAD_DIR", configFile.Upload.Dir),
		MaxLogoSizeBytes: configFile.Upload.MaxLogoSizeBytes,
		AllowedExts:      exts,
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
