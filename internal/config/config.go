package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	BaseURL  string
	Database DatabaseConfig
	JWT      JWTConfig
	Gateway  GatewayConfig
	Mail     MailConfig
	Policy   PolicyConfig
	Storage  StorageConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// GatewayConfig holds payment gateway credentials
type GatewayConfig struct {
	StoreID   string
	StorePass string
	IsSandbox bool
}

// MailConfig holds outbound email configuration
type MailConfig struct {
	SendGridKey string
	FromAddress string
	FromName    string
	AdminInbox  string
}

// PolicyConfig holds business policy knobs that vary across firm
// policy revisions.
type PolicyConfig struct {
	// AdvancePercent is the advance installment as a percentage of the
	// total fee (the remainder is collected at the final stage).
	AdvancePercent float64
	// MinHearingsToClose is the minimum number of hearings a case must
	// have before it may be closed.
	MinHearingsToClose int
	// WorkloadCeiling is the max concurrent Pending/Active cases per lawyer.
	WorkloadCeiling int
}

// StorageConfig holds document storage configuration
type StorageConfig struct {
	DocumentDir string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		BaseURL:  getEnv("BASE_URL", "http://localhost:3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Gateway:  loadGatewayConfig(appMode),
		Mail:     loadMailConfig(),
		Policy:   loadPolicyConfig(),
		Storage: StorageConfig{
			DocumentDir: getEnv("DOCUMENT_DIR", "./documents"),
		},
	}

	AppConfig = config

	log.Printf("Configuration loaded [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "lexcase"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		AccessTokenMins: accessMins,
	}
}

// loadGatewayConfig loads payment gateway config based on mode
func loadGatewayConfig(mode string) GatewayConfig {
	sandbox, _ := strconv.ParseBool(getEnv("GATEWAY_SANDBOX", "true"))
	if mode == "prod" {
		sandbox, _ = strconv.ParseBool(getEnv("GATEWAY_SANDBOX", "false"))
	}

	return GatewayConfig{
		StoreID:   getEnv("GATEWAY_STORE_ID", ""),
		StorePass: getEnv("GATEWAY_STORE_PASS", ""),
		IsSandbox: sandbox,
	}
}

// loadMailConfig loads outbound mail config
func loadMailConfig() MailConfig {
	return MailConfig{
		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		FromAddress: getEnv("MAIL_FROM", "no-reply@lexcase.local"),
		FromName:    getEnv("MAIL_FROM_NAME", "LexCase"),
		AdminInbox:  getEnv("ADMIN_INBOX", ""),
	}
}

// loadPolicyConfig loads business policy knobs
func loadPolicyConfig() PolicyConfig {
	advance, _ := strconv.ParseFloat(getEnv("ADVANCE_PERCENT", "50"), 64)
	if advance <= 0 || advance >= 100 {
		advance = 50
	}

	minHearings, _ := strconv.Atoi(getEnv("MIN_HEARINGS_TO_CLOSE", "1"))
	if minHearings < 1 {
		minHearings = 1
	}

	ceiling, _ := strconv.Atoi(getEnv("LAWYER_WORKLOAD_CEILING", "5"))
	if ceiling < 1 {
		ceiling = 5
	}

	return PolicyConfig{
		AdvancePercent:     advance,
		MinHearingsToClose: minHearings,
		WorkloadCeiling:    ceiling,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://app.lexcase.example"
	}
	return origins
}
