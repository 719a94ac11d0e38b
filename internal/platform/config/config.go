package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Facility parameters
	TotalBedCapacity   int
	TaxFallbackPercent float64

	// Monthly close schedule (cron expression)
	SnapshotCron string

	// Optional report cache
	RedisURL string

	// Optional SMTP notifications for batch readjustment runs
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SenderEmail      string
	SummaryRecipient string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "care-finance-app")
	viper.SetDefault("TOTAL_BED_CAPACITY", 50)
	viper.SetDefault("TAX_FALLBACK_PERCENT", 6.0)
	viper.SetDefault("SNAPSHOT_CRON", "0 3 1 * *")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SENDER_EMAIL", "")
	viper.SetDefault("SUMMARY_RECIPIENT", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRY_DURATION (%q). Defaulting to 1h.\n", jwtExpiryStr)
		jwtExpiry = time.Hour
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.TotalBedCapacity = viper.GetInt("TOTAL_BED_CAPACITY")
	if cfg.TotalBedCapacity < 0 {
		log.Printf("Warning: Negative TOTAL_BED_CAPACITY (%d). Defaulting to 0.\n", cfg.TotalBedCapacity)
		cfg.TotalBedCapacity = 0
	}
	cfg.TaxFallbackPercent = viper.GetFloat64("TAX_FALLBACK_PERCENT")

	cfg.SnapshotCron = viper.GetString("SNAPSHOT_CRON")
	cfg.RedisURL = viper.GetString("REDIS_URL")

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetString("SMTP_PORT")
	cfg.SMTPUsername = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.SenderEmail = viper.GetString("SENDER_EMAIL")
	cfg.SummaryRecipient = viper.GetString("SUMMARY_RECIPIENT")

	return cfg, nil
}
