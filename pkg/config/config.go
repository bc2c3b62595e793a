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

	// Reconciliation
	PaymentPendingTimeout time.Duration

	// Rate limiting, e.g. "100-M" for 100 requests per minute per IP
	RateLimit string

	// CORS
	AllowedOrigins []string

	// M-Pesa Daraja
	MpesaBaseURL        string
	MpesaConsumerKey    string
	MpesaConsumerSecret string
	MpesaShortCode      string
	MpesaPasskey        string
	MpesaCallbackURL    string

	// PayPal
	PaypalBaseURL      string
	PaypalClientID     string
	PaypalClientSecret string
	PaypalCurrencyCode string
	PaypalReturnURL    string
	PaypalCancelURL    string
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
	viper.SetDefault("JWT_ISSUER", "noorcom-pos-backend")
	viper.SetDefault("PAYMENT_PENDING_TIMEOUT", "120s")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("MPESA_BASE_URL", "https://sandbox.safaricom.co.ke")
	viper.SetDefault("MPESA_CONSUMER_KEY", "")
	viper.SetDefault("MPESA_CONSUMER_SECRET", "")
	viper.SetDefault("MPESA_SHORT_CODE", "")
	viper.SetDefault("MPESA_PASSKEY", "")
	viper.SetDefault("MPESA_CALLBACK_URL", "")
	viper.SetDefault("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com")
	viper.SetDefault("PAYPAL_CLIENT_ID", "")
	viper.SetDefault("PAYPAL_CLIENT_SECRET", "")
	viper.SetDefault("PAYPAL_CURRENCY_CODE", "USD")
	viper.SetDefault("PAYPAL_RETURN_URL", "")
	viper.SetDefault("PAYPAL_CANCEL_URL", "")

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
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	pendingTimeoutStr := viper.GetString("PAYMENT_PENDING_TIMEOUT")
	pendingTimeout, err := time.ParseDuration(pendingTimeoutStr)
	if err != nil || pendingTimeout <= 0 {
		pendingTimeout = 120 * time.Second
		log.Printf("Warning: Invalid value for PAYMENT_PENDING_TIMEOUT ('%s'). Defaulting to %s.\n", pendingTimeoutStr, pendingTimeout)
	}
	cfg.PaymentPendingTimeout = pendingTimeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AllowedOrigins = viper.GetStringSlice("ALLOWED_ORIGINS")

	cfg.MpesaBaseURL = viper.GetString("MPESA_BASE_URL")
	cfg.MpesaConsumerKey = viper.GetString("MPESA_CONSUMER_KEY")
	cfg.MpesaConsumerSecret = viper.GetString("MPESA_CONSUMER_SECRET")
	cfg.MpesaShortCode = viper.GetString("MPESA_SHORT_CODE")
	cfg.MpesaPasskey = viper.GetString("MPESA_PASSKEY")
	cfg.MpesaCallbackURL = viper.GetString("MPESA_CALLBACK_URL")
	if cfg.MpesaConsumerKey == "" {
		log.Println("Warning: MPESA_CONSUMER_KEY not set. M-Pesa payments will not function.")
	}

	cfg.PaypalBaseURL = viper.GetString("PAYPAL_BASE_URL")
	cfg.PaypalClientID = viper.GetString("PAYPAL_CLIENT_ID")
	cfg.PaypalClientSecret = viper.GetString("PAYPAL_CLIENT_SECRET")
	cfg.PaypalCurrencyCode = viper.GetString("PAYPAL_CURRENCY_CODE")
	cfg.PaypalReturnURL = viper.GetString("PAYPAL_RETURN_URL")
	cfg.PaypalCancelURL = viper.GetString("PAYPAL_CANCEL_URL")
	if cfg.PaypalClientID == "" {
		log.Println("Warning: PAYPAL_CLIENT_ID not set. PayPal payments will not function.")
	}

	return cfg, nil
}
