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
	JWTSecret     string
	JWTExpiry     time.Duration
	JWTIssuer     string
	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GitHubClientID     string `mapstructure:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `mapstructure:"GITHUB_CLIENT_SECRET"`
	// OAuthCallbackBaseURL is this server's public base URL; provider callback
	// paths are appended to it when building the per-provider redirect URL.
	OAuthCallbackBaseURL string `mapstructure:"OAUTH_CALLBACK_BASE_URL"`
	// FrontendRedirectURL is where the browser lands after an OAuth login,
	// carrying either token+provider or error as query parameters.
	FrontendRedirectURL string `mapstructure:"FRONTEND_REDIRECT_URL"`
	FrontendBaseURL     string `mapstructure:"FRONTEND_BASE_URL"`
	// ProviderTimeout bounds outbound HTTP calls to identity providers.
	ProviderTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "milestone-backend")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GITHUB_CLIENT_ID", "")
	viper.SetDefault("GITHUB_CLIENT_SECRET", "")
	viper.SetDefault("OAUTH_CALLBACK_BASE_URL", "http://localhost:8080")
	viper.SetDefault("FRONTEND_REDIRECT_URL", "http://localhost:3000/oauth2/redirect")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("PROVIDER_TIMEOUT", "5s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiry = jwtExpiry

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	providerTimeoutStr := viper.GetString("PROVIDER_TIMEOUT")
	providerTimeout, err := time.ParseDuration(providerTimeoutStr)
	if err != nil {
		providerTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for PROVIDER_TIMEOUT ('%s'). Defaulting to %s.\n", providerTimeoutStr, providerTimeout)
	}
	cfg.ProviderTimeout = providerTimeout

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GitHubClientID = viper.GetString("GITHUB_CLIENT_ID")
	cfg.GitHubClientSecret = viper.GetString("GITHUB_CLIENT_SECRET")
	cfg.OAuthCallbackBaseURL = viper.GetString("OAUTH_CALLBACK_BASE_URL")
	cfg.FrontendRedirectURL = viper.GetString("FRONTEND_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set. Google OAuth will not function.")
	}
	if cfg.GitHubClientID == "" || cfg.GitHubClientSecret == "" {
		log.Println("Warning: GITHUB_CLIENT_ID/GITHUB_CLIENT_SECRET not set. GitHub OAuth will not function.")
	}

	return cfg, nil
}
