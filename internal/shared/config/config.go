package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Plaid     PlaidConfig
	Appwrite  AppwriteConfig
	TLS       TLSConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	AllowedHosts []string
}

// PlaidConfig carries the credential pair and endpoint settings for the
// financial data API. All requests are JSON POSTs against BaseURL.
type PlaidConfig struct {
	BaseURL       string
	ClientID      string
	Secret        string
	Timeout       time.Duration
	SyncPageLimit int
}

// AppwriteConfig identifies the document store project and the collections
// holding bank links and transfer transactions.
type AppwriteConfig struct {
	Endpoint             string
	Project              string
	APIKey               string
	DatabaseID           string
	BankCollectionID     string
	TransferCollectionID string
	SessionCookieName    string
}

type TLSConfig struct {
	Enabled      bool
	CertPath     string
	KeyPath      string
	RedirectHTTP bool
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
	MetricsPort  string
}

func Load() (*Config, error) {

	plaidClientID := getEnv("PLAID_CLIENT_ID", "")
	if plaidClientID == "" {
		return nil, fmt.Errorf("PLAID_CLIENT_ID is required")
	}
	plaidSecret := getEnv("PLAID_SECRET", "")
	if plaidSecret == "" {
		return nil, fmt.Errorf("PLAID_SECRET is required")
	}

	plaidTimeout, err := time.ParseDuration(getEnv("PLAID_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PLAID_TIMEOUT: %w", err)
	}
	syncPageLimit, err := strconv.Atoi(getEnv("PLAID_SYNC_PAGE_LIMIT", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid PLAID_SYNC_PAGE_LIMIT: %w", err)
	}
	if syncPageLimit < 1 {
		return nil, fmt.Errorf("PLAID_SYNC_PAGE_LIMIT must be at least 1")
	}

	appwriteProject := getEnv("APPWRITE_PROJECT", "")
	if appwriteProject == "" {
		return nil, fmt.Errorf("APPWRITE_PROJECT is required")
	}
	appwriteKey := getEnv("APPWRITE_KEY", "")
	if appwriteKey == "" {
		return nil, fmt.Errorf("APPWRITE_KEY is required")
	}

	// Parse TLS configuration
	tlsEnabled := getBoolEnv("TLS_ENABLED", false)
	tlsCertPath := getEnv("TLS_CERT_PATH", "")
	tlsKeyPath := getEnv("TLS_KEY_PATH", "")
	tlsRedirectHTTP := getBoolEnv("TLS_REDIRECT_HTTP", false)

	// Parse allowed hosts (comma-separated list)
	allowedHostsStr := getEnv("ALLOWED_HOSTS", "")
	var allowedHosts []string
	if allowedHostsStr != "" {
		for _, host := range strings.Split(allowedHostsStr, ",") {
			host = strings.TrimSpace(host)
			if host != "" {
				allowedHosts = append(allowedHosts, host)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Host:         getEnv("HOST", "0.0.0.0"),
			AllowedHosts: allowedHosts,
		},
		Plaid: PlaidConfig{
			BaseURL:       getEnv("PLAID_BASE_URL", "https://sandbox.plaid.com"),
			ClientID:      plaidClientID,
			Secret:        plaidSecret,
			Timeout:       plaidTimeout,
			SyncPageLimit: syncPageLimit,
		},
		Appwrite: AppwriteConfig{
			Endpoint:             getEnv("APPWRITE_ENDPOINT", "https://cloud.appwrite.io/v1"),
			Project:              appwriteProject,
			APIKey:               appwriteKey,
			DatabaseID:           getEnv("APPWRITE_DATABASE_ID", ""),
			BankCollectionID:     getEnv("APPWRITE_BANK_COLLECTION_ID", ""),
			TransferCollectionID: getEnv("APPWRITE_TRANSFER_COLLECTION_ID", ""),
			SessionCookieName:    getEnv("APPWRITE_SESSION_COOKIE", "appwrite-session"),
		},
		TLS: TLSConfig{
			Enabled:      tlsEnabled,
			CertPath:     tlsCertPath,
			KeyPath:      tlsKeyPath,
			RedirectHTTP: tlsRedirectHTTP,
		},
		Telemetry: TelemetryConfig{
			Enabled:      getBoolEnv("TELEMETRY_ENABLED", false),
			ServiceName:  getEnv("TELEMETRY_SERVICE_NAME", "horizon-api"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			MetricsPort:  getEnv("METRICS_PORT", "9090"),
		},
	}

	if cfg.TLS.Enabled {
		if cfg.TLS.CertPath == "" || cfg.TLS.KeyPath == "" {
			return nil, fmt.Errorf("TLS_CERT_PATH and TLS_KEY_PATH are required when TLS_ENABLED=true")
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
