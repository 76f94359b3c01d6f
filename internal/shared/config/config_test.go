package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("PLAID_CLIENT_ID", "test-client-id")
	t.Setenv("PLAID_SECRET", "test-secret")
	t.Setenv("APPWRITE_PROJECT", "test-project")
	t.Setenv("APPWRITE_KEY", "test-api-key")
}

func TestLoad_Success(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Plaid.ClientID != "test-client-id" {
		t.Errorf("Plaid.ClientID = %q, want %q", cfg.Plaid.ClientID, "test-client-id")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Plaid.BaseURL != "https://sandbox.plaid.com" {
		t.Errorf("Plaid.BaseURL = %q, want default sandbox URL", cfg.Plaid.BaseURL)
	}
	if cfg.Plaid.SyncPageLimit != 50 {
		t.Errorf("Plaid.SyncPageLimit = %d, want 50", cfg.Plaid.SyncPageLimit)
	}
	if cfg.Plaid.Timeout != 30*time.Second {
		t.Errorf("Plaid.Timeout = %v, want 30s", cfg.Plaid.Timeout)
	}
}

func TestLoad_MissingPlaidClientID(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("PLAID_CLIENT_ID", "")
	os.Unsetenv("PLAID_CLIENT_ID")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for missing PLAID_CLIENT_ID, got nil")
	}
}

func TestLoad_MissingAppwriteKey(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("APPWRITE_KEY", "")
	os.Unsetenv("APPWRITE_KEY")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for missing APPWRITE_KEY, got nil")
	}
}

func TestLoad_InvalidSyncPageLimit(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("PLAID_SYNC_PAGE_LIMIT", "zero")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for non-numeric PLAID_SYNC_PAGE_LIMIT, got nil")
	}
}

func TestLoad_SyncPageLimitBelowOne(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("PLAID_SYNC_PAGE_LIMIT", "0")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for PLAID_SYNC_PAGE_LIMIT=0, got nil")
	}
}

func TestLoad_TLSRequiresCertAndKey(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("TLS_ENABLED", "true")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error when TLS enabled without cert/key paths, got nil")
	}
}

func TestLoad_AllowedHosts(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("ALLOWED_HOSTS", "example.com, api.example.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := []string{"example.com", "api.example.com"}
	if len(cfg.Server.AllowedHosts) != len(want) {
		t.Fatalf("AllowedHosts = %v, want %v", cfg.Server.AllowedHosts, want)
	}
	for i := range want {
		if cfg.Server.AllowedHosts[i] != want[i] {
			t.Errorf("AllowedHosts[%d] = %q, want %q", i, cfg.Server.AllowedHosts[i], want[i])
		}
	}
}
