package main

import (
	"log"
	"net/http"

	httphandlers "horizon/internal/interfaces/http"
	"horizon/internal/shared/config"
	"horizon/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Protected routes
	sessionMiddleware := middleware.Session(deps.Sessions, cfg.Appwrite.SessionCookieName)

	mux.Handle("GET /transaction-history", sessionMiddleware(http.HandlerFunc(deps.PageHandler.HandleTransactionHistory)))
	mux.Handle("GET /api/accounts", sessionMiddleware(http.HandlerFunc(deps.AccountHandler.HandleListAccounts)))
	mux.Handle("GET /api/accounts/{id}", sessionMiddleware(http.HandlerFunc(deps.AccountHandler.HandleAccountByID)))
	mux.Handle("GET /api/transactions", sessionMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleListTransactions)))

	// Apply global middleware
	handler := middleware.Logging(middleware.RequestID(middleware.CORS(cfg.Server.AllowedHosts)(mux)))

	// Wrap with OpenTelemetry instrumentation when telemetry is enabled
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Tracing(handler))
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
