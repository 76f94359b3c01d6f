package main

import (
	"horizon/internal/domain/account"
	"horizon/internal/domain/transaction"
	"horizon/internal/domain/user"
	"horizon/internal/infrastructure/appwrite"
	"horizon/internal/infrastructure/plaid"
	httphandlers "horizon/internal/interfaces/http"
	"horizon/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	// Handlers
	AccountHandler     *httphandlers.AccountHandler
	TransactionHandler *httphandlers.TransactionHandler
	PageHandler        *httphandlers.PageHandler

	// Session resolution for middleware
	Sessions user.SessionStore
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) *Dependencies {
	// Document store client and typed stores
	appwriteClient := appwrite.NewClient(cfg.Appwrite.Endpoint, cfg.Appwrite.Project, cfg.Appwrite.APIKey)
	bankStore := appwrite.NewBankStore(appwriteClient, cfg.Appwrite)
	transferStore := appwrite.NewTransferStore(appwriteClient, cfg.Appwrite)
	sessionStore := appwrite.NewSessionStore(appwriteClient)

	// Financial API client and domain services
	plaidClient := plaid.NewClient(cfg.Plaid)
	syncService := transaction.NewSyncService(plaidClient, cfg.Plaid.SyncPageLimit)
	accountService := account.NewService(plaidClient, bankStore, transferStore, syncService)

	return &Dependencies{
		AccountHandler:     httphandlers.NewAccountHandler(accountService),
		TransactionHandler: httphandlers.NewTransactionHandler(accountService),
		PageHandler:        httphandlers.NewPageHandler(accountService),
		Sessions:           sessionStore,
	}
}
