// Package cli wires the services into the terminal commands. Every
// command builds its dependencies lazily from environment config so a
// bare `help` run touches nothing.
package cli

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"backoffice-client/internal/apiclient"
	"backoffice-client/internal/config"
	authsvc "backoffice-client/internal/service/auth"
	billingsvc "backoffice-client/internal/service/billing"
	clientssvc "backoffice-client/internal/service/clients"
	creditssvc "backoffice-client/internal/service/credits"
	credittypessvc "backoffice-client/internal/service/credittypes"
	empresasvc "backoffice-client/internal/service/empresa"
	reportsvc "backoffice-client/internal/service/report"
	userssvc "backoffice-client/internal/service/users"
	"backoffice-client/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Terminal client for the multi-tenant back-office",
	Long: `backoffice is the terminal client for the financial back-office
platform: session management, company scoping, clients, credit types,
credits, billing, users and spreadsheet exports.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles the wired services a command run needs.
type app struct {
	cfg     config.AppConfig
	logger  *zap.Logger
	store   store.Store
	api     *apiclient.Client
	auth    *authsvc.Service
	clients *clientssvc.Service
	types   *credittypessvc.Service
	credits *creditssvc.Service
	empresa *empresasvc.Service
	billing *billingsvc.Service
	users   *userssvc.Service
	report  *reportsvc.Service
}

func newApp() (*app, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[cli] no .env file found, relying on system env vars")
	}
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	st, err := store.New(store.Config{
		Driver:    cfg.StoreDriver,
		Path:      cfg.StorePath,
		RedisAddr: cfg.RedisAddr,
		RedisPass: cfg.RedisPass,
		RedisDB:   cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	api := apiclient.New(cfg.APIBaseURL, authsvc.TokenSource(st), logger)
	auth := authsvc.NewService(api, st, logger, authsvc.Options{DemoMode: cfg.DemoMode})

	clients := clientssvc.NewService(api, st, auth, logger)
	types := credittypessvc.NewService(api, st, auth, logger)
	credits := creditssvc.NewService(api, st, auth, clients, types, logger, cfg.DemoMode)
	empresas := empresasvc.NewService(api, logger)
	billing := billingsvc.NewService(api, st, auth, logger)
	users := userssvc.NewService(api, st, logger)
	report := reportsvc.NewService(billing, credits, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		api:     api,
		auth:    auth,
		clients: clients,
		types:   types,
		credits: credits,
		empresa: empresas,
		billing: billing,
		users:   users,
		report:  report,
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
