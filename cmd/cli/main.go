package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sportsync/refassign/cmd/cli/commands"
	"github.com/sportsync/refassign/internal/config"
	"github.com/sportsync/refassign/pkg/clients/gmailclient"
	"github.com/sportsync/refassign/pkg/core/scheduling"
	"github.com/sportsync/refassign/pkg/core/scoring"
	"github.com/sportsync/refassign/pkg/core/suggest"
	"github.com/sportsync/refassign/pkg/postgres"
	"github.com/sportsync/refassign/pkg/utils"
	"github.com/sportsync/refassign/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "refassign",
		Short: "Referee assignment suggestions for league games",
		Long: `A CLI for generating, accepting and rejecting referee assignment
suggestions, with conflict detection and weighted suitability scoring.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Postgres != nil {
					app.Postgres.Close()
				}
				if app.Logger != nil {
					app.Logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug output on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(
		commands.SuggestCmd(appRef()),
		commands.AcceptCmd(appRef()),
		commands.RejectCmd(appRef()),
		commands.CheckCmd(appRef()),
		commands.CleanupCmd(appRef()),
		commands.MigrateCmd(appRef()),
		commands.ServeCmd(appRef()),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, allocating it up front so command
// constructors can capture it before initApp fills it in
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, database and the suggestion service
func initApp() error {
	appRef()
	app.Ctx = context.Background()

	logger, err := logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger

	logger.Info("Starting application", zap.String("environment", env))

	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Cfg = cfg
	logger.Debug("Configuration loaded successfully")

	pg, err := postgres.NewDB(app.Ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Postgres = pg
	app.Database = pg

	detector := scheduling.NewDetector(pg, cfg.SchedulingRules(), logger)
	scorer := scoring.NewScorer(pg, cfg.ScoringDefaults(), logger)

	app.Service = suggest.NewService(suggest.ServiceConfig{
		Store:      pg,
		Detector:   detector,
		Scorer:     scorer,
		Weights:    cfg.SuggestWeights(),
		Thresholds: cfg.SuggestThresholds(),
		Wages:      cfg.Wages,
		Notifier:   initNotifier(cfg, logger),
		Logger:     logger,
	})

	return nil
}

// initNotifier builds the Gmail notifier when notifications are enabled.
// Any setup failure disables notifications rather than blocking the CLI.
func initNotifier(cfg *config.Config, logger *zap.Logger) suggest.Notifier {
	if !cfg.Notifications.Enabled {
		return nil
	}

	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		logger.Warn("Notifications disabled: oauth client unavailable", zap.Error(err))
		return nil
	}

	token, err := utils.LoadCachedToken(env)
	if err != nil {
		logger.Warn("Notifications disabled: no cached oauth token", zap.Error(err))
		return nil
	}

	client, err := gmailclient.NewClient(context.Background(), oauthCfg, token, cfg.Notifications.GmailSender)
	if err != nil {
		logger.Warn("Notifications disabled: gmail client setup failed", zap.Error(err))
		return nil
	}

	logger.Info("Assignment notifications enabled")
	return client
}
