package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tcallaghan/recall-roster/cmd/cli/commands"
	"github.com/tcallaghan/recall-roster/internal/config"
	"github.com/tcallaghan/recall-roster/pkg/clients/gmailclient"
	"github.com/tcallaghan/recall-roster/pkg/core/services"
	"github.com/tcallaghan/recall-roster/pkg/postgres"
	"github.com/tcallaghan/recall-roster/pkg/utils"
	"github.com/tcallaghan/recall-roster/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
	db  *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Recall Roster CLI - Manage fire station recall shifts",
		Long:  `A CLI tool for managing recall shifts, availability bids, and fairness-ranked shift awards.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if db != nil {
				db.Close()
			}
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.CreateRecallCmd(appContext()))
	rootCmd.AddCommand(commands.AddStaffCmd(appContext()))
	rootCmd.AddCommand(commands.RankCmd(appContext()))
	rootCmd.AddCommand(commands.AwardCmd(appContext()))
	rootCmd.AddCommand(commands.BidCmd(appContext()))
	rootCmd.AddCommand(commands.RecalcCmd(appContext()))
	rootCmd.AddCommand(commands.ReportCmd(appContext()))
	rootCmd.AddCommand(commands.ArchiveCmd(appContext()))
	rootCmd.AddCommand(commands.MaintenanceCmd(appContext()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appContext returns the shared dependency container. The container is
// allocated up front so command constructors can capture it; initApp
// fills it in before any command runs.
func appContext() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, database, and the optional notifier
func initApp() error {
	ctx := context.Background()

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err = postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	a := appContext()
	a.Cfg = cfg
	a.Database = db
	a.Logger = logger
	a.Ctx = ctx

	// The notifier is optional; without a gmail account awards are
	// recorded but nobody is emailed
	if cfg.GmailUserID != "" {
		notifier, err := buildNotifier(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create gmail client: %w", err)
		}
		a.Notifier = notifier
	}

	return nil
}

func buildNotifier(ctx context.Context, cfg *config.Config) (services.Notifier, error) {
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load oauth client config: %w", err)
	}

	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, err
	}

	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, env)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain oauth token: %w", err)
	}

	return gmailclient.NewClient(ctx, oauthCfg, token, cfg.GmailSender)
}
