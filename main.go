// @title Nomination Board API
// @version 1.0
// @description Nominate colleagues, vote on nominations and keep a ranked point ledger

// @securityDefinitions.apikey AdminToken
// @in header
// @name Authorization
// @description Session token from /api/admin/login, sent as "Bearer <token>" or as the bare token
package main

import (
	"context"
	"os"
	"strings"
	"time"

	_ "github.com/alex-pricope/nomination-board/docs"

	"github.com/alex-pricope/nomination-board/api"
	"github.com/alex-pricope/nomination-board/logging"
	"github.com/alex-pricope/nomination-board/reconcile"
	"github.com/alex-pricope/nomination-board/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	root := &cobra.Command{
		Use:   "nomination-board",
		Short: "Nomination and voting board with a ranked point ledger",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadSettings()
		},
		Run: func(cmd *cobra.Command, args []string) {
			serve()
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API, locally or inside a lambda",
			Run: func(cmd *cobra.Command, args []string) {
				serve()
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Install the default persons and admin on an empty backend",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBackend(cmd.Context(), func(ctx context.Context, conf *api.Config, b *storage.Backend) error {
					return api.SeedBackend(ctx, b, conf)
				})
			},
		},
		&cobra.Command{
			Use:   "reconcile",
			Short: "Recompute stored points from the ledger once",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBackend(cmd.Context(), func(ctx context.Context, _ *api.Config, b *storage.Backend) error {
					drifts, err := reconcile.NewReconciler(b).Run(ctx)
					if err != nil {
						return err
					}
					logging.Log.Infof("Reconciliation repaired %d persons", len(drifts))
					return nil
				})
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSettings() error {
	// .env is optional
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logging.Log.Errorf("Failed to read config file: %v", err)
			return err
		}
		logging.Log.Warn("No config file found, using environment only")
	}

	logging.BootstrapLogger(viper.GetString("log.level"))
	return nil
}

func serve() {
	// Read config
	config := api.ReadConfig()

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}

// withBackend opens the configured backend for a one-shot command and closes it after.
func withBackend(ctx context.Context, run func(ctx context.Context, conf *api.Config, b *storage.Backend) error) error {
	conf := api.ReadConfig()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	b, err := api.OpenBackend(ctx, conf.StorageConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			logging.Log.Errorf("failed to close storage: %v", err)
		}
	}()
	return run(ctx, conf, b)
}
