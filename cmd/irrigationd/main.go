// Command irrigationd runs the smart-irrigation backend: the REST API, the
// watering scheduler and a few maintenance commands.
//
//	irrigationd serve                  HTTP API + scheduler loop
//	irrigationd tick                   run one scheduler tick (external cron)
//	irrigationd migrate                create or update the schema
//	irrigationd seed --file seed.yaml  load plants and accounts
//	irrigationd token --user ID        mint a bearer token
//
// Configuration comes from the environment; a .env file in the working
// directory is loaded first when present.
package main

//go:generate swag init -g cmd/irrigationd/main.go -d ../../ -o ../../docs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-irrigation-backend/internal/actuator"
	"github.com/tbourn/go-irrigation-backend/internal/config"
	"github.com/tbourn/go-irrigation-backend/internal/repo"
	"github.com/tbourn/go-irrigation-backend/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	envFile string
	cfg     config.Config

	rootCmd = &cobra.Command{
		Use:           "irrigationd",
		Short:         "Smart irrigation backend",
		Long:          "REST API and scheduler for plants, watering sessions and watering history.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			sysutil.SetupLogging(os.Stderr, cfg.LogLevel, cfg.LogPretty)
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "irrigationd", appVersion())
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.AddCommand(serveCmd, tickCmd, migrateCmd, seedCmd, tokenCmd, versionCmd)
}

// @title                      Irrigation API
// @version                    1.0
// @description                Plants, watering sessions, manual triggers and watering history.
// @BasePath                   /api
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("irrigationd failed")
		os.Exit(1)
	}
}

func appVersion() string {
	return sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)
}

// openDB connects to the configured database and migrates the schema.
func openDB() (*gorm.DB, error) {
	db, err := repo.Open(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func newGateway() (*actuator.HTTPClient, error) {
	a := cfg.Actuator
	return actuator.NewHTTPClient(a.BaseURL,
		actuator.WithTimeout(a.Timeout),
		actuator.WithToken(a.Token),
		actuator.WithPaths(a.StartPath, a.StopPath, a.SensorsPath),
	)
}
