package main

import (
	"database/sql"
	"fmt"
	"net"
	"os"

	"github.com/de-tools/text-atlas/pkg/server"
	"github.com/de-tools/text-atlas/pkg/services/analysis"
	"github.com/de-tools/text-atlas/pkg/services/config"
	"github.com/de-tools/text-atlas/pkg/services/source"
	"github.com/de-tools/text-atlas/pkg/store/duckdb"
	"github.com/de-tools/text-atlas/pkg/store/duckdb/reports"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath        string
	profileFile    string
	profile        string
	disableHistory bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Text Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a text-atlas config file")
	rootCmd.Flags().StringVar(&profileFile, "profile-file", "", "Path to the S3 profile ini file")
	rootCmd.Flags().StringVar(&profile, "profile", "", "S3 profile to use from the profile file")
	rootCmd.Flags().BoolVar(&disableHistory, "no-history", false, "Do not store produced reports")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if profileFile != "" {
		cfg.S3.ProfileFile = profileFile
	}
	if profile != "" {
		cfg.S3.Profile = profile
	}

	settings, err := config.LoadS3Settings(ctx, cfg.S3)
	if err != nil {
		return err
	}

	// Only remote documents: local paths would expose the server's file system.
	sources := source.NewRegistry()
	if err := sources.Register(source.SchemeS3, source.NewS3SourceFromSettings(settings)); err != nil {
		return fmt.Errorf("failed to register s3 source: %w", err)
	}

	var history reports.Store
	if !disableHistory {
		var db *sql.DB
		db, err = duckdb.NewDB(duckdb.Settings{
			DbPath: cfg.Storage.DbPath,
		})
		if err != nil {
			return fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		defer db.Close()

		history, err = reports.NewStore(db)
		if err != nil {
			return fmt.Errorf("failed to create report store: %w", err)
		}
		logger.Info().Msgf("Report history stored at `%s`", cfg.Storage.DbPath)
	}

	host, port := cfg.Server.Host, cfg.Server.Port
	if v := os.Getenv("SERVER_HOST"); v != "" {
		host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port = v
	}
	if host == "" || port == "" {
		return fmt.Errorf("missing server host or port configuration")
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Analysis: analysis.NewService(sources, history),
			Logger:   logger,
		},
	})

	zerolog.Ctx(ctx).Info().Strs("schemes", sources.ListSchemes()).Msg("input sources registered")

	return api.Start()
}
