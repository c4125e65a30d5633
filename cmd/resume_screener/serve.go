package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/server"
	"github.com/jonathan/resume-screener/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the screening pipeline: POST /screen (document upload), POST /screen-text (pre-extracted text), GET /health, and screening history endpoints when a database is configured.`,
	RunE:  runServe,
}

var (
	serveConfigPath string
	servePort       string
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (defaults to PORT env var, then 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	gw, err := cfg.BuildGateway(ctx)
	if err != nil {
		return err
	}

	var st *store.Store
	if cfg.DatabaseURL != "" {
		st, err = store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to screening store: %w", err)
		}
		if err := st.Migrate(ctx); err != nil {
			return err
		}
	} else {
		log.Println("No DATABASE_URL configured; screening history disabled")
	}

	srv := server.New(server.Config{
		Port:       cfg.Port,
		AuthSecret: cfg.AuthSecret,
		Policy:     cfg.MatchingPolicy(),
	}, gw, st)

	return srv.Start()
}
