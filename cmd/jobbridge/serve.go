package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minjae/jobbridge/internal/config"
	"github.com/minjae/jobbridge/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveOrigin     string
	serveLayout     string
	serveSchema     string
	serveUseBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for job postings, display placement, onboarding wizards, and posting ingest.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to a JSON config file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveOrigin, "allowed-origin", "", "CORS origin to allow (default: any)")
	serveCmd.Flags().StringVar(&serveLayout, "layout", "", "Path to a grid layout override file")
	serveCmd.Flags().StringVar(&serveSchema, "schema", "", "Path to the submission JSON Schema")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Render JavaScript-heavy posting pages in a headless browser")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Flags win over the config file, which wins over built-in defaults
	flags := config.Config{
		Port:          servePort,
		AllowedOrigin: serveOrigin,
		LayoutPath:    serveLayout,
		SchemaPath:    serveSchema,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		UseBrowser:    serveUseBrowser,
	}

	if serveConfigPath != "" {
		fileCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		flags = flags.MergeWithDefaults(*fileCfg)
		flags.UseBrowser = flags.UseBrowser || fileCfg.UseBrowser
	}
	cfg := flags.MergeWithDefaults(config.Config{Port: 8080})

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		DatabaseURL:   cfg.DatabaseURL,
		AllowedOrigin: cfg.AllowedOrigin,
		LayoutPath:    cfg.LayoutPath,
		SchemaPath:    cfg.SchemaPath,
		UseBrowser:    cfg.UseBrowser,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
