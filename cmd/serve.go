package cmd

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Ailurophile47/invoice-qc/internal/config"
	"github.com/Ailurophile47/invoice-qc/internal/logger"
	"github.com/Ailurophile47/invoice-qc/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the invoice QC HTTP API",
	Long: `Start the HTTP server exposing the extraction and validation
pipeline as a small API.

Endpoints:
  GET  /health                      liveness probe
  POST /validate-json               validate a JSON array of invoices
  POST /extract-and-validate-pdfs   multipart PDF upload, extract and validate

The server shuts down gracefully on SIGINT/SIGTERM.`,
	Example: `  # Listen on the configured address (SERVER_ADDR, default :8080)
  invoice-qc serve

  # Listen on a specific address
  invoice-qc serve --addr 127.0.0.1:9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default: SERVER_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	addr, _ := cmd.Flags().GetString("addr")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.ServerAddr
	}

	if strings.ToLower(cfg.LogLevel) != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := newRunContext(0, log)
	defer cancel()

	extractor, err := newExtractionService(ctx, cfg, cfg.ExtractWorkers, log)
	if err != nil {
		return err
	}

	srv := server.New(addr, extractor)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}
