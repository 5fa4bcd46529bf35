package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/aepx/internal/ui"
	"github.com/tsawler/aepx/internal/webapi"
)

var (
	serveAddr string
	serveRate float64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scan HTTP API",
	Long: `Start an HTTP server exposing the scanner:

  GET  /health
  POST /api/scan  {"path": "/path/to/project.aepx"}
  POST /api/diff  {"previous": "...", "current": "..."}`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runServe(serveAddr, serveRate))
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8787", "listen address")
	serveCmd.Flags().Float64Var(&serveRate, "rate", 0, "max requests per second (0 disables limiting)")
}

func runServe(addr string, ratePerSecond float64) int {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	srv := webapi.New(logger, webapi.Config{RatePerSecond: ratePerSecond})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("starting aepxscan api", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return 1
	}
	return 0
}
