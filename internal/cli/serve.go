package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mark-chris/tmgen/internal/mcp"
)

var (
	serveMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server for AI agent integration",
	Long: `Start a Model Context Protocol (MCP) server on stdio.

The server exposes the generate_threats and get_rule tools to Claude Code,
Cursor, and other MCP-compatible AI coding assistants. Logs go to stderr.

Examples:
  # Start server
  tmgen serve

  # Also expose Prometheus metrics
  tmgen serve --metrics-addr :9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", "",
		"Address for the Prometheus /metrics endpoint (default from config; empty disables)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := serveMetricsAddr
	if addr == "" {
		addr = cfg.MetricsAddr
	}
	if addr != "" {
		metricsSrv := startMetricsServer(addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsSrv.Shutdown(shutdownCtx)
		}()
	}

	mode, err := modeOrDefault("")
	if err != nil {
		return err
	}

	srv := mcp.NewServer(generator, Version,
		mcp.WithLogger(logger),
		mcp.WithDefaults(cfg.Methodology, mode),
		mcp.WithTokenCounter(agentTokenCounter(logger)),
	)

	logger.Info("loaded rule catalogs",
		zap.Int("per_element", catalogs.PerElement.Count()),
		zap.Int("context", catalogs.Context.Count()),
	)

	return srv.Serve(ctx, os.Stdin, os.Stdout)
}

// startMetricsServer serves the recorder's metrics in the background
func startMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	return srv
}
