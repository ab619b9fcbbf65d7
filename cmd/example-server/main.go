package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bakito/example-gen/internal/config"
	"github.com/bakito/example-gen/internal/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "example-server",
		Short:        "Serve example bodies synthesized from OpenAPI documents",
		SilenceUsage: true,
		RunE:         run,
	}
	config.AddFlags(rootCmd.Flags())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	v, err := config.New(cmd.Flags())
	if err != nil {
		return err
	}
	cfg := config.Load(v)
	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	e := server.New(cfg)
	l := slog.With("listen", cfg.Listen, "auth-providers", cfg.AllowedAuthProviders)

	errCh := make(chan error, 1)
	go func() {
		l.InfoContext(cmd.Context(), "Starting example server")
		errCh <- e.Start(cfg.Listen)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-cmd.Context().Done():
	}

	l.InfoContext(cmd.Context(), "Shutting down example server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}
