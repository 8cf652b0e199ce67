package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nhath/pgpeek/internal/db"
	"github.com/nhath/pgpeek/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var listen, logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP+JSON API. One PostgreSQL session is shared by all callers;
POST /api/connect replaces it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFrom(cmd.Context())
			if !cmd.Flags().Changed("listen") {
				listen = cfg.Server.Listen
			}
			if !cmd.Flags().Changed("log-level") {
				logLevel = cfg.Server.LogLevel
			}

			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Config{
				Session:      db.NewSession(nil, logger),
				Addr:         listen,
				DefaultLimit: cfg.Server.DefaultLimit,
				Logger:       logger,
			})
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", ":3001", "address to listen on")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	return cmd
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}
