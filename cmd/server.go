package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/outing-planner/internal/auth"
	"github.com/example/outing-planner/internal/calendar"
	"github.com/example/outing-planner/internal/config"
	"github.com/example/outing-planner/internal/crypto"
	"github.com/example/outing-planner/internal/db"
	"github.com/example/outing-planner/internal/invite"
	"github.com/example/outing-planner/internal/migrate"
	"github.com/example/outing-planner/internal/planner"
	"github.com/example/outing-planner/internal/profile"
	"github.com/example/outing-planner/internal/web"
	"github.com/example/outing-planner/internal/yelp"
	"github.com/spf13/cobra"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Ping(ctx); err != nil {
				return fmt.Errorf("db ping: %w", err)
			}

			if migrateUp {
				if err := migrate.Up(ctx, d); err != nil {
					return err
				}
			}

			aead, err := crypto.New(cfg.CredEncKey)
			if err != nil {
				return err
			}

			var cal calendar.Provider = calendar.Static(nil)
			if cfg.BusyFile != "" {
				cal = calendar.FileProvider{Path: cfg.BusyFile}
			}

			ws := &web.Server{
				Auth:     auth.NewStore(d, cfg.CookieHashKey, cfg.CookieBlockKey),
				Profiles: profile.NewRepo(d, aead),
				Invites:  invite.NewRepo(d),
				Calendar: cal,
				Catalog: func(apiKey string) planner.Catalog {
					return yelp.New(apiKey, cfg.VenueCacheTTL, logger)
				},
				Defaults: cfg,
				Logger:   logger,
			}
			return web.Start(ctx, cfg.ListenAddr, ws.Routes())
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	return cmd
}
