package cli

import (
	"context"

	"github.com/spf13/cobra"

	"kariyer_backend/internal/app"
	"kariyer_backend/internal/config"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/services"
	"kariyer_backend/internal/whatsapp"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and background workers",
	Long: `Start the HTTP API, the chat websocket hub, the subscription expiry
and job listing workers, and the WhatsApp session when enabled.

Examples:
  kariyer serve                    # Migrate, seed and serve
  kariyer serve --migrate=false    # Serve against an already migrated database`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Run migrations and seed defaults before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer closeDB(db)

	if autoMigrate {
		if err := app.Migrate(db); err != nil {
			return err
		}
		if err := app.Seed(db, cfg); err != nil {
			return err
		}
	}

	gateway := startWhatsApp(ctx, cfg)
	return app.Run(ctx, cfg, db, gateway)
}

// startWhatsApp returns the disabled gateway when the integration is off or cannot start.
func startWhatsApp(ctx context.Context, cfg *config.Config) services.WhatsAppGateway {
	if !cfg.WhatsApp.Enabled {
		logger.Info("WhatsApp integration disabled")
		return services.DisabledWhatsApp{}
	}

	client, err := whatsapp.Init(ctx, cfg.WhatsApp.StorePath, cfg.WhatsApp.ReconnectDelay)
	if err != nil {
		logger.Error("WhatsApp init failed, continuing without it", "error", err)
		return services.DisabledWhatsApp{}
	}
	if err := client.Start(ctx); err != nil {
		// The reconnect loop keeps trying; the admin panel shows the state.
		logger.Warn("WhatsApp connect failed", "error", err)
	}
	go func() {
		<-ctx.Done()
		client.Close()
	}()
	return client
}
