package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kariyer_backend/internal/app"
	"kariyer_backend/internal/config"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/services"
)

var generateCount int

// systemActor is recorded in the admin log for changes made from the command line.
var systemActor = dto.Actor{UserID: "system", Role: models.UserRoleAdmin, IP: "cli"}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage job listings",
}

var jobsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate today's job feed",
	Long: `Generate today's public and private sector listings and upsert them
by external id. Running it twice on the same day updates instead of duplicating.

Examples:
  kariyer jobs generate              # 50 listings
  kariyer jobs generate --count 200`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB(db)

		svc, err := buildServices(cmd, cfg)
		if err != nil {
			return err
		}
		result, err := svc.JobService.Generate(db, systemActor, generateCount)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "generated %d listings, %d upserted\n", result.Generated, result.Upserted)
		return nil
	},
}

var jobsExpireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Deactivate listings past their deadline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB(db)

		svc, err := buildServices(cmd, cfg)
		if err != nil {
			return err
		}
		n, err := svc.JobService.DeactivateExpired(db, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deactivated %d listings\n", n)
		return nil
	},
}

func init() {
	jobsGenerateCmd.Flags().IntVar(&generateCount, "count", 50, "Number of listings to generate")
	jobsCmd.AddCommand(jobsGenerateCmd)
	jobsCmd.AddCommand(jobsExpireCmd)
	rootCmd.AddCommand(jobsCmd)
}

// buildServices wires the services without the HTTP layer, WhatsApp or the chat hub.
func buildServices(cmd *cobra.Command, cfg *config.Config) (*services.ServiceContainer, error) {
	infra, err := app.NewInfrastructure(cmd.Context(), cfg, nil, nil)
	if err != nil {
		return nil, err
	}
	return app.InitializeServices(cfg, infra), nil
}
