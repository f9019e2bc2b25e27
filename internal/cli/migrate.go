package cli

import (
	"github.com/spf13/cobra"

	"kariyer_backend/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB(db)

		return app.Migrate(db)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write default settings and the first admin account",
	Long: `Write the default site settings (plans, payment info, contact, pages)
that are still missing, then create the account named by FIRST_ADMIN_EMAIL
and FIRST_ADMIN_PASSWORD if it does not exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB(db)

		return app.Seed(db, cfg)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
