package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var subscriptionsCmd = &cobra.Command{
	Use:   "subscriptions",
	Short: "Manage subscriptions",
}

var subscriptionsExpireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Expire active subscriptions past their end date",
	Long: `Move ACTIVE subscriptions whose expiry has passed to EXPIRED and notify
their owners. The serve command does the same on every worker tick.`,
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
		n, err := svc.SubscriptionService.ExpireDue(db, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "expired %d subscriptions\n", n)
		return nil
	},
}

func init() {
	subscriptionsCmd.AddCommand(subscriptionsExpireCmd)
	rootCmd.AddCommand(subscriptionsCmd)
}
