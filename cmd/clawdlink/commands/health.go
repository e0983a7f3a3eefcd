package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// health: probe relay liveness.
func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check relay reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRelay(); err != nil {
				return err
			}
			status, err := wire.Relay.CheckHealth(cmd.Context())
			if err != nil {
				return fmt.Errorf("relay offline: %w", err)
			}
			fmt.Printf("relay %s: %s\n", relayURL, status)
			return nil
		},
	}
}
