package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"clawdlink/internal/domain"
)

// send <peer> <message>: encrypt and send a message to a friend.
func sendCmd() *cobra.Command {
	var (
		urgent     bool
		msgContext string
	)
	cmd := &cobra.Command{
		Use:   "send <peer> <message>",
		Short: "Encrypt and send a message to a friend",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := requireRelay(); err != nil {
				return err
			}
			urgency := domain.UrgencyNormal
			if urgent {
				urgency = domain.UrgencyUrgent
			}
			if err := wire.Friends.SendMessage(cmd.Context(), passphrase, args[0], args[1], urgency, msgContext); err != nil {
				return err
			}
			fmt.Println("sent")
			return nil
		},
	}
	cmd.Flags().BoolVar(&urgent, "urgent", false, "mark the message urgent")
	cmd.Flags().StringVar(&msgContext, "context", "", "context tag (e.g. work, family)")
	return cmd
}
