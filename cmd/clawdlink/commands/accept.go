package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// accept <id-or-name>: accept a pending friend request.
func acceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <request-id-or-name>",
		Short: "Accept a pending friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := requireRelay(); err != nil {
				return err
			}
			friend, err := wire.Friends.AcceptRequest(cmd.Context(), passphrase, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("connected to %s\n", friend.Name)
			return nil
		},
	}
}
