package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// add <link>: send a friend request to the peer a link names.
func addCmd() *cobra.Command {
	var (
		fromName string
		message  string
	)
	cmd := &cobra.Command{
		Use:   "add <link>",
		Short: "Send a friend request using a peer's friend link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := requireRelay(); err != nil {
				return err
			}
			if err := wire.Friends.SendRequest(cmd.Context(), passphrase, fromName, args[0], message); err != nil {
				return err
			}
			fmt.Println("request sent")
			return nil
		},
	}
	cmd.Flags().StringVar(&fromName, "name", "", "your display name, shown to the peer")
	cmd.Flags().StringVarP(&message, "message", "m", "", "greeting included with the request")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
