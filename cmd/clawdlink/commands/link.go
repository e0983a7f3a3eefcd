package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// link <name>: print the friend link to share out of band.
func linkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <name>",
		Short: "Print your friend link for sharing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			raw, err := wire.IDs.Link(passphrase, args[0])
			if err != nil {
				return err
			}
			fmt.Println(raw)
			return nil
		},
	}
}
