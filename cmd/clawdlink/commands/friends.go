package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"clawdlink/internal/crypto"
)

// friends: list connected friends with key fingerprints.
func friendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "friends",
		Short: "List connected friends",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := wire.Friends.Friends()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Println("no friends yet")
				return nil
			}
			for _, f := range list {
				fmt.Printf("%s  %s  %s\n", f.Name, crypto.Fingerprint(f.SigningKey.Slice()), f.Status)
			}
			return nil
		},
	}
}
