package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// requests: list pending friend requests in both directions.
func requestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List pending friend requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := wire.Friends.IncomingRequests()
			if err != nil {
				return err
			}
			out, err := wire.Friends.OutgoingRequests()
			if err != nil {
				return err
			}

			if len(in) == 0 && len(out) == 0 {
				fmt.Println("no pending requests")
				return nil
			}
			for _, r := range in {
				fmt.Printf("incoming  %s  %s  %q\n", r.ID, r.Name, r.Message)
			}
			for _, r := range out {
				fmt.Printf("outgoing  %s  (awaiting acceptance)\n", r.Name)
			}
			return nil
		},
	}
}
