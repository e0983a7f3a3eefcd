package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// recv: poll the relay once and route everything through delivery preferences.
func recvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recv",
		Short: "Poll the relay and deliver messages per your preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := requireRelay(); err != nil {
				return err
			}

			inbox, err := wire.Friends.ProcessIncoming(cmd.Context(), passphrase)

			for _, r := range inbox.Requests {
				fmt.Printf("friend request from %s (%s): %q\n", r.Name, r.ID, r.Message)
			}
			for _, f := range inbox.Accepted {
				fmt.Printf("%s accepted your request\n", f.Name)
			}

			now := time.Now()
			for _, m := range inbox.Messages {
				d, evalErr := wire.Engine.Evaluate(m, now)
				if evalErr != nil {
					return evalErr
				}
				if d.Deliver {
					fmt.Printf("[%s] %s\n", m.SenderName, m.Content.Body)
				} else {
					fmt.Printf("held from %s (%s)\n", m.SenderName, d.Reason)
				}
			}

			released, drainErr := wire.Engine.Drain(now)
			if drainErr != nil {
				return drainErr
			}
			for _, m := range released {
				fmt.Printf("[%s] %s (held earlier)\n", m.SenderName, m.Content.Body)
			}

			if inbox.Skipped > 0 {
				fmt.Printf("skipped %d undeliverable envelopes\n", inbox.Skipped)
			}
			// Partial results above are still printed when the poll failed
			// halfway; report the failure last.
			return err
		},
	}
}

// held: list deferred messages without releasing them.
func heldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "held",
		Short: "List messages waiting on a delivery trigger",
		RunE: func(cmd *cobra.Command, args []string) error {
			queue, err := wire.Engine.Held()
			if err != nil {
				return err
			}
			if len(queue) == 0 {
				fmt.Println("nothing held")
				return nil
			}
			for _, h := range queue {
				fmt.Printf("%s  from %s  until %s  (%s)\n",
					time.Unix(h.HeldUTC, 0).Format("15:04"), h.Message.SenderName, h.Trigger, h.Reason)
			}
			return nil
		},
	}
}
