package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"clawdlink/internal/app"
)

var (
	home       string
	passphrase string
	relayURL   string

	wire *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "clawdlink",
		Short: "Encrypted peer messaging over an untrusted relay",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".clawdlink")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			var err error
			wire, err = app.NewWire(app.Config{Home: home, RelayURL: relayURL})
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.clawdlink)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to protect keys")
	root.PersistentFlags().StringVar(&relayURL, "relay", "", "relay base URL (e.g. http://127.0.0.1:8080)")

	root.AddCommand(
		initCmd(), fingerprintCmd(), linkCmd(),
		addCmd(), requestsCmd(), acceptCmd(), friendsCmd(),
		sendCmd(), recvCmd(), heldCmd(),
		prefsCmd(), healthCmd(),
	)
	return root.Execute()
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}

func requireRelay() error {
	if relayURL == "" {
		return fmt.Errorf("no relay configured. use --relay")
	}
	return nil
}
