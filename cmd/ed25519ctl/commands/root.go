package commands

import (
	"github.com/spf13/cobra"
)

// Execute builds and runs the ed25519ctl root command.
func Execute() error {
	root := &cobra.Command{
		Use:   "ed25519ctl",
		Short: "Generate, sign, and verify with Ed25519 keys",
	}

	root.AddCommand(keygenCmd(), signCmd(), verifyCmd())
	return root.Execute()
}
