package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scottarc/ed25519"
	"github.com/scottarc/ed25519/internal/cli"
)

func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new Ed25519 key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			sk, err := ed25519.GenerateKey(nil)
			if err != nil {
				return cli.Wrap("generate key", err)
			}
			pk := sk.Public()
			pub := pk.Bytes()
			fmt.Printf("seed:       %s\n", hex.EncodeToString(sk.Seed()))
			fmt.Printf("public key: %s\n", hex.EncodeToString(pub[:]))
			return nil
		},
	}
	return cmd
}
