package commands

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scottarc/ed25519"
	"github.com/scottarc/ed25519/internal/cli"
)

func verifyCmd() *cobra.Command {
	var pubHex, sigHex, msgPath string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature against a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			pubBytes, err := hex.DecodeString(pubHex)
			if err != nil {
				return cli.Wrap("decode public key", err)
			}
			sig, err := hex.DecodeString(sigHex)
			if err != nil {
				return cli.Wrap("decode signature", err)
			}
			if msgPath == "" {
				return errors.New("verify: --message is required")
			}
			message, err := cli.ReadFile(msgPath)
			if err != nil {
				return err
			}

			// Pre-decode so a malformed --pub value gets a specific CLI
			// error instead of the generic "signature is invalid"; the
			// library-level Verify below still re-validates pk itself
			// and returns false rather than erroring on bad encodings.
			if _, err := ed25519.DecodePublicKey(pubBytes); err != nil {
				return cli.Wrap("load public key", err)
			}
			if !ed25519.Verify(pubBytes, message, sig) {
				return errors.New("verify: signature is invalid")
			}
			fmt.Println("OK")
			return nil
		},
	}
	cmd.Flags().StringVar(&pubHex, "pub", "", "hex-encoded 32-byte public key")
	cmd.Flags().StringVar(&sigHex, "sig", "", "hex-encoded 64-byte signature")
	cmd.Flags().StringVar(&msgPath, "message", "", "path to the signed file")
	cmd.MarkFlagRequired("pub")
	cmd.MarkFlagRequired("sig")
	cmd.MarkFlagRequired("message")
	return cmd
}
