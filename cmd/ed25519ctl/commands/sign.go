package commands

import (
	"crypto"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scottarc/ed25519"
	"github.com/scottarc/ed25519/internal/cli"
)

func signCmd() *cobra.Command {
	var seedHex, msgPath string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a file with a hex-encoded seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := hex.DecodeString(seedHex)
			if err != nil {
				return cli.Wrap("decode seed", err)
			}
			if msgPath == "" {
				return errors.New("sign: --message is required")
			}
			message, err := cli.ReadFile(msgPath)
			if err != nil {
				return err
			}

			sk, err := ed25519.NewKeyFromSeed(seed)
			if err != nil {
				return cli.Wrap("load seed", err)
			}
			sig, err := sk.Sign(nil, message, ed25519Opts{})
			if err != nil {
				return cli.Wrap("sign", err)
			}
			fmt.Println(hex.EncodeToString(sig))
			return nil
		},
	}
	cmd.Flags().StringVar(&seedHex, "seed", "", "hex-encoded 32-byte seed")
	cmd.Flags().StringVar(&msgPath, "message", "", "path to the file to sign")
	cmd.MarkFlagRequired("seed")
	cmd.MarkFlagRequired("message")
	return cmd
}

// ed25519Opts satisfies crypto.SignerOpts with the zero hash, since
// PrivateKey.Sign requires its caller to make explicit that it is
// signing a raw message rather than a precomputed digest.
type ed25519Opts struct{}

func (ed25519Opts) HashFunc() crypto.Hash { return 0 }
