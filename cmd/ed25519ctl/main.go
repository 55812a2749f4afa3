// Command ed25519ctl is a small command-line wrapper around the
// ed25519 package: it can generate key pairs, sign a file, and verify
// a signature against a file, all using hex-encoded keys/signatures on
// the command line.
package main

import (
	"os"

	"github.com/scottarc/ed25519/cmd/ed25519ctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
