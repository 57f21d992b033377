package cli

import (
	"fmt"

	actx "go.hackfix.me/kangyang/app/context"
	aerrors "go.hackfix.me/kangyang/app/errors"
	"go.hackfix.me/kangyang/crypto"
)

// The Init command creates the data directory and generates a new encryption
// key.
type Init struct{}

// Run the init command.
func (c *Init) Run(appCtx *actx.Context, cli *CLI) error {
	if cli.EncryptionKey != "" {
		return aerrors.NewRuntimeError("an encryption key is already configured", nil,
			"Unset the --encryption-key option to generate a new key.")
	}

	if cli.DataDir != memoryDataDir {
		if err := appCtx.FS.MkdirAll(cli.DataDir, 0o700); err != nil {
			return aerrors.NewRuntimeError("failed creating the data directory", err, "")
		}
	}

	key, err := crypto.NewKey()
	if err != nil {
		return aerrors.NewRuntimeError("failed generating encryption key", err, "")
	}

	fmt.Fprintf(appCtx.Stdout, `New encryption key: %s

Make sure to store this key in a secure location, such as a password manager.

Pass it with --encryption-key or the KANGYANG_ENCRYPTION_KEY environment
variable to encrypt the session tokens. It will only be shown once.
`, crypto.EncodeKey(key))

	return nil
}

// memoryDataDir is the data directory value that keeps all data in memory.
const memoryDataDir = ":memory:"
