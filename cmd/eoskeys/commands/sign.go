package commands

import (
	"fmt"

	"github.com/mosaicnetworks/eoskeys/src/common"
	"github.com/mosaicnetworks/eoskeys/src/crypto"
	"github.com/mosaicnetworks/eoskeys/src/crypto/keys"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewSignCmd produces a command which signs a message with the keyfile
func NewSignCmd() *cobra.Command {
	var (
		wif  string
		hash string
	)

	cmd := &cobra.Command{
		Use:   "sign [message]",
		Short: "Sign the SHA256 digest of a message",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digest, err := messageDigest(args, hash)
			if err != nil {
				return err
			}

			key, err := readSecretKey(wif)
			if err != nil {
				return err
			}

			sig, err := key.SignHash(digest)
			if err != nil {
				return err
			}

			_config.Logger().WithFields(logrus.Fields{
				"digest":      common.EncodeToString(digest),
				"recovery_id": sig.RecoveryID(),
			}).Debug("Signed")

			fmt.Fprintln(cmd.OutOrStdout(), sig.String())

			return nil
		},
	}

	cmd.Flags().StringVar(&wif, "wif", "", "WIF encoded secret key, instead of the keyfile")
	AddHashFlag(cmd, &hash)

	return cmd
}

// AddHashFlag adds the --hash flag, which replaces the message argument with
// its digest
func AddHashFlag(cmd *cobra.Command, hash *string) {
	cmd.Flags().StringVar(hash, "hash", "", "Hex encoded 32-byte digest, instead of a message")
}

// messageDigest returns the SHA256 of the last argument, or the decoded
// --hash value. Exactly one of them must be given.
func messageDigest(args []string, hash string) ([]byte, error) {
	if hash != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("a message and --hash are mutually exclusive")
		}

		digest, err := common.DecodeFromString(hash)
		if err != nil {
			return nil, fmt.Errorf("decoding --hash: %s", err)
		}

		if len(digest) != keys.HashSize {
			return nil, fmt.Errorf("--hash should be %d bytes, got %d", keys.HashSize, len(digest))
		}

		return digest, nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("a message or --hash is required")
	}

	return crypto.SHA256([]byte(args[len(args)-1])), nil
}
