package commands

import (
	"fmt"

	"github.com/mosaicnetworks/eoskeys/src/crypto/keys"
	"github.com/spf13/cobra"
)

// NewPubkeyCmd produces a command which prints the public key of a secret key
func NewPubkeyCmd() *cobra.Command {
	var (
		wif string
		k1  bool
	)

	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Print the public key of the keyfile, or of a WIF key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := readSecretKey(wif)
			if err != nil {
				return err
			}

			pub, err := key.PublicKey()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatPublicKey(pub, k1))

			return nil
		},
	}

	cmd.Flags().StringVar(&wif, "wif", "", "WIF encoded secret key, instead of the keyfile")
	cmd.Flags().BoolVar(&k1, "k1", false, "Print the PUB_K1_ form")

	return cmd
}

// readSecretKey parses wif, or reads the keyfile when wif is empty.
func readSecretKey(wif string) (keys.SecretKey, error) {
	if wif != "" {
		return keys.ParseWIF(wif)
	}
	return keyfile().ReadKey()
}

func formatPublicKey(pub keys.PublicKey, k1 bool) string {
	if k1 {
		return pub.K1String()
	}
	return pub.String()
}
