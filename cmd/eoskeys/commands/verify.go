package commands

import (
	"fmt"

	"github.com/mosaicnetworks/eoskeys/src/crypto/keys"
	"github.com/spf13/cobra"
)

// NewVerifyCmd produces a command which verifies a signature against a public
// key
func NewVerifyCmd() *cobra.Command {
	var hash string

	cmd := &cobra.Command{
		Use:   "verify [public key] [signature] [message]",
		Short: "Verify a SIG_K1_ signature",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := keys.ParsePublicKey(args[0])
			if err != nil {
				return fmt.Errorf("parsing public key: %w", err)
			}

			sig, err := keys.ParseSignature(args[1])
			if err != nil {
				return fmt.Errorf("parsing signature: %w", err)
			}

			digest, err := messageDigest(args[2:], hash)
			if err != nil {
				return err
			}

			valid := sig.VerifyHash(digest, pub)

			fmt.Fprintf(cmd.OutOrStdout(), "canonical: %t\n", sig.IsCanonical())
			fmt.Fprintf(cmd.OutOrStdout(), "valid: %t\n", valid)

			if !valid {
				return fmt.Errorf("signature does not match %s", pub)
			}

			return nil
		},
	}

	AddHashFlag(cmd, &hash)

	return cmd
}

// NewRecoverCmd produces a command which recovers the public key of a
// signature
func NewRecoverCmd() *cobra.Command {
	var (
		hash string
		k1   bool
	)

	cmd := &cobra.Command{
		Use:   "recover [signature] [message]",
		Short: "Recover the public key that produced a SIG_K1_ signature",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := keys.ParseSignature(args[0])
			if err != nil {
				return fmt.Errorf("parsing signature: %w", err)
			}

			digest, err := messageDigest(args[1:], hash)
			if err != nil {
				return err
			}

			pub, err := sig.RecoverHash(digest)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatPublicKey(pub, k1))

			return nil
		},
	}

	AddHashFlag(cmd, &hash)
	cmd.Flags().BoolVar(&k1, "k1", false, "Print the PUB_K1_ form")

	return cmd
}
