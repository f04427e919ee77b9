package commands

import (
	"crypto/rand"
	"fmt"
	"io/ioutil"
	"os"
	"path"

	"github.com/mosaicnetworks/eoskeys/src/crypto/keys"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewKeygenCmd produces a KeygenCmd which create a key pair
func NewKeygenCmd() *cobra.Command {
	var dumpJSON bool

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create new key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return keygen(cmd, dumpJSON)
		},
	}

	cmd.Flags().BoolVar(&dumpJSON, "json", false, "Also print the key pair as JSON")

	return cmd
}

func keygen(cmd *cobra.Command, dumpJSON bool) error {
	privKeyFile := _config.Keyfile()
	pubKeyFile := _config.PubKeyfile()

	if _, err := os.Stat(privKeyFile); err == nil {
		return fmt.Errorf("A key already lives under: %s", privKeyFile)
	}

	network, err := _config.ParsedNetwork()
	if err != nil {
		return err
	}

	key, err := keys.GenerateSecretKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("Error generating secret key: %s", err)
	}
	key = key.WithNetwork(network).WithCompressed(_config.Compressed)

	if err := keyfile().WriteKey(key); err != nil {
		return fmt.Errorf("Writing private key: %s", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Your private key has been saved to: %s\n", privKeyFile)

	pub, err := key.PublicKey()
	if err != nil {
		return err
	}

	if err := writePublicKey(pubKeyFile, pub); err != nil {
		// keygen leaves both keyfiles or neither
		os.Remove(privKeyFile)
		return fmt.Errorf("Writing public key: %s", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Your public key has been saved to: %s\n", pubKeyFile)

	_config.Logger().WithFields(logrus.Fields{
		"network":    key.Network(),
		"compressed": key.Compressed(),
		"public_key": pub.String(),
		"id":         pub.ID(),
	}).Info("Generated key")

	if !dumpJSON {
		return nil
	}

	dump, err := keys.NewKeyDump(key)
	if err != nil {
		return err
	}

	data, err := dump.Marshal()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	return nil
}

func writePublicKey(pubKeyFile string, pub keys.PublicKey) error {
	if err := os.MkdirAll(path.Dir(pubKeyFile), 0700); err != nil {
		return err
	}

	return ioutil.WriteFile(pubKeyFile, []byte(pub.String()), 0600)
}
