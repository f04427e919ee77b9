package keys

import (
	"fmt"
	"strings"

	"github.com/mosaicnetworks/eoskeys/src/crypto/base58"
)

// Network identifies the chain a secret key is meant for. It only affects the
// version byte of the WIF encoding.
type Network uint8

const (
	// Mainnet is the production network.
	Mainnet Network = iota
	// Testnet is the test network.
	Testnet
)

// WIF version bytes.
const (
	MainnetVersion byte = 128
	TestnetVersion byte = 239
)

// Version returns the WIF version byte of the network.
func (n Network) Version() byte {
	if n == Testnet {
		return TestnetVersion
	}
	return MainnetVersion
}

// String ...
func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	}
	return fmt.Sprintf("Network(%d)", uint8(n))
}

// NetworkFromVersion maps a WIF version byte back to its network.
func NetworkFromVersion(version byte) (Network, error) {
	switch version {
	case MainnetVersion:
		return Mainnet, nil
	case TestnetVersion:
		return Testnet, nil
	}
	return Mainnet, base58.NewInvalidVersionErr(version)
}

// ParseNetwork parses the name of a network as returned by String.
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mainnet", "main":
		return Mainnet, nil
	case "testnet", "test":
		return Testnet, nil
	}
	return Mainnet, fmt.Errorf("unknown network %q", name)
}
