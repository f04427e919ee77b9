package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mosaicnetworks/eoskeys/src/common"
	"github.com/mosaicnetworks/eoskeys/src/crypto/keys"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultKeyfile is the default name of the file containing the WIF
	// encoded secret key.
	DefaultKeyfile = "priv_key"

	// DefaultPubKeyfile is the default name of the file containing the public
	// key of the secret key in DefaultKeyfile.
	DefaultPubKeyfile = "key.pub"
)

// Default configuration values.
const (
	DefaultLogLevel   = "info"
	DefaultLogFile    = ""
	DefaultNetwork    = "mainnet"
	DefaultCompressed = false
)

// Config contains all the configuration properties of the eoskeys tool.
type Config struct {
	// DataDir is the top-level directory containing the configuration file
	// and the keyfiles.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile, when set, receives a copy of every log entry in addition to
	// stderr.
	LogFile string `mapstructure:"log-file"`

	// Network is the chain new secret keys are encoded for. It selects the
	// WIF version byte.
	Network string `mapstructure:"network"`

	// Compressed marks new secret keys for compressed public points, which
	// adds the compression marker to their WIF encoding.
	Compressed bool `mapstructure:"compressed"`

	// KeyfileName is the name of the keyfile inside DataDir. An absolute path
	// is used as is.
	KeyfileName string `mapstructure:"keyfile"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:     DefaultDataDir(),
		LogLevel:    DefaultLogLevel,
		LogFile:     DefaultLogFile,
		Network:     DefaultNetwork,
		Compressed:  DefaultCompressed,
		KeyfileName: DefaultKeyfile,
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t, level)
	return config
}

// Keyfile returns the full path of the file containing the secret key.
func (c *Config) Keyfile() string {
	if filepath.IsAbs(c.KeyfileName) {
		return c.KeyfileName
	}
	return filepath.Join(c.DataDir, c.KeyfileName)
}

// PubKeyfile returns the full path of the file containing the public key. It
// lives next to the keyfile.
func (c *Config) PubKeyfile() string {
	return filepath.Join(filepath.Dir(c.Keyfile()), DefaultPubKeyfile)
}

// ParsedNetwork returns the keys.Network named by the Network field.
func (c *Config) ParsedNetwork() (keys.Network, error) {
	return keys.ParseNetwork(c.Network)
}

// Logger returns a formatted logrus Entry, with prefix set to "eoskeys". When
// LogFile is set, entries are also written to that file.
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			pathMap := lfshook.PathMap{}
			for _, level := range logrus.AllLevels {
				pathMap[level] = c.LogFile
			}
			c.logger.Hooks.Add(lfshook.NewHook(pathMap, &logrus.TextFormatter{}))
		}
	}
	return c.logger.WithField("prefix", "eoskeys")
}

// DefaultDataDir return the default directory name for top-level eoskeys
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".EOSKeys")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "EOSKeys")
		} else {
			return filepath.Join(home, ".eoskeys")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level. Unknown levels fall back
// to debug.
func LogLevel(l string) logrus.Level {
	level, err := logrus.ParseLevel(l)
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}
