package commands

import (
	"github.com/mosaicnetworks/eoskeys/src/config"
	"github.com/mosaicnetworks/eoskeys/src/crypto/keys"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func loadConfig(cmd *cobra.Command, args []string) error {
	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	_config.Logger().WithFields(logrus.Fields{
		"DataDir":    _config.DataDir,
		"LogLevel":   _config.LogLevel,
		"LogFile":    _config.LogFile,
		"Network":    _config.Network,
		"Compressed": _config.Compressed,
		"Keyfile":    _config.Keyfile(),
	}).Debug("Config")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	v := viper.New()

	_config = config.NewDefaultConfig()

	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := v.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/eoskeys.toml (.json, .yaml also work)
	v.SetConfigName("eoskeys")       // name of config file (without extension)
	v.AddConfigPath(_config.DataDir) // search root directory

	// If a config file is found, read it in.
	configFile := ""
	if err := v.ReadInConfig(); err == nil {
		configFile = v.ConfigFileUsed()
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		return err
	}

	// second unmarshal to read from config file
	if err := v.Unmarshal(_config); err != nil {
		return err
	}

	// the logger is only built once the config file has set the log options
	if configFile != "" {
		_config.Logger().Debugf("Using config file: %s", configFile)
	} else {
		_config.Logger().Debugf("No config file found in: %s", _config.DataDir)
	}

	return nil
}

// keyfile returns the keyfile designated by the configuration.
func keyfile() *keys.SimpleKeyfile {
	return keys.NewSimpleKeyfile(_config.Keyfile(), _config.Logger())
}
