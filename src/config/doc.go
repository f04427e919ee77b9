// Package config defines the configuration of the eoskeys tool.
//
// The command line populates a Config from flags and from an optional
// configuration file, [datadir]/eoskeys.toml (.json and .yaml also work).
// Besides that file, the data directory holds the key material:
//
//  priv_key // a plain text file containing the WIF encoded secret key (cf. eoskeys keygen).
//  key.pub // the legacy EOS encoding of the matching public key.
package config
