package keys

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
)

// KeyReaderWriter reads and writes secret keys from/to any format or support.
type KeyReaderWriter interface {
	ReadKey() (SecretKey, error)
	WriteKey(SecretKey) error
}

// SimpleKeyfile implements KeyReaderWriter with unencrypted files containing
// the WIF encoding of the key.
type SimpleKeyfile struct {
	l       sync.Mutex
	keyfile string
	logger  *logrus.Entry
}

// NewSimpleKeyfile instantiates a new SimpleKeyfile with an underlying file
func NewSimpleKeyfile(keyfile string, logger *logrus.Entry) *SimpleKeyfile {
	simpleKeyfile := &SimpleKeyfile{
		keyfile: keyfile,
		logger:  logger.WithField("keyfile", keyfile),
	}

	return simpleKeyfile
}

// CheckFileInfo verifies that the file exists and has user permissions only.
func (k *SimpleKeyfile) CheckFileInfo() error {
	info, err := os.Stat(k.keyfile)
	if err != nil {
		return err
	}

	// get file permissions
	perm := info.Mode().Perm()

	// build 000111111 mask
	var nonUserMask os.FileMode = (1 << 6) - 1

	// get permissions for 'groups' and 'others'
	nonUserPerm := perm & nonUserMask

	if nonUserPerm != 0 {
		return fmt.Errorf("key file permissions should exclude 'groups' and 'others'. Got %o", perm)
	}

	return nil
}

// ReadKey implements KeyReaderWriter. It expects the file to contain a WIF
// string, as produced by WriteKey. Surrounding whitespace is ignored.
func (k *SimpleKeyfile) ReadKey() (SecretKey, error) {
	k.l.Lock()
	defer k.l.Unlock()

	if err := k.CheckFileInfo(); err != nil {
		return SecretKey{}, err
	}

	buf, err := ioutil.ReadFile(k.keyfile)
	if err != nil {
		return SecretKey{}, err
	}

	key, err := ParseWIF(strings.TrimSpace(string(buf)))
	if err != nil {
		return SecretKey{}, fmt.Errorf("parsing %s: %w", k.keyfile, err)
	}

	k.logger.WithFields(logrus.Fields{
		"network":    key.Network(),
		"compressed": key.Compressed(),
	}).Debug("Read key")

	return key, nil
}

// WriteKey implements KeyReaderWriter. It writes the WIF encoding of the key
// to the underlying file, readable by the user only.
func (k *SimpleKeyfile) WriteKey(key SecretKey) error {
	k.l.Lock()
	defer k.l.Unlock()

	if err := os.MkdirAll(path.Dir(k.keyfile), 0700); err != nil {
		return err
	}

	if err := ioutil.WriteFile(k.keyfile, []byte(key.WIF()), 0600); err != nil {
		return err
	}

	k.logger.WithFields(logrus.Fields{
		"network":    key.Network(),
		"compressed": key.Compressed(),
	}).Debug("Wrote key")

	return nil
}

// KeyDump is the exportable view of a key pair.
type KeyDump struct {
	Network    string
	Compressed bool
	PublicKey  string
	K1Key      string
	PrivateKey string
}

// NewKeyDump exports key and its public key in text form.
func NewKeyDump(key SecretKey) (*KeyDump, error) {
	pub, err := key.PublicKey()
	if err != nil {
		return nil, err
	}

	return &KeyDump{
		Network:    key.Network().String(),
		Compressed: key.Compressed(),
		PublicKey:  pub.String(),
		K1Key:      pub.K1String(),
		PrivateKey: key.WIF(),
	}, nil
}

// SecretKey parses the PrivateKey field and checks it against the other
// fields.
func (d *KeyDump) SecretKey() (SecretKey, error) {
	key, err := ParseWIF(d.PrivateKey)
	if err != nil {
		return SecretKey{}, err
	}

	pub, err := key.PublicKey()
	if err != nil {
		return SecretKey{}, err
	}

	if d.PublicKey != "" && d.PublicKey != pub.String() {
		return SecretKey{}, fmt.Errorf("public key %s does not match private key", d.PublicKey)
	}

	return key, nil
}

// Marshal - json encoding of KeyDump
func (d *KeyDump) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	jh.Indent = 2
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(d); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal ...
func (d *KeyDump) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(d)
}
