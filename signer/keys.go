package signer

import (
	"os"
	"strings"

	"github.com/agentpay-io/agentpay-go/errors"
)

// KeyPerm is the file permissions for saved private keys
const KeyPerm = 0600

// Load reads a signing identity from a file previously written by Save.
func Load(filename string) (*Signer, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read key file")
	}
	return FromHex(strings.TrimSpace(string(raw)))
}

// Save writes the hex encoded private key to the named file, readable only
// by the owner.
//
// Refuses to overwrite a file unless force is true
func Save(s *Signer, filename string, force bool) error {
	if err := canWrite(filename, force); err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(s.EncodeHex()), KeyPerm)
}

// canWrite is a little helper to check if we want to write a file
func canWrite(filename string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(filename); err == nil {
		return errors.ErrValidation.Newf("refusing to overwrite: %s", filename)
	}
	return nil
}
