package signer

import (
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"

	"github.com/agentpay-io/agentpay-go/errors"
)

// DefaultDerivationPath is the canonical BIP 44 path of the first account.
const DefaultDerivationPath = "m/44'/60'/0'/0/0"

// DeriveFromSeed deterministically derives a signing identity from a seed by
// walking the given BIP 44 path with BIP 32 child key derivation. The seed
// must be between 16 and 64 bytes. Use when keys must be reproducible from a
// master secret, for example test fixtures.
func DeriveFromSeed(seed []byte, path string) (*Signer, error) {
	parsed, err := accounts.ParseDerivationPath(path)
	if err != nil {
		return nil, errors.ErrValidation.Newf("derivation path: %s", err)
	}

	node, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, errors.ErrValidation.Newf("seed: %s", err)
	}
	for _, child := range parsed {
		if node, err = node.Derive(child); err != nil {
			return nil, errors.Wrapf(err, "child %d", child)
		}
	}

	key, err := node.ECPrivKey()
	if err != nil {
		return nil, errors.Wrap(err, "private key")
	}
	return FromKey(key.ToECDSA()), nil
}
