// Package signer implements the signing identity that authorizes escrow
// transactions: a secp256k1 private key together with the account address
// derived from it.
//
// Key material lives in process memory only. It is never logged and the
// library never persists it on its own, writing a key file is an explicit
// Save call.
package signer

import (
	"crypto/ecdsa"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/agentpay-io/agentpay-go/errors"
)

// Signer is a signing identity.
type Signer struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

// FromKey wraps an existing private key into a signing identity.
func FromKey(key *ecdsa.PrivateKey) *Signer {
	return &Signer{
		key:  key,
		addr: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// FromHex parses a hex encoded secp256k1 private key. Input is accepted with
// or without the 0x prefix.
func FromHex(raw string) (*Signer, error) {
	raw = strings.TrimPrefix(raw, "0x")
	key, err := crypto.HexToECDSA(raw)
	if err != nil {
		return nil, errors.ErrValidation.Newf("private key: %s", err)
	}
	return FromKey(key), nil
}

// Generate returns a new random signing identity.
func Generate() *Signer {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return FromKey(key)
}

// Address returns the account address derived from the public key.
func (s *Signer) Address() common.Address {
	return s.addr
}

// SignTx signs given transaction so it can only be included in the chain it
// was built for (EIP 155 replay protection).
func (s *Signer) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.NewEIP155Signer(chainID), s.key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrTransaction, err.Error())
	}
	return signed, nil
}

// EncodeHex returns the hex encoded private key. This is the secret material,
// handle with care.
func (s *Signer) EncodeHex() string {
	return hex.EncodeToString(crypto.FromECDSA(s.key))
}

// String returns the account address and never the key material, so a signer
// can be safely passed to printf style functions.
func (s *Signer) String() string {
	return s.addr.Hex()
}
