package agentpaytest

import (
	"bytes"
	"fmt"

	"github.com/agentpay-io/agentpay-go/signer"
)

// NewSigner returns a fresh random signing identity.
func NewSigner() *signer.Signer {
	return signer.Generate()
}

// DevSigner returns a deterministic signing identity. The same index always
// yields the same key, distinct indexes yield distinct keys.
func DevSigner(index uint32) *signer.Signer {
	seed := bytes.Repeat([]byte{0x42}, 32)
	s, err := signer.DeriveFromSeed(seed, fmt.Sprintf("m/44'/60'/0'/0/%d", index))
	if err != nil {
		panic(fmt.Sprintf("derive dev signer %d: %s", index, err))
	}
	return s
}
