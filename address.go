package agentpay

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/agentpay-io/agentpay-go/errors"
)

// NormalizeAddress parses a hex encoded account address and returns its
// canonical form. Input is accepted with or without the 0x prefix and in any
// letter case. Render a normalized address with its Hex method to get the
// checksum (mixed case) encoding.
//
// Two inputs that differ only in letter case normalize to the same address.
func NormalizeAddress(raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, errors.ErrValidation.Newf("address %q", raw)
	}
	return common.HexToAddress(raw), nil
}

// MustNormalizeAddress works like NormalizeAddress but panics on invalid
// input. Use only with hardcoded addresses.
func MustNormalizeAddress(raw string) common.Address {
	addr, err := NormalizeAddress(raw)
	if err != nil {
		panic(err)
	}
	return addr
}
