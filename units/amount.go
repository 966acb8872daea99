package units

import "math/big"

// Amount is a wei denominated value that can be set from a human readable
// ether string such as "1.5". It implements flag.Value so command line
// tools can accept ether amounts directly.
type Amount struct {
	wei *big.Int
}

// NewAmount wraps a wei value. A nil value means zero.
func NewAmount(wei *big.Int) Amount {
	if wei == nil {
		return Amount{}
	}
	return Amount{wei: new(big.Int).Set(wei)}
}

// Wei returns the exact wei value, never nil.
func (a Amount) Wei() *big.Int {
	if a.wei == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(a.wei)
}

// Ether returns the value in ether. The conversion is lossy above 2^53 wei.
func (a Amount) Ether() float64 {
	return FromWei(a.wei)
}

// IsZero returns true for an unset or zero amount.
func (a Amount) IsZero() bool {
	return a.wei == nil || a.wei.Sign() == 0
}

func (a Amount) String() string {
	return FormatEther(a.wei)
}

// Set parses a decimal ether value. It is part of the flag.Value interface.
func (a *Amount) Set(raw string) error {
	wei, err := ParseEther(raw)
	if err != nil {
		return err
	}
	a.wei = wei
	return nil
}
