// Package units converts between the human denominated currency form (ether)
// and the integer base unit form (wei) used on the ledger.
//
// All amounts crossing the network boundary are base unit integers. The
// float64 based functions exist for API convenience and are inherently lossy
// above 2^53 wei. Exact accounting must use the *big.Int form together with
// ParseEther and FormatEther.
package units

import (
	"math"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/params"

	"github.com/agentpay-io/agentpay-go/errors"
)

// Decimals is the number of fractional digits of the native currency.
const Decimals = 18

// weiPerEther is the number of base units in one ether.
var weiPerEther = big.NewInt(params.Ether)

// WeiPerEther returns the number of base units in one ether.
func WeiPerEther() *big.Int {
	return new(big.Int).Set(weiPerEther)
}

// ToWei converts a human denominated amount to base units, truncating below
// the smallest denomination step. NaN, infinite and negative amounts are
// rejected.
func ToWei(eth float64) (*big.Int, error) {
	if math.IsNaN(eth) || math.IsInf(eth, 0) {
		return nil, errors.ErrValidation.Newf("amount %v", eth)
	}
	if eth < 0 {
		return nil, errors.Wrap(errors.ErrValidation, "negative amount")
	}

	// 128 bits fit any float64 mantissa scaled by 10^18 without rounding,
	// so the only precision loss is the float64 representation itself.
	f := new(big.Float).SetFloat64(eth)
	scaled := new(big.Float).SetPrec(128).Mul(f, new(big.Float).SetInt(weiPerEther))
	wei, _ := scaled.Int(nil)
	return wei, nil
}

// FromWei converts base units to the human denominated form. The result is
// rounded to the nearest float64 and is lossy for amounts above 2^53 base
// units.
func FromWei(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	f := new(big.Float).SetInt(wei)
	f.Quo(f, new(big.Float).SetInt(weiPerEther))
	eth, _ := f.Float64()
	return eth
}

var etherFormatRx = regexp.MustCompile(`^(\d+)(?:\.(\d+))?$`)

// ParseEther parses a human readable decimal amount ("1.5", "0.000000001")
// into base units without any precision loss. Negative amounts and more than
// 18 fractional digits are rejected.
func ParseEther(raw string) (*big.Int, error) {
	results := etherFormatRx.FindStringSubmatch(raw)
	if results == nil {
		return nil, errors.ErrValidation.Newf("invalid amount format %q", raw)
	}

	whole, ok := new(big.Int).SetString(results[1], 10)
	if !ok {
		return nil, errors.ErrValidation.Newf("invalid whole value %q", results[1])
	}
	wei := new(big.Int).Mul(whole, weiPerEther)

	if frac := results[2]; frac != "" {
		if len(frac) > Decimals {
			return nil, errors.ErrValidation.Newf("more than %d fractional digits", Decimals)
		}
		f, ok := new(big.Int).SetString(frac, 10)
		if !ok {
			return nil, errors.ErrValidation.Newf("invalid fractional value %q", frac)
		}
		// Scale the fraction to a full 18 digits, "5" means 5 * 10^17.
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(Decimals-len(frac))), nil)
		wei.Add(wei, f.Mul(f, scale))
	}
	return wei, nil
}

// FormatEther renders base units as a decimal string. Trailing zeros are
// removed as they provide no information. The result can be parsed back with
// ParseEther without any loss.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}

	abs := new(big.Int).Set(wei)
	neg := abs.Sign() < 0
	if neg {
		abs.Neg(abs)
	}

	whole, frac := new(big.Int).QuoRem(abs, weiPerEther, new(big.Int))
	out := whole.String()

	if frac.Sign() != 0 {
		s := frac.String()
		// Add leading zeros to convert it to a floating point number.
		s = strings.Repeat("0", Decimals-len(s)) + s
		s = strings.TrimRight(s, "0")
		out += "." + s
	}

	if neg {
		out = "-" + out
	}
	return out
}
