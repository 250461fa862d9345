package number

import (
	"fmt"
	"math/big"
	"strings"

	"tokenservice/core"

	"github.com/shopspring/decimal"
)

const (
	// MaxBits on-chain integers are uint256
	MaxBits = 256

	// MaxDigits decimal digits of the largest uint256
	MaxDigits = 78

	// MaxExponent bound on the exponent of caller supplied decimals,
	// rescaling cost grows with it
	MaxExponent = 512

	// BasisPoints one hundred percent in basis points
	BasisPoints int64 = 10000
)

var hundred = decimal.NewFromInt(100)

// ParseDecimal parse v, rejecting exponents beyond MaxExponent
func ParseDecimal(v string) (decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed decimal %.32q", v)
	}

	if e := d.Exponent(); e > MaxExponent || e < -MaxExponent {
		return decimal.Zero, fmt.Errorf("decimal %.32q exponent out of range", v)
	}

	return d, nil
}

// ParseAmount parse a caller supplied decimal amount
func ParseAmount(v string) (decimal.Decimal, error) {
	if strings.TrimSpace(v) == "" {
		return decimal.Zero, core.ErrConversion.Errorf("empty amount")
	}

	d, err := ParseDecimal(v)
	if err != nil {
		return decimal.Zero, core.ErrConversion.Wrap(err, "amount")
	}

	return d, nil
}

// ToScaled multiplies amount by 10^scale and truncates toward zero.
// Callers who need rounding must round before scaling.
func ToScaled(amount decimal.Decimal, scale uint8) (*big.Int, error) {
	if amount.IsNegative() {
		return nil, core.ErrConversion.Errorf("negative amount")
	}

	// bound the work before shifting, the exponent is caller controlled
	digits := integerDigits(amount, scale)
	if amount.IsZero() || digits <= 0 {
		return new(big.Int), nil
	}

	if digits > MaxDigits {
		return nil, core.ErrConversion.Errorf("amount with %d integer digits overflows uint256 at scale %d", digits, scale)
	}

	v := amount.Shift(int32(scale)).BigInt()
	if v.BitLen() > MaxBits {
		return nil, core.ErrConversion.Errorf("amount overflows uint256 at scale %d", scale)
	}

	return v, nil
}

// integerDigits digits left of the point once amount is scaled,
// zero or less when the scaled amount is below one
func integerDigits(amount decimal.Decimal, scale uint8) int64 {
	coefficient := new(big.Int).Abs(amount.Coefficient())
	return int64(len(coefficient.String())) + int64(amount.Exponent()) + int64(scale)
}

// FromScaled divides value by 10^scale without losing precision.
// Signed values are accepted so oracle answers decode through the same path.
func FromScaled(value *big.Int, scale uint8) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(value, -int32(scale))
}

// ParseSlippage convert a percentage string into basis points, truncating
// anything finer than one basis point. Valid tolerances are [0, 100).
func ParseSlippage(v string) (int64, error) {
	d, err := ParseDecimal(v)
	if err != nil {
		return 0, core.ErrInvalidSlippage.Wrap(err, "slippage")
	}

	if d.IsNegative() || d.GreaterThanOrEqual(hundred) {
		return 0, core.ErrInvalidSlippage.Errorf("slippage %.32q%% out of range [0, 100)", strings.TrimSpace(v))
	}

	return d.Shift(2).IntPart(), nil
}

// ApplySlippage amount * (10000 - bps) / 10000
func ApplySlippage(amount *big.Int, bps int64) *big.Int {
	if amount == nil {
		return new(big.Int)
	}

	v := new(big.Int).Mul(amount, big.NewInt(BasisPoints-bps))
	return v.Quo(v, big.NewInt(BasisPoints))
}
