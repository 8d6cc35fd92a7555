package quantity

import (
	"fmt"

	"github.com/holiman/uint256"
)

// maxBits is the width the spec's "128-bit unsigned integers" bounds
// every amount to. uint256.Int is used as the backing word because it
// is the checked, allocation-free fixed-width integer the rest of the
// retrieved corpus already depends on (via go-ethereum); we simply
// refuse any result whose bit length exceeds maxBits.
const maxBits = 128

// Amount is a nonnegative integer amount, checked to fit in 128 bits.
// The zero value is zero.
type Amount struct {
	v uint256.Int
}

// Zero returns the zero amount.
func Zero() Amount { return Amount{} }

// FromUint64 builds an Amount from a uint64, which always fits.
func FromUint64(n uint64) Amount {
	var a Amount
	a.v.SetUint64(n)
	return a
}

// FromString parses a base-10 nonnegative integer string.
func FromString(s string) (Amount, error) {
	var a Amount
	if err := a.v.SetFromDecimal(s); err != nil {
		return Amount{}, fmt.Errorf("quantity: parse %q: %w", s, err)
	}
	if a.v.BitLen() > maxBits {
		return Amount{}, ErrOverflow
	}
	return a, nil
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool { return a.v.IsZero() }

// Cmp compares a and b: -1, 0, or 1.
func (a Amount) Cmp(b Amount) int { return a.v.Cmp(&b.v) }

// LessThan reports whether a < b.
func (a Amount) LessThan(b Amount) bool { return a.v.Lt(&b.v) }

// GreaterThanOrEqual reports whether a >= b.
func (a Amount) GreaterThanOrEqual(b Amount) bool { return !a.v.Lt(&b.v) }

// String renders the amount in base 10.
func (a Amount) String() string { return a.v.Dec() }

// Uint64 returns the amount truncated to uint64, and whether that
// truncation was lossless.
func (a Amount) Uint64() (uint64, bool) {
	return a.v.Uint64(), a.v.IsUint64()
}

// MarshalJSON renders the amount as a base-10 JSON string, so encoding
// is exact and independent of JSON-number float semantics.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.v.Dec() + `"`), nil
}

// UnmarshalJSON parses a base-10 JSON string produced by MarshalJSON.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		s = "0"
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Min returns the smaller of a and b.
func Min(a, b Amount) Amount {
	if a.LessThan(b) {
		return a
	}
	return b
}

func checkBounds(v *uint256.Int) (Amount, error) {
	if v.BitLen() > maxBits {
		return Amount{}, ErrOverflow
	}
	return Amount{v: *v}, nil
}

// CheckedAdd returns a+b, failing with ErrOverflow if the result would
// exceed 128 bits.
func CheckedAdd(a, b Amount) (Amount, error) {
	var out uint256.Int
	_, overflow := out.AddOverflow(&a.v, &b.v)
	if overflow {
		return Amount{}, ErrOverflow
	}
	return checkBounds(&out)
}

// CheckedSub returns a-b, failing with ErrUnderflow if b > a.
func CheckedSub(a, b Amount) (Amount, error) {
	if a.LessThan(b) {
		return Amount{}, ErrUnderflow
	}
	var out uint256.Int
	out.SubOverflow(&a.v, &b.v)
	return checkBounds(&out)
}

// CheckedMul returns a*b, failing with ErrOverflow if the result would
// exceed 128 bits.
func CheckedMul(a, b Amount) (Amount, error) {
	var out uint256.Int
	_, overflow := out.MulOverflow(&a.v, &b.v)
	if overflow {
		return Amount{}, ErrOverflow
	}
	return checkBounds(&out)
}

// CheckedDivMod returns the quotient and remainder of a/b, failing with
// ErrDivideByZero if b is zero.
func CheckedDivMod(a, b Amount) (quotient, remainder Amount, err error) {
	if b.IsZero() {
		return Amount{}, Amount{}, ErrDivideByZero
	}
	var q, r uint256.Int
	q.DivMod(&a.v, &b.v, &r)
	return Amount{v: q}, Amount{v: r}, nil
}

// CheckedExactDiv returns a/b, failing with ErrNotExact if b does not
// divide a evenly.
func CheckedExactDiv(a, b Amount) (Amount, error) {
	q, r, err := CheckedDivMod(a, b)
	if err != nil {
		return Amount{}, err
	}
	if !r.IsZero() {
		return Amount{}, ErrNotExact
	}
	return q, nil
}

// IsMultipleOf reports whether a is an exact multiple of b (b must be
// nonzero).
func IsMultipleOf(a, b Amount) (bool, error) {
	_, r, err := CheckedDivMod(a, b)
	if err != nil {
		return false, err
	}
	return r.IsZero(), nil
}

// ProceedsOfAsk computes (fundsBase / increment) * price, the quote
// proceeds owed to an asker for fundsBase base units at price. Fails
// unless fundsBase is an exact multiple of increment.
func ProceedsOfAsk(fundsBase, price, increment Amount) (Amount, error) {
	units, err := CheckedExactDiv(fundsBase, increment)
	if err != nil {
		return Amount{}, err
	}
	return CheckedMul(units, price)
}

// ProceedsOfBid computes (fundsQuote * increment) / price, the base
// proceeds owed to a bidder for fundsQuote quote units at price. Fails
// unless (fundsQuote*increment) is an exact multiple of price AND the
// resulting proceeds is itself a multiple of increment.
func ProceedsOfBid(fundsQuote, price, increment Amount) (Amount, error) {
	numerator, err := CheckedMul(fundsQuote, increment)
	if err != nil {
		return Amount{}, err
	}
	proceeds, err := CheckedExactDiv(numerator, price)
	if err != nil {
		return Amount{}, err
	}
	ok, err := IsMultipleOf(proceeds, increment)
	if err != nil {
		return Amount{}, err
	}
	if !ok {
		return Amount{}, ErrNotExact
	}
	return proceeds, nil
}
