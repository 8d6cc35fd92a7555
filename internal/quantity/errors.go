// Package quantity implements the integer-only amount algebra the order
// book is built on: nonnegative amounts bounded to 128 bits, checked
// add/sub/mul/div, and the price<->proceeds conversions used by ingest
// and matching.
package quantity

import "errors"

// ErrOverflow is returned when an operation's mathematical result would
// not fit in 128 bits.
var ErrOverflow = errors.New("quantity: overflow")

// ErrUnderflow is returned by checked subtraction when the subtrahend
// exceeds the minuend.
var ErrUnderflow = errors.New("quantity: underflow")

// ErrDivideByZero is returned when a divisor is zero.
var ErrDivideByZero = errors.New("quantity: division by zero")

// ErrNotExact is returned when a division that is required to be exact
// (no remainder) leaves a nonzero remainder.
var ErrNotExact = errors.New("quantity: inexact division")
