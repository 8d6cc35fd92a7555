// Package clock supplies the externally injected time source a sweep
// reads "now" from exactly once.
package clock

import "time"

// Clock returns the current time as Unix seconds.
type Clock interface {
	NowUnix() int64
}

// Real is a Clock backed by time.Now.
type Real struct{}

func (Real) NowUnix() int64 { return time.Now().Unix() }

// Fixed is a Clock that always returns the same instant, for tests that
// need deterministic tick-exclusion behavior.
type Fixed int64

func (f Fixed) NowUnix() int64 { return int64(f) }
