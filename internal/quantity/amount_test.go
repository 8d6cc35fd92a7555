package quantity

import "testing"

func TestProceedsOfAsk(t *testing.T) {
	increment := FromUint64(1_000_000_000)
	price := FromUint64(1)
	funds := FromUint64(10_000_000_000) // 10 units

	proceeds, err := ProceedsOfAsk(funds, price, increment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := proceeds.Uint64(); got != 10 {
		t.Fatalf("proceeds = %d, want 10", got)
	}
}

func TestProceedsOfAskRejectsNonMultiple(t *testing.T) {
	increment := FromUint64(1_000_000_000)
	price := FromUint64(1)
	funds := FromUint64(1_500_000_000 - 1)

	if _, err := ProceedsOfAsk(funds, price, increment); err != ErrNotExact {
		t.Fatalf("err = %v, want ErrNotExact", err)
	}
}

func TestProceedsOfBid(t *testing.T) {
	increment := FromUint64(1_000_000_000)
	price := FromUint64(1)
	funds := FromUint64(10) // 10 stablecoin

	proceeds, err := ProceedsOfBid(funds, price, increment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := proceeds.Uint64(); got != 10_000_000_000 {
		t.Fatalf("proceeds = %d, want 10_000_000_000", got)
	}
}

func TestProceedsOfBidPriceDoesNotDivide(t *testing.T) {
	// price=15, funds=1 -> (1 * 1e9) mod 15 != 0
	increment := FromUint64(1_000_000_000)
	price := FromUint64(15)
	funds := FromUint64(1)

	_, err := ProceedsOfBid(funds, price, increment)
	if err != ErrNotExact {
		t.Fatalf("err = %v, want ErrNotExact", err)
	}
}

func TestProceedsOfBidNotInBaseIncrement(t *testing.T) {
	// price=15, funds=3 -> 3*1e9/15 = 2e8, not a multiple of 1e9
	increment := FromUint64(1_000_000_000)
	price := FromUint64(15)
	funds := FromUint64(3)

	_, err := ProceedsOfBid(funds, price, increment)
	if err != ErrNotExact {
		t.Fatalf("err = %v, want ErrNotExact", err)
	}
}

func TestCheckedSubUnderflow(t *testing.T) {
	a := FromUint64(1)
	b := FromUint64(2)
	if _, err := CheckedSub(a, b); err != ErrUnderflow {
		t.Fatalf("err = %v, want ErrUnderflow", err)
	}
}

func TestCheckedAddOverflowAt128Bits(t *testing.T) {
	max128, err := FromString("340282366920938463463374607431768211455") // 2^128-1
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	one := FromUint64(1)
	if _, err := CheckedAdd(max128, one); err != ErrOverflow {
		t.Fatalf("err = %v, want ErrOverflow", err)
	}
}

func TestMin(t *testing.T) {
	a := FromUint64(5)
	b := FromUint64(3)
	if got, _ := Min(a, b).Uint64(); got != 3 {
		t.Fatalf("Min = %d, want 3", got)
	}
}
