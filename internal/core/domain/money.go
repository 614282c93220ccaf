package domain

import "errors"

var (
	// ErrAmountUnderflow is returned by CheckedSub when the subtrahend
	// exceeds the balance. Balances never wrap or go negative.
	ErrAmountUnderflow = errors.New("amount underflow")
	// ErrAmountOverflow is returned by CheckedAdd on uint64 overflow.
	ErrAmountOverflow = errors.New("amount overflow")
)

// Amount is a balance in integer minor units (e.g. cents) of a single
// currency. The unsigned representation makes negative balances
// unrepresentable; all debits go through CheckedSub.
type Amount uint64

// CheckedSub returns a-b, or ErrAmountUnderflow if b > a. A failed
// debit returns the receiver unchanged.
func (a Amount) CheckedSub(b Amount) (Amount, error) {
	if b > a {
		return a, ErrAmountUnderflow
	}
	return a - b, nil
}

// CheckedAdd returns a+b, guarding against wrap-around.
func (a Amount) CheckedAdd(b Amount) (Amount, error) {
	sum := a + b
	if sum < a {
		return a, ErrAmountOverflow
	}
	return sum, nil
}

// IsZero reports whether the amount holds no value.
func (a Amount) IsZero() bool { return a == 0 }
