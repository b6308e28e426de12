package domain

import "math/bits"

// AddAmounts returns a+b or ErrOverflow if the sum does not fit in 64 bits.
func AddAmounts(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// SubAmounts returns a-b or ErrOverflow if b > a.
func SubAmounts(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow
	}
	return diff, nil
}

func SumIntents(intents []Intent) (uint64, error) {
	var total uint64
	for _, intent := range intents {
		var err error
		if total, err = AddAmounts(total, intent.Amount); err != nil {
			return 0, err
		}
	}
	return total, nil
}
