package domain

import (
	"fmt"
	"time"
)

// Bond is the collateral posted by a solver.
type Bond struct {
	Solver    string
	Coin      Coin
	UpdatedAt int64
}

func NewBond(solver, denom string) *Bond {
	return &Bond{
		Solver: solver,
		Coin:   Coin{Denom: denom},
	}
}

func (b *Bond) Add(coin Coin) error {
	if coin.Denom != b.Coin.Denom {
		return fmt.Errorf("%w: got %s, expected %s", ErrInvalidDenom, coin.Denom, b.Coin.Denom)
	}
	if coin.Amount == 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidBond)
	}

	total, err := AddAmounts(b.Coin.Amount, coin.Amount)
	if err != nil {
		return err
	}
	b.Coin.Amount = total
	b.UpdatedAt = time.Now().Unix()
	return nil
}

// Covers reports whether the bond is enough to bid against required.
func (b Bond) Covers(required Coin) bool {
	return b.Coin.Denom == required.Denom && b.Coin.Amount >= required.Amount
}

// Seize removes up to amount from the bond and returns what was taken.
func (b *Bond) Seize(amount uint64) Coin {
	taken := min(amount, b.Coin.Amount)
	b.Coin.Amount -= taken
	b.UpdatedAt = time.Now().Unix()
	return Coin{Denom: b.Coin.Denom, Amount: taken}
}

func (b Bond) IsEmpty() bool {
	return b.Coin.Amount == 0
}
