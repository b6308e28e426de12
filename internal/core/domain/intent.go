package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Intent is a user request to move Amount from OfferDomain to AskDomain.
// Both halves of a split keep the Id of the original order.
type Intent struct {
	Id          string
	User        string
	Amount      uint64
	OfferDomain string
	AskDomain   string
	CreatedAt   int64
}

func NewIntent(user string, amount uint64, offerDomain, askDomain string) (*Intent, error) {
	intent := &Intent{
		Id:          uuid.New().String(),
		User:        user,
		Amount:      amount,
		OfferDomain: offerDomain,
		AskDomain:   askDomain,
		CreatedAt:   time.Now().Unix(),
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}
	return intent, nil
}

func (i Intent) Validate() error {
	if len(i.User) <= 0 {
		return fmt.Errorf("%w: missing user", ErrInvalidIntent)
	}
	if i.Amount == 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidIntent)
	}
	if len(i.OfferDomain) <= 0 || len(i.AskDomain) <= 0 {
		return fmt.Errorf("%w: missing domain", ErrInvalidIntent)
	}
	return nil
}

// Split returns a head carrying amount and a remainder carrying the rest.
func (i Intent) Split(amount uint64) (Intent, Intent, error) {
	if amount == 0 || amount > i.Amount {
		return Intent{}, Intent{}, fmt.Errorf(
			"%w: cannot take %d out of %d", ErrInvalidSplit, amount, i.Amount,
		)
	}
	rest, err := SubAmounts(i.Amount, amount)
	if err != nil {
		return Intent{}, Intent{}, err
	}

	head, remainder := i, i
	head.Amount = amount
	remainder.Amount = rest
	return head, remainder, nil
}
