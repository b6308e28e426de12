package domain

import "fmt"

type Coin struct {
	Denom  string
	Amount uint64
}

func (c Coin) String() string {
	return fmt.Sprintf("%d%s", c.Amount, c.Denom)
}

// Route is the single offer -> ask pair an auction instance trades.
type Route struct {
	OfferDomain string
	OfferDenom  string
	AskDomain   string
	AskDenom    string
}

func (r Route) Validate() error {
	if len(r.OfferDomain) <= 0 || len(r.AskDomain) <= 0 {
		return fmt.Errorf("missing route domain")
	}
	if len(r.OfferDenom) <= 0 || len(r.AskDenom) <= 0 {
		return fmt.Errorf("missing route denom")
	}
	if r.OfferDomain == r.AskDomain && r.OfferDenom == r.AskDenom {
		return fmt.Errorf("offer and ask sides of the route must differ")
	}
	return nil
}

func (r Route) Matches(intent Intent) bool {
	return intent.OfferDomain == r.OfferDomain && intent.AskDomain == r.AskDomain
}

func (r Route) String() string {
	return fmt.Sprintf("%s/%s->%s/%s", r.OfferDomain, r.OfferDenom, r.AskDomain, r.AskDenom)
}
