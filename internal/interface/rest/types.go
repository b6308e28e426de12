package restservice

import (
	"github.com/orbital-network/auction/internal/core/application"
	"github.com/orbital-network/auction/internal/core/domain"
)

type addOrderRequest struct {
	User        string `json:"user"`
	Amount      uint64 `json:"amount"`
	OfferDomain string `json:"offer_domain"`
	AskDomain   string `json:"ask_domain"`
}

type postBondRequest struct {
	Denom  string `json:"denom"`
	Amount uint64 `json:"amount"`
}

type bidRequest struct {
	Amount uint64 `json:"amount"`
}

type tickRequest struct {
	// Now is a unix timestamp, honored only if the daemon allows it.
	Now *int64 `json:"now,omitempty"`
}

type slashRequest struct {
	Reason string `json:"reason"`
}

type confirmAccountRequest struct {
	Address string `json:"address"`
}

type Coin struct {
	Denom  string `json:"denom"`
	Amount uint64 `json:"amount"`
}

type Route struct {
	OfferDomain string `json:"offer_domain"`
	OfferDenom  string `json:"offer_denom"`
	AskDomain   string `json:"ask_domain"`
	AskDenom    string `json:"ask_denom"`
}

type Intent struct {
	Id          string `json:"id"`
	User        string `json:"user"`
	Amount      uint64 `json:"amount"`
	OfferDomain string `json:"offer_domain"`
	AskDomain   string `json:"ask_domain"`
	CreatedAt   int64  `json:"created_at"`
}

type Bid struct {
	Solver      string `json:"solver"`
	Amount      uint64 `json:"amount"`
	BlockHeight int64  `json:"block_height"`
	BlockTime   int64  `json:"block_time"`
}

type Batch struct {
	Id           string   `json:"id"`
	Intents      []Intent `json:"intents"`
	StartTime    int64    `json:"start_time"`
	EndTime      int64    `json:"end_time"`
	CurrentBid   *Bid     `json:"current_bid,omitempty"`
	Closed       bool     `json:"closed"`
	ClosedAt     int64    `json:"closed_at,omitempty"`
	SettlementId string   `json:"settlement_id,omitempty"`
}

type ActiveBatch struct {
	Batch *Batch `json:"batch,omitempty"`
	Phase string `json:"phase"`
	Total uint64 `json:"total"`
}

type Bond struct {
	Solver    string `json:"solver"`
	Coin      Coin   `json:"coin"`
	UpdatedAt int64  `json:"updated_at"`
}

type Settlement struct {
	Id        string   `json:"id"`
	BatchId   string   `json:"batch_id"`
	Intents   []Intent `json:"intents"`
	Bid       Bid      `json:"bid"`
	Route     Route    `json:"route"`
	Status    string   `json:"status"`
	Reason    string   `json:"reason,omitempty"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
}

type SlashResult struct {
	Settlement Settlement `json:"settlement"`
	Seized     Coin       `json:"seized"`
}

type AccountRegistration struct {
	Domain      string `json:"domain"`
	Address     string `json:"address"`
	ConfirmedAt int64  `json:"confirmed_at"`
}

type TickResult struct {
	Closed     *Batch      `json:"closed,omitempty"`
	Settlement *Settlement `json:"settlement,omitempty"`
	Opened     *Batch      `json:"opened,omitempty"`
}

type Orderbook struct {
	Intents []Intent `json:"intents"`
	Total   int64    `json:"total"`
}

type AuctionConfig struct {
	BatchSize             uint64                `json:"batch_size"`
	AuctionDuration       int64                 `json:"auction_duration"`
	FillingWindowDuration int64                 `json:"filling_window_duration"`
	Route                 Route                 `json:"route"`
	SolverBond            Coin                  `json:"solver_bond"`
	Domains               domain.DomainAccounts `json:"domains"`
}

type Info struct {
	Route                 Route  `json:"route"`
	SolverBond            Coin   `json:"solver_bond"`
	BatchSize             uint64 `json:"batch_size"`
	AuctionDuration       int64  `json:"auction_duration"`
	FillingWindowDuration int64  `json:"filling_window_duration"`
	Phase                 string `json:"phase"`
	ActiveBatchId         string `json:"active_batch_id,omitempty"`
	QueueLength           int64  `json:"queue_length"`
	BlockHeight           int64  `json:"block_height"`
	BlockTime             int64  `json:"block_time"`
}

func toCoin(c domain.Coin) Coin {
	return Coin{Denom: c.Denom, Amount: c.Amount}
}

func toRoute(r domain.Route) Route {
	return Route{
		OfferDomain: r.OfferDomain,
		OfferDenom:  r.OfferDenom,
		AskDomain:   r.AskDomain,
		AskDenom:    r.AskDenom,
	}
}

func toIntents(intents []domain.Intent) []Intent {
	list := make([]Intent, 0, len(intents))
	for _, i := range intents {
		list = append(list, Intent{
			Id:          i.Id,
			User:        i.User,
			Amount:      i.Amount,
			OfferDomain: i.OfferDomain,
			AskDomain:   i.AskDomain,
			CreatedAt:   i.CreatedAt,
		})
	}
	return list
}

func toBid(b domain.Bid) Bid {
	return Bid{
		Solver:      b.Solver,
		Amount:      b.Amount,
		BlockHeight: b.Block.Height,
		BlockTime:   b.Block.Time,
	}
}

func toBatch(b *domain.Batch) *Batch {
	if b == nil {
		return nil
	}
	batch := &Batch{
		Id:           b.Id,
		Intents:      toIntents(b.Intents),
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Closed:       b.Closed,
		ClosedAt:     b.ClosedAt,
		SettlementId: b.SettlementId,
	}
	if b.CurrentBid != nil {
		bid := toBid(*b.CurrentBid)
		batch.CurrentBid = &bid
	}
	return batch
}

func toSettlement(s *domain.Settlement) *Settlement {
	if s == nil {
		return nil
	}
	return &Settlement{
		Id:        s.Id,
		BatchId:   s.BatchId,
		Intents:   toIntents(s.Intents),
		Bid:       toBid(s.Bid),
		Route:     toRoute(s.Route),
		Status:    s.Status.String(),
		Reason:    s.Reason,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toBond(b *domain.Bond) Bond {
	return Bond{Solver: b.Solver, Coin: toCoin(b.Coin), UpdatedAt: b.UpdatedAt}
}

func toAccountRegistration(r domain.AccountRegistration) AccountRegistration {
	return AccountRegistration{Domain: r.Domain, Address: r.Address, ConfirmedAt: r.ConfirmedAt}
}

func toTickResult(r *application.TickResult) TickResult {
	return TickResult{
		Closed:     toBatch(r.Closed),
		Settlement: toSettlement(r.Settlement),
		Opened:     toBatch(r.Opened),
	}
}

func toAuctionConfig(c *domain.AuctionConfig) AuctionConfig {
	domains := c.Domains
	if domains == nil {
		domains = domain.DomainAccounts{}
	}
	return AuctionConfig{
		BatchSize:             c.BatchSize,
		AuctionDuration:       int64(c.AuctionDuration.Seconds()),
		FillingWindowDuration: int64(c.FillingWindowDuration.Seconds()),
		Route:                 toRoute(c.Route),
		SolverBond:            toCoin(c.SolverBond),
		Domains:               domains,
	}
}

func toInfo(i *application.ServiceInfo) Info {
	return Info{
		Route:                 toRoute(i.Route),
		SolverBond:            toCoin(i.SolverBond),
		BatchSize:             i.BatchSize,
		AuctionDuration:       int64(i.AuctionDuration.Seconds()),
		FillingWindowDuration: int64(i.FillingWindowDuration.Seconds()),
		Phase:                 i.Phase.String(),
		ActiveBatchId:         i.ActiveBatchId,
		QueueLength:           i.QueueLength,
		BlockHeight:           i.Block.Height,
		BlockTime:             i.Block.Time,
	}
}
