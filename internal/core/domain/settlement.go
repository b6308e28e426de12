package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	SettlementStatusPending SettlementStatus = iota
	SettlementStatusConfirmed
	SettlementStatusSlashed
)

type SettlementStatus int

func (s SettlementStatus) String() string {
	switch s {
	case SettlementStatusPending:
		return "PENDING"
	case SettlementStatusConfirmed:
		return "CONFIRMED"
	case SettlementStatusSlashed:
		return "SLASHED"
	default:
		return "UNKNOWN"
	}
}

// Settlement tracks the fulfillment of a batch won by a solver. Its Id is
// the correlation token carried by the outbound settlement message.
type Settlement struct {
	Id        string
	BatchId   string
	Intents   []Intent
	Bid       Bid
	Route     Route
	Status    SettlementStatus
	Reason    string
	CreatedAt int64
	UpdatedAt int64
}

func NewSettlement(batch *Batch, route Route, now time.Time) (*Settlement, error) {
	if batch == nil || !batch.HasWinner() {
		return nil, fmt.Errorf("cannot settle a batch without a winning bid")
	}
	return &Settlement{
		Id:        uuid.New().String(),
		BatchId:   batch.Id,
		Intents:   append([]Intent{}, batch.Intents...),
		Bid:       *batch.CurrentBid,
		Route:     route,
		Status:    SettlementStatusPending,
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}, nil
}

func (s *Settlement) Solver() string {
	return s.Bid.Solver
}

func (s *Settlement) IsPending() bool {
	return s.Status == SettlementStatusPending
}

func (s *Settlement) Confirm(now time.Time) (Event, error) {
	if !s.IsPending() {
		return nil, fmt.Errorf("%w: settlement %s is %s", ErrSettlementNotPending, s.Id, s.Status)
	}
	s.Status = SettlementStatusConfirmed
	s.UpdatedAt = now.Unix()
	return SettlementConfirmed{
		Id:        s.Id,
		BatchId:   s.BatchId,
		Solver:    s.Solver(),
		Timestamp: s.UpdatedAt,
	}, nil
}

func (s *Settlement) Slash(reason string, now time.Time) (Event, error) {
	if !s.IsPending() {
		return nil, fmt.Errorf("%w: settlement %s is %s", ErrSettlementNotPending, s.Id, s.Status)
	}
	s.Status = SettlementStatusSlashed
	s.Reason = reason
	s.UpdatedAt = now.Unix()
	return SettlementSlashed{
		Id:        s.Id,
		BatchId:   s.BatchId,
		Solver:    s.Solver(),
		Reason:    reason,
		Timestamp: s.UpdatedAt,
	}, nil
}

func (s *Settlement) Message() SettlementMessage {
	return SettlementMessage{
		Id:         s.Id,
		BatchId:    s.BatchId,
		Intents:    s.Intents,
		WinningBid: s.Bid.Amount,
		Solver:     s.Solver(),
		Route:      s.Route,
	}
}
