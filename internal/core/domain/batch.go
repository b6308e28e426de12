package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Batch is the set of intents auctioned together in one round.
type Batch struct {
	Id           string
	Intents      []Intent
	StartTime    int64
	EndTime      int64
	CurrentBid   *Bid
	Closed       bool
	ClosedAt     int64
	SettlementId string
	Version      uint
	changes      []Event
}

func NewBatch() *Batch {
	return &Batch{
		Id:      uuid.New().String(),
		changes: make([]Event, 0),
	}
}

func NewBatchFromEvents(events []Event) *Batch {
	b := &Batch{}

	for _, event := range events {
		b.On(event, true)
	}

	b.changes = append([]Event{}, events...)

	return b
}

func (b *Batch) Events() []Event {
	return b.changes
}

func (b *Batch) On(event Event, replayed bool) {
	switch e := event.(type) {
	case BatchStarted:
		b.Id = e.Id
		b.Intents = append([]Intent{}, e.Intents...)
		b.StartTime = e.StartTime
		b.EndTime = e.EndTime
	case BidAccepted:
		bid := e.Bid
		b.CurrentBid = &bid
	case BatchClosed:
		b.Closed = true
		b.ClosedAt = e.Timestamp
		b.SettlementId = e.SettlementId
	}

	if replayed {
		b.Version++
	}
}

// Start opens the bidding window at now for the given intents.
func (b *Batch) Start(intents []Intent, now time.Time, duration time.Duration) ([]Event, error) {
	if b.StartTime > 0 || b.Closed {
		return nil, fmt.Errorf("batch %s already started", b.Id)
	}
	if len(intents) <= 0 {
		return nil, fmt.Errorf("missing intents to auction")
	}
	if _, err := SumIntents(intents); err != nil {
		return nil, err
	}

	event := BatchStarted{
		Id:        b.Id,
		Intents:   intents,
		StartTime: now.Unix(),
		EndTime:   now.Add(duration).Unix(),
	}
	b.raise(event)

	return []Event{event}, nil
}

// SubmitBid replaces the current bid if the batch is still in its bidding
// window and the new amount is strictly higher.
func (b *Batch) SubmitBid(bid Bid, now time.Time, fillingWindow time.Duration) ([]Event, error) {
	if b.Closed {
		return nil, fmt.Errorf("%w: batch %s is closed", ErrAuctionPhase, b.Id)
	}
	if phase := b.Phase(now, fillingWindow); phase != Bidding {
		return nil, fmt.Errorf("%w: batch %s is in %s phase", ErrAuctionPhase, b.Id, phase)
	}
	if bid.Amount == 0 {
		return nil, fmt.Errorf("%w: bid must be greater than zero", ErrBidTooLow)
	}
	if b.CurrentBid != nil && bid.Amount <= b.CurrentBid.Amount {
		return nil, fmt.Errorf(
			"%w: %d does not exceed current bid %d", ErrBidTooLow, bid.Amount, b.CurrentBid.Amount,
		)
	}

	event := BidAccepted{
		Id:  b.Id,
		Bid: bid,
	}
	b.raise(event)

	return []Event{event}, nil
}

// Close ends the batch. settlementId is empty when nobody bid.
func (b *Batch) Close(now time.Time, settlementId string) ([]Event, error) {
	if b.Closed {
		return nil, fmt.Errorf("batch %s already closed", b.Id)
	}
	if b.HasWinner() && len(settlementId) <= 0 {
		return nil, fmt.Errorf("missing settlement for batch %s", b.Id)
	}

	event := BatchClosed{
		Id:           b.Id,
		SettlementId: settlementId,
		Timestamp:    now.Unix(),
	}
	b.raise(event)

	return []Event{event}, nil
}

func (b *Batch) Phase(now time.Time, fillingWindow time.Duration) Phase {
	return PhaseAt(b, now, fillingWindow)
}

func (b *Batch) HasWinner() bool {
	return b.CurrentBid != nil
}

func (b *Batch) TotalAmount() (uint64, error) {
	return SumIntents(b.Intents)
}

func (b *Batch) raise(event Event) {
	if b.changes == nil {
		b.changes = make([]Event, 0)
	}
	b.changes = append(b.changes, event)
	b.On(event, false)
}
