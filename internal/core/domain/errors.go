package domain

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrAuctionPhase         = errors.New("action not allowed in current auction phase")
	ErrAuctionNotExpired    = errors.New("auction not expired")
	ErrBidTooLow            = errors.New("bid too low")
	ErrBondTooLow           = errors.New("bond too low")
	ErrBondNotFound         = errors.New("bond not found")
	ErrBondLocked           = errors.New("bond locked by an unsettled batch")
	ErrInvalidDenom         = errors.New("invalid denom")
	ErrInvalidBond          = errors.New("invalid bond")
	ErrIntentNotFound       = errors.New("intent not found")
	ErrQueueIsEmpty         = errors.New("queue is empty")
	ErrInvalidSplit         = errors.New("invalid split amount")
	ErrInvalidIntent        = errors.New("invalid intent")
	ErrOverflow             = errors.New("amount overflow")
	ErrBatchNotFound        = errors.New("batch not found")
	ErrSettlementNotFound   = errors.New("settlement not found")
	ErrSettlementNotPending = errors.New("settlement is not pending")
	ErrUnknownDomain        = errors.New("unknown domain")
	ErrInvalidConfig        = errors.New("invalid auction config")
)
