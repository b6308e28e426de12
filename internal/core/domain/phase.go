package domain

import "time"

const (
	NoActiveBatch Phase = iota
	Bidding
	Filling
	Cleanup
)

type Phase int

func (p Phase) String() string {
	switch p {
	case Bidding:
		return "BIDDING"
	case Filling:
		return "FILLING"
	case Cleanup:
		return "CLEANUP"
	default:
		return "NO_ACTIVE_BATCH"
	}
}

// PhaseAt maps a batch and the current time to its auction phase.
// Timestamps have second granularity.
func PhaseAt(batch *Batch, now time.Time, fillingWindow time.Duration) Phase {
	if batch == nil {
		return NoActiveBatch
	}

	ts := now.Unix()
	if ts < batch.EndTime {
		return Bidding
	}
	if ts < batch.EndTime+int64(fillingWindow/time.Second) {
		return Filling
	}
	return Cleanup
}
