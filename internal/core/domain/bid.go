package domain

// BlockInfo identifies the point of the host clock at which a bid landed.
type BlockInfo struct {
	Height int64
	Time   int64
}

type Bid struct {
	Solver string
	Amount uint64
	Block  BlockInfo
}
