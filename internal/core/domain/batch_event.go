package domain

const BatchTopic = "batch"

func (e BatchStarted) GetTopic() string { return BatchTopic }
func (e BidAccepted) GetTopic() string  { return BatchTopic }
func (e BatchClosed) GetTopic() string  { return BatchTopic }

func (e BatchStarted) GetType() EventType { return EventTypeBatchStarted }
func (e BidAccepted) GetType() EventType  { return EventTypeBidAccepted }
func (e BatchClosed) GetType() EventType  { return EventTypeBatchClosed }

type BatchStarted struct {
	Id        string
	Intents   []Intent
	StartTime int64
	EndTime   int64
}

type BidAccepted struct {
	Id  string
	Bid Bid
}

type BatchClosed struct {
	Id           string
	SettlementId string
	Timestamp    int64
}
