package domain

const (
	OrderbookTopic  = "orderbook"
	BondTopic       = "bond"
	SettlementTopic = "settlement"
)

func (e IntentEnqueued) GetTopic() string      { return OrderbookTopic }
func (e BondPosted) GetTopic() string          { return BondTopic }
func (e BondWithdrawn) GetTopic() string       { return BondTopic }
func (e BondSlashed) GetTopic() string         { return BondTopic }
func (e SettlementConfirmed) GetTopic() string { return SettlementTopic }
func (e SettlementSlashed) GetTopic() string   { return SettlementTopic }
func (e AccountRegistered) GetTopic() string   { return SettlementTopic }

func (e IntentEnqueued) GetType() EventType      { return EventTypeIntentEnqueued }
func (e BondPosted) GetType() EventType          { return EventTypeBondPosted }
func (e BondWithdrawn) GetType() EventType       { return EventTypeBondWithdrawn }
func (e BondSlashed) GetType() EventType         { return EventTypeBondSlashed }
func (e SettlementConfirmed) GetType() EventType { return EventTypeSettlementConfirmed }
func (e SettlementSlashed) GetType() EventType   { return EventTypeSettlementSlashed }
func (e AccountRegistered) GetType() EventType   { return EventTypeAccountRegistered }

type IntentEnqueued struct {
	Intent Intent
}

type BondPosted struct {
	Solver  string
	Coin    Coin
	Balance Coin
}

type BondWithdrawn struct {
	Solver string
	Coin   Coin
}

type BondSlashed struct {
	Solver       string
	SettlementId string
	Coin         Coin
}

type SettlementConfirmed struct {
	Id        string
	BatchId   string
	Solver    string
	Timestamp int64
}

type SettlementSlashed struct {
	Id        string
	BatchId   string
	Solver    string
	Reason    string
	Timestamp int64
}

type AccountRegistered struct {
	Registration AccountRegistration
}
