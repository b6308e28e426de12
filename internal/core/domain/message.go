package domain

type MessageKind string

const (
	MessageKindSettle     MessageKind = "settle"
	MessageKindRefundBond MessageKind = "refund_bond"
	MessageKindSlashBond  MessageKind = "slash_bond"
)

// Message is an instruction for the external controller. Id correlates the
// asynchronous confirmation with the request.
type Message interface {
	GetId() string
	GetKind() MessageKind
}

func (m SettlementMessage) GetId() string { return m.Id }
func (m BondRefundMessage) GetId() string { return m.Id }
func (m BondSlashMessage) GetId() string  { return m.Id }

func (m SettlementMessage) GetKind() MessageKind { return MessageKindSettle }
func (m BondRefundMessage) GetKind() MessageKind { return MessageKindRefundBond }
func (m BondSlashMessage) GetKind() MessageKind  { return MessageKindSlashBond }

type SettlementMessage struct {
	Id         string
	BatchId    string
	Intents    []Intent
	WinningBid uint64
	Solver     string
	Route      Route
}

type BondRefundMessage struct {
	Id     string
	Solver string
	Coin   Coin
}

type BondSlashMessage struct {
	Id           string
	SettlementId string
	Solver       string
	Coin         Coin
	Reason       string
}
