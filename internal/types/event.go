package types

type EventType string

func (e EventType) String() string {
	return string(e)
}

// Audit event types published on every successful state change. They are
// append-only notifications with no read-back semantics inside the service.
const (
	EventNewAdmin           EventType = "timelock.NewAdmin"
	EventNewPendingAdmin    EventType = "timelock.NewPendingAdmin"
	EventNewDelay           EventType = "timelock.NewDelay"
	EventQueueTransaction   EventType = "timelock.QueueTransaction"
	EventCancelTransaction  EventType = "timelock.CancelTransaction"
	EventExecuteTransaction EventType = "timelock.ExecuteTransaction"
	EventNewRedemptionRate  EventType = "treasury.NewRedemptionRate"
	EventRedeem             EventType = "treasury.Redeem"
)

// AdminEvent reports an admin / pending-admin / delay change.
type AdminEvent struct {
	Type         EventType `json:"type"`
	Admin        string    `json:"admin,omitempty"`
	PendingAdmin string    `json:"pending_admin,omitempty"`
	DelaySeconds int64     `json:"delay_seconds,omitempty"`
}

// TransactionEvent carries the full action fields plus the fingerprint for
// queue, cancel and execute notifications.
type TransactionEvent struct {
	Type      EventType `json:"type"`
	TxHashHex string    `json:"tx_hash"`
	Target    string    `json:"target"`
	Value     string    `json:"value"`
	Signature string    `json:"signature"`
	Data      []byte    `json:"data"`
	Eta       int64     `json:"eta"`
}

// NewTransactionEvent builds the audit payload for the given action.
func NewTransactionEvent(eventType EventType, action *Action) *TransactionEvent {
	value := "0"
	if !action.Value.IsNil() {
		value = action.Value.String()
	}
	return &TransactionEvent{
		Type:      eventType,
		TxHashHex: action.TxHashHex(),
		Target:    action.Target,
		Value:     value,
		Signature: action.Signature,
		Data:      action.Data,
		Eta:       action.Eta,
	}
}

// RedeemEvent reports a completed redemption.
type RedeemEvent struct {
	Type      EventType `json:"type"`
	UnitID    uint64    `json:"unit_id"`
	Redeemer  string    `json:"redeemer"`
	Value     string    `json:"value"`
	RateBps   uint64    `json:"rate_bps"`
}

// RateEvent reports a redemption-rate change.
type RateEvent struct {
	Type    EventType `json:"type"`
	RateBps uint64    `json:"rate_bps"`
}
