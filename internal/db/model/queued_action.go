package model

const TimelockQueueCollection = "timelock_queue"

// QueuedActionDocument stores the queued flag for an action fingerprint.
// Only the fingerprint is persisted; the action fields themselves are
// recomputed by callers on every queue/cancel/execute.
type QueuedActionDocument struct {
	TxHashHex string `bson:"_id"` // Primary key
	Queued    bool   `bson:"queued"`
}

func NewQueuedActionDocument(txHashHex string, queued bool) *QueuedActionDocument {
	return &QueuedActionDocument{
		TxHashHex: txHashHex,
		Queued:    queued,
	}
}
