package model

const AdminStateCollection = "admin_state"

// AdminStateID is the fixed primary key of the singleton admin document.
const AdminStateID = "ADMIN_STATE"

// AdminStateDocument is the singleton holding the current admin identity,
// the pending admin (empty string meaning none) and the effective delay.
type AdminStateDocument struct {
	ID           string `bson:"_id"`
	Admin        string `bson:"admin"`
	PendingAdmin string `bson:"pending_admin"`
	DelaySeconds int64  `bson:"delay_seconds"`
}

func NewAdminStateDocument(admin string, delaySeconds int64) *AdminStateDocument {
	return &AdminStateDocument{
		ID:           AdminStateID,
		Admin:        admin,
		PendingAdmin: "",
		DelaySeconds: delaySeconds,
	}
}
