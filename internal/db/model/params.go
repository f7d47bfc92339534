package model

const TreasuryParamsCollection = "treasury_params"

const RedemptionParamsID = "REDEMPTION"

// RedemptionParamsDocument is the singleton holding the redemption rate in
// basis points.
type RedemptionParamsDocument struct {
	ID      string `bson:"_id"`
	RateBps uint64 `bson:"rate_bps"`
}

func NewRedemptionParamsDocument(rateBps uint64) *RedemptionParamsDocument {
	return &RedemptionParamsDocument{
		ID:      RedemptionParamsID,
		RateBps: rateBps,
	}
}
