package registryclient

import "context"

// RegistryInterface is the boundary to the membership registry that tracks
// total supply and ownership of redeemable units.
type RegistryInterface interface {
	TotalSupply(ctx context.Context) (uint64, error)
	OwnerOf(ctx context.Context, unitID uint64) (string, error)
	// Burn destroys the unit. It is the only mutating registry call made
	// by the treasury and must succeed for a redemption to go through.
	Burn(ctx context.Context, unitID uint64) error
}
