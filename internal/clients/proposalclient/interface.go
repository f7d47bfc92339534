package proposalclient

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/types"
)

// ProposalActions holds the parallel arrays of a proposal's actions. All
// four slices have equal length.
type ProposalActions struct {
	Targets    []string
	Values     []sdkmath.Int
	Signatures []string
	Datas      [][]byte
}

// ProposalInterface is the boundary to the governance contract supplying
// obligations and their lifecycle states.
type ProposalInterface interface {
	ProposalCount(ctx context.Context) (uint64, error)
	State(ctx context.Context, index uint64) (types.ProposalState, error)
	GetActions(ctx context.Context, index uint64) (*ProposalActions, error)
}
