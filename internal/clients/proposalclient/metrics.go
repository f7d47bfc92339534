package proposalclient

import (
	"context"
	"time"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/observability/metrics"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/types"
)

const clientLabel = "proposal"

type proposalClientWithMetrics struct {
	proposal ProposalInterface
}

func NewProposalClientWithMetrics(proposal ProposalInterface) *proposalClientWithMetrics {
	return &proposalClientWithMetrics{proposal: proposal}
}

func (p *proposalClientWithMetrics) ProposalCount(ctx context.Context) (uint64, error) {
	return runProposalMethodWithMetrics("ProposalCount", func() (uint64, error) {
		return p.proposal.ProposalCount(ctx)
	})
}

func (p *proposalClientWithMetrics) State(ctx context.Context, index uint64) (types.ProposalState, error) {
	return runProposalMethodWithMetrics("State", func() (types.ProposalState, error) {
		return p.proposal.State(ctx, index)
	})
}

func (p *proposalClientWithMetrics) GetActions(ctx context.Context, index uint64) (*ProposalActions, error) {
	return runProposalMethodWithMetrics("GetActions", func() (*ProposalActions, error) {
		return p.proposal.GetActions(ctx, index)
	})
}

func runProposalMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	start := time.Now()
	result, err := f()

	outcome := metrics.Success
	if err != nil {
		outcome = metrics.Error
	}
	metrics.ObserveClientLatency(clientLabel, method, time.Since(start), outcome)

	return result, err
}
