package testutil

import (
	"context"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/proposalclient"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db/model"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/types"
)

// InMemoryDB is a db.DbInterface backed by plain maps, for unit tests that
// exercise the timelock and treasury without a running MongoDB.
type InMemoryDB struct {
	mu     sync.Mutex
	queued map[string]bool
	admin  *model.AdminStateDocument
	rate   *uint64

	// SetActionQueuedErr, when non-nil, is returned by the next call to
	// SetActionQueued and then cleared.
	SetActionQueuedErr error
}

func NewInMemoryDB() *InMemoryDB {
	return &InMemoryDB{queued: make(map[string]bool)}
}

func (d *InMemoryDB) Ping(ctx context.Context) error { return nil }

func (d *InMemoryDB) SetActionQueued(ctx context.Context, txHashHex string, queued bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.SetActionQueuedErr != nil {
		err := d.SetActionQueuedErr
		d.SetActionQueuedErr = nil
		return err
	}
	d.queued[txHashHex] = queued
	return nil
}

func (d *InMemoryDB) GetActionQueued(ctx context.Context, txHashHex string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queued[txHashHex], nil
}

func (d *InMemoryDB) GetAdminState(ctx context.Context) (*model.AdminStateDocument, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.admin == nil {
		return nil, &db.NotFoundError{
			Key:     model.AdminStateID,
			Message: "admin state not found",
		}
	}
	cp := *d.admin
	return &cp, nil
}

func (d *InMemoryDB) SaveAdminState(ctx context.Context, doc *model.AdminStateDocument) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := *doc
	d.admin = &cp
	return nil
}

func (d *InMemoryDB) GetRedemptionRate(ctx context.Context) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rate == nil {
		return 0, &db.NotFoundError{
			Key:     model.RedemptionParamsID,
			Message: "redemption rate not found",
		}
	}
	return *d.rate, nil
}

func (d *InMemoryDB) SaveRedemptionRate(ctx context.Context, rateBps uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := rateBps
	d.rate = &r
	return nil
}

// Invocation records a single call made through FakeExec.Invoke.
type Invocation struct {
	Target  string
	Value   sdkmath.Int
	Payload []byte
}

// FakeExec is an execclient.ExecInterface with scripted balances and an
// optional injected invoke failure.
type FakeExec struct {
	mu          sync.Mutex
	Invocations []Invocation
	// InvokeErr fails every Invoke call while set.
	InvokeErr    error
	InvokeReturn []byte
	Balances     map[string]sdkmath.Int
}

func NewFakeExec() *FakeExec {
	return &FakeExec{Balances: make(map[string]sdkmath.Int)}
}

func (e *FakeExec) Invoke(ctx context.Context, target string, value sdkmath.Int, payload []byte) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.InvokeErr != nil {
		return nil, e.InvokeErr
	}
	e.Invocations = append(e.Invocations, Invocation{
		Target:  target,
		Value:   value,
		Payload: payload,
	})
	return e.InvokeReturn, nil
}

func (e *FakeExec) Balance(ctx context.Context, account string) (sdkmath.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	bal, ok := e.Balances[account]
	if !ok {
		return sdkmath.ZeroInt(), nil
	}
	return bal, nil
}

// FakeRegistry is a registryclient.RegistryInterface over in-memory unit
// ownership.
type FakeRegistry struct {
	mu      sync.Mutex
	Supply  uint64
	Owners  map[uint64]string
	Burned  []uint64
	BurnErr error
}

func NewFakeRegistry(supply uint64) *FakeRegistry {
	return &FakeRegistry{Supply: supply, Owners: make(map[uint64]string)}
}

func (r *FakeRegistry) TotalSupply(ctx context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Supply, nil
}

func (r *FakeRegistry) OwnerOf(ctx context.Context, unitID uint64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.Owners[unitID]
	if !ok {
		return "", fmt.Errorf("unit %d does not exist", unitID)
	}
	return owner, nil
}

func (r *FakeRegistry) Burn(ctx context.Context, unitID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.BurnErr != nil {
		return r.BurnErr
	}
	if _, ok := r.Owners[unitID]; !ok {
		return fmt.Errorf("unit %d does not exist", unitID)
	}
	delete(r.Owners, unitID)
	r.Supply--
	r.Burned = append(r.Burned, unitID)
	return nil
}

// FakeProposal is one scripted governance proposal.
type FakeProposal struct {
	State   types.ProposalState
	Actions proposalclient.ProposalActions
}

// FakeProposals is a proposalclient.ProposalInterface serving a fixed slice
// of proposals, indexed [0, count) the way the governance source numbers
// them.
type FakeProposals struct {
	Proposals []FakeProposal
}

func (p *FakeProposals) ProposalCount(ctx context.Context) (uint64, error) {
	return uint64(len(p.Proposals)), nil
}

func (p *FakeProposals) State(ctx context.Context, index uint64) (types.ProposalState, error) {
	if index >= uint64(len(p.Proposals)) {
		return "", fmt.Errorf("proposal %d does not exist", index)
	}
	return p.Proposals[index].State, nil
}

func (p *FakeProposals) GetActions(ctx context.Context, index uint64) (*proposalclient.ProposalActions, error) {
	if index >= uint64(len(p.Proposals)) {
		return nil, fmt.Errorf("proposal %d does not exist", index)
	}
	actions := p.Proposals[index].Actions
	return &actions, nil
}

// RecordedEvent is one event captured by RecordingNotifier.
type RecordedEvent struct {
	Type    types.EventType
	Payload any
}

// RecordingNotifier is a queue.Notifier that keeps published events in
// memory instead of touching a broker.
type RecordingNotifier struct {
	mu         sync.Mutex
	Events     []RecordedEvent
	PublishErr error
}

func (n *RecordingNotifier) Publish(ctx context.Context, eventType types.EventType, payload any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.PublishErr != nil {
		return n.PublishErr
	}
	n.Events = append(n.Events, RecordedEvent{Type: eventType, Payload: payload})
	return nil
}

// EventTypes returns the types of all recorded events in publish order.
func (n *RecordingNotifier) EventTypes() []types.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]types.EventType, len(n.Events))
	for i, ev := range n.Events {
		out[i] = ev.Type
	}
	return out
}
