package timelock

import (
	"context"
	"fmt"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/execclient"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db/model"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/observability/metrics"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/queue"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/types"
)

// Engine is the timelock state machine. Every action fingerprint moves
// Unqueued -> Queued -> {Executed | Cancelled}; the queued-flag registry does
// not distinguish "never queued" from "already executed", both read as false.
//
// All mutating entry points are serialized behind a single mutex: state
// transitions are atomic with respect to each other, matching the
// one-transaction-at-a-time execution model the state machine was designed
// for.
type Engine struct {
	mu       sync.Mutex
	db       db.DbInterface
	notifier queue.Notifier
	exec     execclient.ExecInterface
	// selfAddr is the treasury's own identity. Actions targeting it are
	// governance self-calls and dispatch internally instead of going
	// through the execution backend.
	selfAddr string
	now      func() time.Time
}

func NewEngine(
	db db.DbInterface,
	notifier queue.Notifier,
	exec execclient.ExecInterface,
	selfAddr string,
) *Engine {
	return &Engine{
		db:       db,
		notifier: notifier,
		exec:     exec,
		selfAddr: selfAddr,
		now:      time.Now,
	}
}

// Bootstrap seeds the admin state from config on first start. An already
// initialized engine is left untouched.
func (e *Engine) Bootstrap(ctx context.Context, cfg *config.TimelockConfig) *types.Error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, err := e.db.GetAdminState(ctx)
	if err == nil {
		return nil
	}
	if !db.IsNotFoundError(err) {
		return types.NewInternalServiceError(
			fmt.Errorf("failed to read admin state: %w", err),
		)
	}

	if err := config.ValidateDelay(cfg.Delay); err != nil {
		return types.NewBadRequestError(err)
	}

	doc := model.NewAdminStateDocument(cfg.Admin, int64(cfg.Delay.Seconds()))
	if err := e.db.SaveAdminState(ctx, doc); err != nil {
		return types.NewInternalServiceError(
			fmt.Errorf("failed to seed admin state: %w", err),
		)
	}

	log.Ctx(ctx).Info().
		Str("admin", cfg.Admin).
		Dur("delay", cfg.Delay).
		Msg("Seeded timelock admin state")
	return nil
}

// QueueTransaction queues an administrative action. The caller must be the
// current admin and eta must leave at least the currently effective delay
// between now and execution. Returns the action fingerprint.
func (e *Engine) QueueTransaction(ctx context.Context, caller string, action *types.Action) (string, *types.Error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, serviceErr := e.adminState(ctx)
	if serviceErr != nil {
		metrics.RecordTimelockOperation("queue", metrics.Error)
		return "", serviceErr
	}
	if caller != state.Admin {
		metrics.RecordTimelockOperation("queue", metrics.Error)
		return "", types.NewUnauthorizedError(
			fmt.Errorf("caller %s is not the admin", caller),
		)
	}

	// The delay in effect now gates the eta; a later delay change does
	// not retroactively move the execution window.
	earliestEta := e.now().Unix() + state.DelaySeconds
	if action.Eta < earliestEta {
		metrics.RecordTimelockOperation("queue", metrics.Error)
		return "", types.NewPreconditionFailedError(
			fmt.Errorf("eta %d must satisfy the delay, earliest allowed is %d", action.Eta, earliestEta),
		)
	}

	txHashHex := action.TxHashHex()
	if err := e.db.SetActionQueued(ctx, txHashHex, true); err != nil {
		metrics.RecordTimelockOperation("queue", metrics.Error)
		return "", types.NewInternalServiceError(err)
	}
	metrics.IncQueuedActions()
	metrics.RecordTimelockOperation("queue", metrics.Success)

	e.publish(ctx, types.EventQueueTransaction, types.NewTransactionEvent(types.EventQueueTransaction, action))
	log.Ctx(ctx).Info().
		Str("txHash", txHashHex).
		Str("target", action.Target).
		Int64("eta", action.Eta).
		Msg("Queued transaction")

	return txHashHex, nil
}

// CancelTransaction clears the queued flag for the action. Cancelling an
// action that was never queued is a silent no-op; the cancel notification is
// published either way.
func (e *Engine) CancelTransaction(ctx context.Context, caller string, action *types.Action) *types.Error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, serviceErr := e.adminState(ctx)
	if serviceErr != nil {
		metrics.RecordTimelockOperation("cancel", metrics.Error)
		return serviceErr
	}
	if caller != state.Admin {
		metrics.RecordTimelockOperation("cancel", metrics.Error)
		return types.NewUnauthorizedError(
			fmt.Errorf("caller %s is not the admin", caller),
		)
	}

	txHashHex := action.TxHashHex()
	// Read first only to keep the gauge honest; the write below is
	// unconditional.
	wasQueued, err := e.db.GetActionQueued(ctx, txHashHex)
	if err != nil {
		metrics.RecordTimelockOperation("cancel", metrics.Error)
		return types.NewInternalServiceError(err)
	}
	if err := e.db.SetActionQueued(ctx, txHashHex, false); err != nil {
		metrics.RecordTimelockOperation("cancel", metrics.Error)
		return types.NewInternalServiceError(err)
	}
	if wasQueued {
		metrics.DecQueuedActions()
	}
	metrics.RecordTimelockOperation("cancel", metrics.Success)

	e.publish(ctx, types.EventCancelTransaction, types.NewTransactionEvent(types.EventCancelTransaction, action))
	log.Ctx(ctx).Info().
		Str("txHash", txHashHex).
		Msg("Cancelled transaction")

	return nil
}

// ExecuteTransaction executes a queued action once its delay has matured and
// before it goes stale. The queued flag is cleared before the invocation so
// the same action cannot be replayed even if the call reenters the engine;
// a failed invocation restores the flag.
func (e *Engine) ExecuteTransaction(ctx context.Context, caller string, action *types.Action) ([]byte, *types.Error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, serviceErr := e.adminState(ctx)
	if serviceErr != nil {
		metrics.RecordTimelockOperation("execute", metrics.Error)
		return nil, serviceErr
	}
	if caller != state.Admin {
		metrics.RecordTimelockOperation("execute", metrics.Error)
		return nil, types.NewUnauthorizedError(
			fmt.Errorf("caller %s is not the admin", caller),
		)
	}

	txHashHex := action.TxHashHex()
	queued, err := e.db.GetActionQueued(ctx, txHashHex)
	if err != nil {
		metrics.RecordTimelockOperation("execute", metrics.Error)
		return nil, types.NewInternalServiceError(err)
	}
	if !queued {
		metrics.RecordTimelockOperation("execute", metrics.Error)
		return nil, types.NewPreconditionFailedError(
			fmt.Errorf("transaction %s hasn't been queued", txHashHex),
		)
	}

	now := e.now().Unix()
	if now < action.Eta {
		metrics.RecordTimelockOperation("execute", metrics.Error)
		return nil, types.NewPreconditionFailedError(
			fmt.Errorf("transaction %s hasn't surpassed its time lock, eta is %d", txHashHex, action.Eta),
		)
	}
	if now > action.Eta+int64(config.GracePeriod.Seconds()) {
		metrics.RecordTimelockOperation("execute", metrics.Error)
		return nil, types.NewPreconditionFailedError(
			fmt.Errorf("transaction %s is stale", txHashHex),
		)
	}

	// Clear before invoking: the entry cannot be replayed mid-invocation.
	if err := e.db.SetActionQueued(ctx, txHashHex, false); err != nil {
		metrics.RecordTimelockOperation("execute", metrics.Error)
		return nil, types.NewInternalServiceError(err)
	}

	returnData, invokeErr := e.invoke(ctx, action)
	if invokeErr != nil {
		// Compensating rollback: a failed invocation must leave the
		// action queued, as if the execute attempt never happened.
		if rollbackErr := e.db.SetActionQueued(ctx, txHashHex, true); rollbackErr != nil {
			log.Ctx(ctx).Error().Err(rollbackErr).
				Str("txHash", txHashHex).
				Msg("Failed to restore queued flag after failed invocation")
		}
		metrics.RecordTimelockOperation("execute", metrics.Error)
		return nil, invokeErr
	}
	metrics.DecQueuedActions()
	metrics.RecordTimelockOperation("execute", metrics.Success)

	e.publish(ctx, types.EventExecuteTransaction, types.NewTransactionEvent(types.EventExecuteTransaction, action))
	log.Ctx(ctx).Info().
		Str("txHash", txHashHex).
		Str("target", action.Target).
		Msg("Executed transaction")

	return returnData, nil
}

func (e *Engine) invoke(ctx context.Context, action *types.Action) ([]byte, *types.Error) {
	if action.Target == e.selfAddr {
		return e.dispatchSelf(ctx, action)
	}

	value := action.Value
	if value.IsNil() {
		value = sdkmath.ZeroInt()
	}
	returnData, err := e.exec.Invoke(ctx, action.Target, value, action.CallPayload())
	if err != nil {
		return nil, types.NewExternalCallError(
			fmt.Errorf("invocation of %s failed: %w", action.Target, err),
		)
	}
	return returnData, nil
}

func (e *Engine) adminState(ctx context.Context) (*model.AdminStateDocument, *types.Error) {
	state, err := e.db.GetAdminState(ctx)
	if err != nil {
		return nil, types.NewInternalServiceError(
			fmt.Errorf("failed to read admin state: %w", err),
		)
	}
	return state, nil
}

// publish sends an audit notification. A publish failure is logged and
// counted but does not fail the already committed state change.
func (e *Engine) publish(ctx context.Context, eventType types.EventType, payload any) {
	if err := e.notifier.Publish(ctx, eventType, payload); err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("eventType", eventType.String()).
			Msg("Failed to publish audit event")
	}
}
