package timelock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/types"
)

// Self-call signatures. An executed action targeting the treasury itself is
// dispatched on its signature string with JSON-encoded arguments in Data,
// so delay and pending-admin changes are only reachable through the
// queue/execute pipeline.
const (
	SetDelaySignature        = "setDelay(uint256)"
	SetPendingAdminSignature = "setPendingAdmin(address)"
)

// SetDelayArgs is the Data payload for a SetDelaySignature self-call.
type SetDelayArgs struct {
	DelaySeconds int64 `json:"delay_seconds"`
}

// SetPendingAdminArgs is the Data payload for a SetPendingAdminSignature
// self-call.
type SetPendingAdminArgs struct {
	PendingAdmin string `json:"pending_admin"`
}

// AcceptAdmin completes the two-step admin transfer. Only the pending admin
// itself may claim the role, which is what prevents lockout via a wrong
// setPendingAdmin assignment.
func (e *Engine) AcceptAdmin(ctx context.Context, caller string) *types.Error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, serviceErr := e.adminState(ctx)
	if serviceErr != nil {
		return serviceErr
	}
	if state.PendingAdmin == "" || caller != state.PendingAdmin {
		return types.NewUnauthorizedError(
			fmt.Errorf("caller %s is not the pending admin", caller),
		)
	}

	state.Admin = caller
	state.PendingAdmin = ""
	if err := e.db.SaveAdminState(ctx, state); err != nil {
		return types.NewInternalServiceError(err)
	}

	e.publish(ctx, types.EventNewAdmin, &types.AdminEvent{
		Type:  types.EventNewAdmin,
		Admin: state.Admin,
	})
	log.Ctx(ctx).Info().
		Str("admin", state.Admin).
		Msg("Admin role accepted")

	return nil
}

// dispatchSelf routes an executed self-call to the gated governance setters.
// Being unexported, these transitions have no other entry point: the execute
// path is the capability.
func (e *Engine) dispatchSelf(ctx context.Context, action *types.Action) ([]byte, *types.Error) {
	switch action.Signature {
	case SetDelaySignature:
		var args SetDelayArgs
		if err := json.Unmarshal(action.Data, &args); err != nil {
			return nil, types.NewExternalCallError(
				fmt.Errorf("malformed setDelay payload: %w", err),
			)
		}
		return nil, e.setDelay(ctx, time.Duration(args.DelaySeconds)*time.Second)
	case SetPendingAdminSignature:
		var args SetPendingAdminArgs
		if err := json.Unmarshal(action.Data, &args); err != nil {
			return nil, types.NewExternalCallError(
				fmt.Errorf("malformed setPendingAdmin payload: %w", err),
			)
		}
		return nil, e.setPendingAdmin(ctx, args.PendingAdmin)
	default:
		return nil, types.NewExternalCallError(
			fmt.Errorf("unknown self-call signature %q", action.Signature),
		)
	}
}

// setDelay assumes the engine lock is held by the execute path.
func (e *Engine) setDelay(ctx context.Context, newDelay time.Duration) *types.Error {
	if err := config.ValidateDelay(newDelay); err != nil {
		return types.NewBadRequestError(err)
	}

	state, serviceErr := e.adminState(ctx)
	if serviceErr != nil {
		return serviceErr
	}
	state.DelaySeconds = int64(newDelay.Seconds())
	if err := e.db.SaveAdminState(ctx, state); err != nil {
		return types.NewInternalServiceError(err)
	}

	e.publish(ctx, types.EventNewDelay, &types.AdminEvent{
		Type:         types.EventNewDelay,
		DelaySeconds: state.DelaySeconds,
	})
	log.Ctx(ctx).Info().
		Dur("delay", newDelay).
		Msg("Timelock delay changed")

	return nil
}

// setPendingAdmin assumes the engine lock is held by the execute path. The
// candidate is not validated: any identity, including the empty one, is
// accepted and must actively claim the role via AcceptAdmin.
func (e *Engine) setPendingAdmin(ctx context.Context, candidate string) *types.Error {
	state, serviceErr := e.adminState(ctx)
	if serviceErr != nil {
		return serviceErr
	}
	state.PendingAdmin = candidate
	if err := e.db.SaveAdminState(ctx, state); err != nil {
		return types.NewInternalServiceError(err)
	}

	e.publish(ctx, types.EventNewPendingAdmin, &types.AdminEvent{
		Type:         types.EventNewPendingAdmin,
		PendingAdmin: state.PendingAdmin,
	})
	log.Ctx(ctx).Info().
		Str("pendingAdmin", candidate).
		Msg("Pending admin changed")

	return nil
}
