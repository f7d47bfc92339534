package execclient

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// ExecInterface is the boundary to the execution backend providing the
// invoke primitive and account balances.
type ExecInterface interface {
	// Invoke performs an external call against target, forwarding value
	// atomically with the payload, and returns the call's raw return
	// data. A failed call is reported as an error; the backend
	// guarantees no partial effect in that case.
	Invoke(ctx context.Context, target string, value sdkmath.Int, payload []byte) ([]byte, error)
	// Balance returns the native value held by the given account.
	Balance(ctx context.Context, account string) (sdkmath.Int, error)
}
