package api

import (
	"fmt"
	"net/http"

	sdkmath "cosmossdk.io/math"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/types"
)

// actionRequest carries the caller identity plus the five action fields.
// Value is a decimal string; Data is base64 per encoding/json convention.
type actionRequest struct {
	Caller    string `json:"caller"`
	Target    string `json:"target"`
	Value     string `json:"value"`
	Signature string `json:"signature"`
	Data      []byte `json:"data"`
	Eta       int64  `json:"eta"`
}

func (req *actionRequest) toAction() (*types.Action, *types.Error) {
	value := sdkmath.ZeroInt()
	if req.Value != "" {
		parsed, ok := sdkmath.NewIntFromString(req.Value)
		if !ok {
			return nil, types.NewBadRequestError(
				fmt.Errorf("malformed action value %q", req.Value),
			)
		}
		if parsed.IsNegative() {
			return nil, types.NewBadRequestError(
				fmt.Errorf("negative action value %s", parsed),
			)
		}
		value = parsed
	}
	return &types.Action{
		Target:    req.Target,
		Value:     value,
		Signature: req.Signature,
		Data:      req.Data,
		Eta:       req.Eta,
	}, nil
}

func (s *Server) handleQueueTransaction(w http.ResponseWriter, r *http.Request) {
	request, ok := decodeRequest[actionRequest](w, r)
	if !ok {
		return
	}
	action, serviceErr := request.toAction()
	if serviceErr != nil {
		writeServiceError(w, serviceErr)
		return
	}

	txHashHex, serviceErr := s.engine.QueueTransaction(r.Context(), request.Caller, action)
	if serviceErr != nil {
		writeServiceError(w, serviceErr)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"tx_hash": txHashHex})
}

func (s *Server) handleCancelTransaction(w http.ResponseWriter, r *http.Request) {
	request, ok := decodeRequest[actionRequest](w, r)
	if !ok {
		return
	}
	action, serviceErr := request.toAction()
	if serviceErr != nil {
		writeServiceError(w, serviceErr)
		return
	}

	if serviceErr := s.engine.CancelTransaction(r.Context(), request.Caller, action); serviceErr != nil {
		writeServiceError(w, serviceErr)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"tx_hash": action.TxHashHex()})
}

func (s *Server) handleExecuteTransaction(w http.ResponseWriter, r *http.Request) {
	request, ok := decodeRequest[actionRequest](w, r)
	if !ok {
		return
	}
	action, serviceErr := request.toAction()
	if serviceErr != nil {
		writeServiceError(w, serviceErr)
		return
	}

	returnData, serviceErr := s.engine.ExecuteTransaction(r.Context(), request.Caller, action)
	if serviceErr != nil {
		writeServiceError(w, serviceErr)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tx_hash":     action.TxHashHex(),
		"return_data": returnData,
	})
}

func (s *Server) handleAcceptAdmin(w http.ResponseWriter, r *http.Request) {
	type acceptAdminRequest struct {
		Caller string `json:"caller"`
	}
	request, ok := decodeRequest[acceptAdminRequest](w, r)
	if !ok {
		return
	}

	if serviceErr := s.engine.AcceptAdmin(r.Context(), request.Caller); serviceErr != nil {
		writeServiceError(w, serviceErr)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"admin": request.Caller})
}

func (s *Server) handleGetAdminState(w http.ResponseWriter, r *http.Request) {
	state, err := s.db.GetAdminState(r.Context())
	if err != nil {
		writeServiceError(w, types.NewInternalServiceError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"admin":         state.Admin,
		"pending_admin": state.PendingAdmin,
		"delay_seconds": state.DelaySeconds,
	})
}
