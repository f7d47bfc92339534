package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/types"
)

type errorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeServiceError(w http.ResponseWriter, serviceErr *types.Error) {
	writeJSON(w, serviceErr.StatusCode, &errorResponse{
		ErrorCode: serviceErr.ErrorCode.String(),
		Message:   serviceErr.Error(),
	})
}

func decodeRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var request T
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeServiceError(w, types.NewBadRequestError(err))
		return nil, false
	}
	return &request, true
}
