package api

import (
	"net/http"
)

func (s *Server) handleTotalTreasury(w http.ResponseWriter, r *http.Request) {
	total, serviceErr := s.treasury.TotalTreasury(r.Context())
	if serviceErr != nil {
		writeServiceError(w, serviceErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"total": total.String()})
}

func (s *Server) handleAllocatedTreasury(w http.ResponseWriter, r *http.Request) {
	allocated, serviceErr := s.treasury.AllocatedTreasury(r.Context())
	if serviceErr != nil {
		writeServiceError(w, serviceErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"allocated": allocated.String()})
}

func (s *Server) handleCalculateRedemption(w http.ResponseWriter, r *http.Request) {
	value, serviceErr := s.treasury.CalculateRedemption(r.Context())
	if serviceErr != nil {
		writeServiceError(w, serviceErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"value": value.String()})
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	type redeemRequest struct {
		Caller string `json:"caller"`
		UnitID uint64 `json:"unit_id"`
	}
	request, ok := decodeRequest[redeemRequest](w, r)
	if !ok {
		return
	}

	value, serviceErr := s.treasury.RedeemForETH(r.Context(), request.Caller, request.UnitID)
	if serviceErr != nil {
		writeServiceError(w, serviceErr)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"value": value.String()})
}

func (s *Server) handleSetRedemptionRate(w http.ResponseWriter, r *http.Request) {
	type rateRequest struct {
		Caller  string `json:"caller"`
		RateBps uint64 `json:"rate_bps"`
	}
	request, ok := decodeRequest[rateRequest](w, r)
	if !ok {
		return
	}

	if serviceErr := s.treasury.SetRedemptionRate(r.Context(), request.Caller, request.RateBps); serviceErr != nil {
		writeServiceError(w, serviceErr)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rate_bps": request.RateBps})
}
