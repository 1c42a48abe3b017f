package handler

import (
	"net/http"

	"github.com/fanilo/ariary-rates/internal/service"
	"go.uber.org/zap"
)

type RatesHandler struct {
	svc *service.RateService
}

func NewRatesHandler(svc *service.RateService) *RatesHandler {
	return &RatesHandler{svc: svc}
}

// GetRates resolves the current rate set. Rate unavailability never reaches
// this handler as an error: the service degrades to the stale snapshot or the
// fallback table and reports provenance in the body.
func (h *RatesHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	resolved, err := h.svc.GetRates(r.Context())
	if err != nil {
		zap.L().Error("rate resolution failed", zap.Error(err))
		RespondError(w, r, http.StatusInternalServerError, "rates/resolution-failed", "Failed to resolve rates")
		return
	}

	RespondJSON(w, http.StatusOK, resolved)
}
