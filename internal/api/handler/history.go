package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/fanilo/ariary-rates/internal/currency"
	"github.com/fanilo/ariary-rates/internal/service"
	"github.com/shopspring/decimal"
)

type HistoryHandler struct {
	svc *service.HistoryService
}

func NewHistoryHandler(svc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

type saveHistoryRequest struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Result decimal.Decimal `json:"result"`
	Rate   decimal.Decimal `json:"rate"`
}

// Save commits one settled conversion. The append is best-effort by design,
// so the response is 202 whether or not the store cooperated.
func (h *HistoryHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-body", "Invalid request body")
		return
	}

	req.From = strings.ToUpper(strings.TrimSpace(req.From))
	req.To = strings.ToUpper(strings.TrimSpace(req.To))
	if !currency.IsSupported(req.From) || !currency.IsSupported(req.To) {
		RespondError(w, r, http.StatusBadRequest, "request/unsupported-currency", "Unsupported currency code")
		return
	}
	if req.Amount.IsNegative() {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-amount", "Amount must not be negative")
		return
	}

	h.svc.Save(r.Context(), req.From, req.To, req.Amount, req.Result, req.Rate)
	w.WriteHeader(http.StatusAccepted)
}

// List returns the most recent conversions, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records := h.svc.List(r.Context(), limit)
	RespondJSON(w, http.StatusOK, records)
}

// Clear wipes the history. Unconditional and irreversible.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.svc.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
