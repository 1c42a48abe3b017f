package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/fanilo/ariary-rates/internal/currency"
	"github.com/fanilo/ariary-rates/internal/models"
	"github.com/fanilo/ariary-rates/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ConvertHandler struct {
	svc *service.RateService
}

func NewConvertHandler(svc *service.RateService) *ConvertHandler {
	return &ConvertHandler{svc: svc}
}

type convertResponse struct {
	Amount     string            `json:"amount"`
	From       string            `json:"from"`
	To         string            `json:"to"`
	Result     decimal.Decimal   `json:"result"`
	Rate       decimal.Decimal   `json:"rate"`
	Formatted  string            `json:"formatted"`
	Source     models.RateSource `json:"source"`
	FetchedAt  *time.Time        `json:"fetched_at,omitempty"`
	AgeMinutes *int64            `json:"age_minutes,omitempty"`
}

// Convert resolves rates and converts the amount in one call. The amount is
// passed through the silent-zero conversion policy, so an empty or
// half-typed amount yields a zero result with status 200 rather than an
// error; only unknown currency codes are rejected.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount := q.Get("amount")
	from := strings.ToUpper(strings.TrimSpace(q.Get("from")))
	to := strings.ToUpper(strings.TrimSpace(q.Get("to")))
	rounded := q.Get("rounded") == "true"

	if !currency.IsSupported(from) {
		RespondError(w, r, http.StatusBadRequest, "request/unsupported-currency", "Unsupported 'from' currency")
		return
	}
	if !currency.IsSupported(to) {
		RespondError(w, r, http.StatusBadRequest, "request/unsupported-currency", "Unsupported 'to' currency")
		return
	}

	resolved, err := h.svc.GetRates(r.Context())
	if err != nil {
		zap.L().Error("rate resolution failed", zap.Error(err))
		RespondError(w, r, http.StatusInternalServerError, "rates/resolution-failed", "Failed to resolve rates")
		return
	}

	result := currency.Convert(amount, from, to, resolved.Rates)
	rate := currency.EffectiveRate(from, to, resolved.Rates)

	RespondJSON(w, http.StatusOK, convertResponse{
		Amount:     amount,
		From:       from,
		To:         to,
		Result:     result,
		Rate:       rate,
		Formatted:  currency.FormatAmount(result, to, rounded),
		Source:     resolved.Source,
		FetchedAt:  resolved.FetchedAt,
		AgeMinutes: resolved.AgeMinutes,
	})
}
