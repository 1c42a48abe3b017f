package handler

import (
	"net/http"

	"github.com/fanilo/ariary-rates/internal/currency"
)

// Currencies serves the static supported-currency metadata.
func Currencies(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"base":       currency.Base,
		"currencies": currency.Supported,
	})
}
