package http

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Galaktikon/better-loanz-fintech-capstone/service"
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	username, ok := UsernameFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"loans": h.service.Loans(username),
	})
}

type amortizationRequest struct {
	// Either reference a stored loan...
	LoanID string `json:"loanId"`
	// ...or pass the numbers directly.
	Principal float64 `json:"principal"`
	APR       float64 `json:"apr"`
	Payment   float64 `json:"payment"`

	ScheduledPayment float64 `json:"scheduledPayment"` // override for LoanID mode
	ExtraPayment     float64 `json:"extraPayment"`
}

// Amortization runs a payoff projection, either for one of the user's
// stored loans or for explicit figures. A non-converged result means the
// payment never covers accrued interest.
func (h *LoanHandler) Amortization(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	username, ok := UsernameFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req amortizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Principal < 0 || req.APR < 0 || req.Payment < 0 ||
		req.ScheduledPayment < 0 || req.ExtraPayment < 0 {
		writeError(w, http.StatusBadRequest, "amounts must be non-negative")
		return
	}

	if req.LoanID != "" {
		result, err := h.service.ScheduleForLoan(
			username, req.LoanID, req.ScheduledPayment, req.ExtraPayment)
		if err != nil {
			if errors.Is(err, service.ErrLoanNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	result := service.Simulate(req.Principal, req.APR, req.Payment, req.ExtraPayment, time.Now())
	writeJSON(w, http.StatusOK, result)
}
