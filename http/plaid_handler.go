package http

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/Galaktikon/better-loanz-fintech-capstone/service"
)

// demoUser is the Link-flow fallback identity for unauthenticated callers.
const demoUser = "demo_user"

type PlaidHandler struct {
	loans *service.LoanService
	auth  Authenticator
}

func NewPlaidHandler(loans *service.LoanService, auth Authenticator) *PlaidHandler {
	return &PlaidHandler{loans: loans, auth: auth}
}

// CreateLinkToken starts the Link flow. Auth is optional here so the demo
// frontend can open Link before an account exists.
func (h *PlaidHandler) CreateLinkToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	username, ok := h.auth.Authenticate(bearerToken(r))
	if !ok {
		username = demoUser
	}

	resp, err := h.loans.CreateLinkToken(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PlaidHandler) ExchangePublicToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	username, ok := UsernameFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		PublicToken string `json:"public_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PublicToken == "" {
		writeError(w, http.StatusBadRequest, "Missing public_token")
		return
	}

	if err := h.loans.LinkAccessToken(r.Context(), username, req.PublicToken); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Plaid access token stored",
	})
}

// GetLiabilities returns the raw aggregation payload; the normalized loans
// are stored as a side effect.
func (h *PlaidHandler) GetLiabilities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	username, ok := UsernameFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	raw, err := h.loans.RawLiabilities(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrNoAccessToken) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

func (h *PlaidHandler) SyncLoans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	username, ok := UsernameFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	loans, err := h.loans.SyncLoans(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrNoAccessToken) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Loans synced successfully",
		"loans":   loans,
	})
}
