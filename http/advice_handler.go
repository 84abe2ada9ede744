package http

import (
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/Galaktikon/better-loanz-fintech-capstone/service"
)

type AdviceHandler struct {
	ai    *service.AIService
	loans *service.LoanService
}

func NewAdviceHandler(ai *service.AIService, loans *service.LoanService) *AdviceHandler {
	return &AdviceHandler{ai: ai, loans: loans}
}

// Advice answers a free-form question about the user's loan portfolio.
func (h *AdviceHandler) Advice(w http.ResponseWriter, r *http.Request) {
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
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		req.Question = "How am I doing on my loans and what should I pay down first?"
	}

	advice := h.ai.GenerateLoanAdvice(r.Context(), req.Question, h.loans.Loans(username))
	writeJSON(w, http.StatusOK, map[string]string{
		"advice": advice,
	})
}
