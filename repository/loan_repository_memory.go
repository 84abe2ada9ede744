package repository

import (
	"sync"

	"github.com/Galaktikon/better-loanz-fintech-capstone/domain"
)

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
type LoanRepositoryMemory struct {
	mu    sync.RWMutex
	loans map[string][]domain.Loan
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		loans: make(map[string][]domain.Loan),
	}
}

// Replace stores the loan set for a user, keeping input order.
func (r *LoanRepositoryMemory) Replace(username string, loans []domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]domain.Loan, len(loans))
	copy(stored, loans)
	r.loans[username] = stored
	return nil
}

func (r *LoanRepositoryMemory) Get(username string) ([]domain.Loan, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loans, ok := r.loans[username]
	if !ok {
		return nil, false
	}
	out := make([]domain.Loan, len(loans))
	copy(out, loans)
	return out, true
}
