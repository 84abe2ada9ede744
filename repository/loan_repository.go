package repository

import "github.com/Galaktikon/better-loanz-fintech-capstone/domain"

// LoanRepository stores each user's normalized loan set. Replace swaps the
// whole set at once so the normalizer's ordering survives storage.
type LoanRepository interface {
	Replace(username string, loans []domain.Loan) error
	Get(username string) ([]domain.Loan, bool)
}
