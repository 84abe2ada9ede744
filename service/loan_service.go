package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Galaktikon/better-loanz-fintech-capstone/domain"
	"github.com/Galaktikon/better-loanz-fintech-capstone/plaid"
	"github.com/Galaktikon/better-loanz-fintech-capstone/repository"
)

var (
	ErrNoAccessToken = errors.New("no Plaid access token found for user")
	ErrLoanNotFound  = errors.New("loan not found")
)

// LoanService ties the aggregation client, the normalizer and the loan
// store together.
type LoanService struct {
	loans  repository.LoanRepository
	tokens repository.AccessTokenRepository
	plaid  plaid.LiabilityClient
}

// NewLoanService creates a new LoanService.
func NewLoanService(
	loans repository.LoanRepository,
	tokens repository.AccessTokenRepository,
	plaidClient plaid.LiabilityClient,
) *LoanService {
	return &LoanService{loans: loans, tokens: tokens, plaid: plaidClient}
}

// CreateLinkToken starts the Link flow for a user.
func (s *LoanService) CreateLinkToken(ctx context.Context, username string) (map[string]any, error) {
	return s.plaid.CreateLinkToken(ctx, username)
}

// LinkAccessToken exchanges a Link public token and stores the resulting
// access token for the user.
func (s *LoanService) LinkAccessToken(ctx context.Context, username, publicToken string) error {
	accessToken, err := s.plaid.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return err
	}
	return s.tokens.Set(username, accessToken)
}

// SyncLoans pulls the user's liabilities, normalizes them and replaces the
// stored loan set. The returned slice keeps normalizer order.
func (s *LoanService) SyncLoans(ctx context.Context, username string) ([]domain.Loan, error) {
	loans, _, err := s.fetchAndStore(ctx, username)
	return loans, err
}

// RawLiabilities fetches the raw aggregation payload for a user. The
// normalized loans are stored as a side effect, same as a sync.
func (s *LoanService) RawLiabilities(ctx context.Context, username string) (map[string]any, error) {
	_, raw, err := s.fetchAndStore(ctx, username)
	return raw, err
}

func (s *LoanService) fetchAndStore(ctx context.Context, username string) ([]domain.Loan, map[string]any, error) {
	accessToken, ok := s.tokens.Get(username)
	if !ok {
		return nil, nil, ErrNoAccessToken
	}

	raw, err := s.plaid.GetLiabilities(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}

	loans, err := NormalizeLiabilities(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("normalizing liabilities: %w", err)
	}

	if err := s.loans.Replace(username, loans); err != nil {
		return nil, nil, err
	}
	log.Info("synced loans", "user", username, "count", len(loans))
	return loans, raw, nil
}

// Loans returns the user's stored loan set, empty when nothing has been
// synced yet.
func (s *LoanService) Loans(username string) []domain.Loan {
	loans, ok := s.loans.Get(username)
	if !ok {
		return []domain.Loan{}
	}
	return loans
}

// ScheduleForLoan runs a payoff simulation for one stored loan, starting
// today. A positive scheduledPayment overrides the loan's last observed
// payment; an unknown APR projects as zero-rate.
func (s *LoanService) ScheduleForLoan(
	username, loanID string,
	scheduledPayment, extraPayment float64,
) (domain.AmortizationResult, error) {

	var loan domain.Loan
	found := false
	for _, l := range s.Loans(username) {
		if l.ID == loanID {
			loan = l
			found = true
			break
		}
	}
	if !found {
		return domain.AmortizationResult{}, ErrLoanNotFound
	}

	payment := loan.Payment
	if scheduledPayment > 0 {
		payment = scheduledPayment
	}
	apr := 0.0
	if loan.APR != nil {
		apr = *loan.APR
	}

	return Simulate(loan.Balance, apr, payment, extraPayment, time.Now()), nil
}
