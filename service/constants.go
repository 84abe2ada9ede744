package service

import "time"

const (
	// MaxScheduleMonths caps payoff simulations at 50 years so
	// non-convergent inputs cannot loop forever.
	MaxScheduleMonths = 600

	// BalanceEpsilon is the remaining balance below which a loan counts
	// as paid off. Floating-point balances never land on exact zero.
	BalanceEpsilon = 0.01

	// MonthStep is the fixed calendar approximation used to advance the
	// schedule date. It is deliberately not real month arithmetic.
	MonthStep = 30 * 24 * time.Hour

	// DateLayout renders schedule dates and payoff dates.
	DateLayout = "2006-01-02"
)
