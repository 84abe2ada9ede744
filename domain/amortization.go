package domain

// AmortizationEntry is one row of a generated payoff schedule. Monetary
// fields are rounded to 2 decimals when the entry is emitted.
type AmortizationEntry struct {
	Month            string  `json:"month"`
	PrincipalBefore  float64 `json:"principalBefore"`
	Interest         float64 `json:"interest"`
	ScheduledPayment float64 `json:"scheduledPayment"`
	ExtraPayment     float64 `json:"extraPayment"`
	TotalPayment     float64 `json:"totalPayment"`
	PrincipalPaid    float64 `json:"principalPaid"`
}

// AmortizationResult is the full output of a payoff simulation.
//
// Converged is false when the schedule was truncated because the payment
// never covered the accrued interest, or because the safety cap on the
// number of months was reached. PayoffDate is empty for an empty schedule.
type AmortizationResult struct {
	Schedule      []AmortizationEntry `json:"schedule"`
	TotalInterest float64             `json:"totalInterest"`
	PayoffDate    string              `json:"payoffDate,omitempty"`
	Converged     bool                `json:"converged"`
}
