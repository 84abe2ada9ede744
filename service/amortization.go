package service

import (
	"math"
	"time"

	"github.com/Galaktikon/better-loanz-fintech-capstone/domain"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// Simulate produces a month-by-month payoff schedule for a loan.
//
// Each iteration accrues interest on the remaining balance, applies the
// scheduled payment plus any extra payment, and advances the date by a
// fixed 30-day step. Entries carry values rounded to 2 decimals; the
// running balance and interest total stay unrounded so rounding error
// does not compound.
//
// When the payment is too small to cover the accrued interest the loop
// stops without emitting a partial entry and the result is marked as not
// converged, so callers can report "payment insufficient" instead of a
// failure. MaxScheduleMonths bounds the worst case.
func Simulate(
	principal float64,
	annualRatePercent float64,
	scheduledPayment float64,
	extraPayment float64,
	startDate time.Time,
) domain.AmortizationResult {

	monthlyRate := annualRatePercent / 100 / 12

	remaining := principal
	date := startDate
	totalInterest := 0.0

	schedule := []domain.AmortizationEntry{}
	var lastEntryDate time.Time

	for month := 0; month < MaxScheduleMonths && remaining > BalanceEpsilon; month++ {
		interest := remaining * monthlyRate

		principalPaid := scheduledPayment - interest + extraPayment
		if principalPaid > remaining {
			principalPaid = remaining
		}
		if principalPaid < 0 {
			// Non-convergent: the balance only grows from here.
			break
		}

		schedule = append(schedule, domain.AmortizationEntry{
			Month:            date.Format(DateLayout),
			PrincipalBefore:  roundTo2Decimals(remaining),
			Interest:         roundTo2Decimals(interest),
			ScheduledPayment: roundTo2Decimals(scheduledPayment),
			ExtraPayment:     roundTo2Decimals(extraPayment),
			TotalPayment:     roundTo2Decimals(scheduledPayment + extraPayment),
			PrincipalPaid:    roundTo2Decimals(principalPaid),
		})
		lastEntryDate = date

		totalInterest += interest
		remaining -= principalPaid
		date = date.Add(MonthStep)
	}

	result := domain.AmortizationResult{
		Schedule:      schedule,
		TotalInterest: roundTo2Decimals(totalInterest),
		Converged:     remaining <= BalanceEpsilon,
	}
	if len(schedule) > 0 {
		result.PayoffDate = lastEntryDate.Format(DateLayout)
	}
	return result
}
