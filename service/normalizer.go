package service

import (
	"errors"
	"time"

	"github.com/Galaktikon/better-loanz-fintech-capstone/domain"
)

// candidate pulls one possible value for a canonical field out of a raw
// loan record and its account-level metadata. ok is false when the source
// holds nothing usable, which sends resolution on to the next candidate.
type candidate func(loan, account map[string]any) (any, bool)

// fromLoan resolves a (possibly nested) key path inside the loan record.
func fromLoan(keys ...string) candidate {
	return func(loan, _ map[string]any) (any, bool) {
		return dig(loan, keys...)
	}
}

// fromAccount resolves a key path inside the account metadata.
func fromAccount(keys ...string) candidate {
	return func(_, account map[string]any) (any, bool) {
		return dig(account, keys...)
	}
}

// The fallback policy per field, highest priority first. Keeping these as
// ordered lists makes the policy testable on its own instead of being
// buried in nested lookups.
var (
	balanceChain = []candidate{
		fromAccount("balances", "current"),
		fromAccount("current"),
		fromLoan("balance", "current"),
		fromLoan("current"),
	}

	titleChain = []candidate{
		fromAccount("official_name"),
		fromAccount("name"),
		fromLoan("name"),
		fromLoan("loan_name"),
		fromLoan("description"),
		fromLoan("official_name"),
	}
)

// NormalizeLiabilities converts a raw liabilities payload, as delivered by
// the aggregation API, into the canonical loan list. Categories are walked
// in the fixed order student, mortgage, credit and loans keep their input
// order within a category; downstream display depends on that ordering.
//
// Missing or malformed optional fields never fail: every field degrades
// through its candidate chain to a documented default. The only error is a
// payload that is not an object at the top level.
func NormalizeLiabilities(raw any) ([]domain.Loan, error) {
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("liabilities payload must be a JSON object")
	}

	liabilities, _ := payload["liabilities"].(map[string]any)
	accounts := indexAccounts(payload["accounts"])

	loans := []domain.Loan{}
	for _, category := range domain.Categories() {
		records, _ := liabilities[string(category)].([]any)
		for _, rec := range records {
			loan, ok := rec.(map[string]any)
			if !ok {
				continue
			}
			loans = append(loans, normalizeLoan(loan, accounts, category))
		}
	}
	return loans, nil
}

func normalizeLoan(
	loan map[string]any,
	accounts map[string]map[string]any,
	category domain.Category,
) domain.Loan {

	id := "Unknown"
	if v, ok := dig(loan, "account_id"); ok {
		if s, ok := asString(v); ok {
			id = s
		}
	}

	// Absent account metadata is an empty object, never an error.
	account := accounts[id]
	if account == nil {
		account = map[string]any{}
	}

	title := resolveString(loan, account, titleChain, "Loan "+id)

	return domain.Loan{
		ID:       id,
		Title:    title,
		Balance:  clampNonNegative(resolveFloat(loan, account, balanceChain, 0.0)),
		APR:      resolveAPR(loan, category),
		Payment:  clampNonNegative(resolvePayment(loan)),
		EndDate:  resolveEndDate(loan),
		Category: category,
	}
}

// resolveAPR applies the category-specific rate rule. Absent data yields
// nil, not zero, so an unknown rate stays distinguishable from a zero-rate
// loan.
func resolveAPR(loan map[string]any, category domain.Category) *float64 {
	var raw any
	var ok bool

	switch category {
	case domain.CategoryCredit:
		raw, ok = creditAPREntry(loan)
	case domain.CategoryMortgage:
		raw, ok = dig(loan, "interest_rate", "percentage")
	case domain.CategoryStudent:
		raw, ok = dig(loan, "interest_rate_percentage")
	}
	if !ok {
		return nil
	}
	f, ok := asFloat(raw)
	if !ok {
		return nil
	}
	f = clampNonNegative(f)
	return &f
}

// creditAPREntry picks the percentage from a credit card's APR list: the
// entry tagged purchase_apr wins, otherwise the first entry.
func creditAPREntry(loan map[string]any) (any, bool) {
	entries, _ := loan["aprs"].([]any)
	if len(entries) == 0 {
		return nil, false
	}

	chosen, _ := entries[0].(map[string]any)
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if tag, _ := entry["apr_type"].(string); tag == "purchase_apr" {
			chosen = entry
			break
		}
	}
	if chosen == nil {
		return nil, false
	}
	return dig(chosen, "apr_percentage")
}

// resolvePayment reads the last observed payment. The API delivers it both
// as a bare number and as an {amount: ...} object depending on category.
func resolvePayment(loan map[string]any) float64 {
	v, ok := dig(loan, "last_payment_amount")
	if !ok {
		return 0.0
	}
	if nested, ok := v.(map[string]any); ok {
		if f, ok := asFloat(nested["amount"]); ok {
			return f
		}
		return 0.0
	}
	if f, ok := asFloat(v); ok {
		return f
	}
	return 0.0
}

// resolveEndDate renders the next payment due date as an ISO-8601 date,
// or the "N/A" sentinel when unknown.
func resolveEndDate(loan map[string]any) string {
	v, ok := dig(loan, "next_payment_due_date")
	if !ok {
		return "N/A"
	}
	switch d := v.(type) {
	case time.Time:
		return d.Format(DateLayout)
	case string:
		if d != "" {
			return d
		}
	}
	return "N/A"
}

// indexAccounts maps the account-level metadata sequence by account_id.
func indexAccounts(raw any) map[string]map[string]any {
	index := map[string]map[string]any{}
	accounts, _ := raw.([]any)
	for _, a := range accounts {
		account, ok := a.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := asString(account["account_id"]); ok {
			index[id] = account
		}
	}
	return index
}

// resolveFloat walks a candidate chain and returns the first numeric hit;
// non-numeric candidates fall through to the next one.
func resolveFloat(loan, account map[string]any, chain []candidate, def float64) float64 {
	for _, c := range chain {
		v, ok := c(loan, account)
		if !ok {
			continue
		}
		if f, ok := asFloat(v); ok {
			return f
		}
	}
	return def
}

// resolveString walks a candidate chain and returns the first non-empty
// string.
func resolveString(loan, account map[string]any, chain []candidate, def string) string {
	for _, c := range chain {
		v, ok := c(loan, account)
		if !ok {
			continue
		}
		if s, ok := asString(v); ok {
			return s
		}
	}
	return def
}

// dig walks a nested key path through maps, reporting false on any missing
// step or nil leaf.
func dig(m map[string]any, keys ...string) (any, bool) {
	var v any = m
	for _, key := range keys {
		node, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	if v == nil {
		return nil, false
	}
	return v, true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func clampNonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
