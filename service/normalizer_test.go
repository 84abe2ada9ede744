package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Galaktikon/better-loanz-fintech-capstone/domain"
)

// liabilitiesPayload assembles a raw payload the way the aggregation API
// shapes it: a liabilities map keyed by category plus account metadata.
func liabilitiesPayload(accounts []any, categories map[string][]any) map[string]any {
	liabilities := map[string]any{}
	for category, records := range categories {
		liabilities[category] = records
	}
	return map[string]any{
		"accounts":    accounts,
		"liabilities": liabilities,
	}
}

func TestNormalize_TopLevelMustBeObject(t *testing.T) {
	_, err := NormalizeLiabilities([]any{"not", "an", "object"})
	require.Error(t, err)

	_, err = NormalizeLiabilities(nil)
	require.Error(t, err)
}

func TestNormalize_EmptyPayload(t *testing.T) {
	loans, err := NormalizeLiabilities(map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, loans)
	assert.NotNil(t, loans)
}

func TestNormalize_CategoryThenInputOrder(t *testing.T) {
	payload := liabilitiesPayload(nil, map[string][]any{
		"credit": []any{
			map[string]any{"account_id": "c1"},
		},
		"student": []any{
			map[string]any{"account_id": "s1"},
			map[string]any{"account_id": "s2"},
		},
		"mortgage": []any{
			map[string]any{"account_id": "m1"},
		},
	})

	loans, err := NormalizeLiabilities(payload)
	require.NoError(t, err)
	require.Len(t, loans, 4)

	ids := []string{loans[0].ID, loans[1].ID, loans[2].ID, loans[3].ID}
	assert.Equal(t, []string{"s1", "s2", "m1", "c1"}, ids)
	assert.Equal(t, domain.CategoryStudent, loans[0].Category)
	assert.Equal(t, domain.CategoryMortgage, loans[2].Category)
	assert.Equal(t, domain.CategoryCredit, loans[3].Category)
}

func TestNormalize_UnknownCategoriesDropped(t *testing.T) {
	payload := liabilitiesPayload(nil, map[string][]any{
		"auto": []any{
			map[string]any{"account_id": "a1"},
		},
		"student": []any{
			map[string]any{"account_id": "s1"},
		},
	})

	loans, err := NormalizeLiabilities(payload)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "s1", loans[0].ID)
}

func TestNormalize_MissingAccountIDDefaultsToUnknown(t *testing.T) {
	payload := liabilitiesPayload(nil, map[string][]any{
		"student": []any{map[string]any{}},
	})

	loans, err := NormalizeLiabilities(payload)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "Unknown", loans[0].ID)
	assert.Equal(t, "Loan Unknown", loans[0].Title)
}

func TestNormalize_BalanceFallbackChain(t *testing.T) {
	t.Run("account balance wins", func(t *testing.T) {
		payload := liabilitiesPayload(
			[]any{map[string]any{
				"account_id": "s1",
				"balances":   map[string]any{"current": 9000.0},
			}},
			map[string][]any{
				"student": []any{map[string]any{
					"account_id": "s1",
					"balance":    map[string]any{"current": 1.0},
				}},
			})

		loans, err := NormalizeLiabilities(payload)
		require.NoError(t, err)
		assert.Equal(t, 9000.0, loans[0].Balance)
	})

	t.Run("loan balance.current when no account", func(t *testing.T) {
		payload := liabilitiesPayload(nil, map[string][]any{
			"student": []any{map[string]any{
				"account_id": "s1",
				"balance":    map[string]any{"current": 1234.5},
			}},
		})

		loans, err := NormalizeLiabilities(payload)
		require.NoError(t, err)
		assert.Equal(t, 1234.5, loans[0].Balance)
	})

	t.Run("loan current as last resort", func(t *testing.T) {
		payload := liabilitiesPayload(nil, map[string][]any{
			"student": []any{map[string]any{
				"account_id": "s1",
				"current":    42.0,
			}},
		})

		loans, err := NormalizeLiabilities(payload)
		require.NoError(t, err)
		assert.Equal(t, 42.0, loans[0].Balance)
	})

	t.Run("non-numeric values fall through", func(t *testing.T) {
		payload := liabilitiesPayload(
			[]any{map[string]any{
				"account_id": "s1",
				"balances":   map[string]any{"current": "n/a"},
			}},
			map[string][]any{
				"student": []any{map[string]any{
					"account_id": "s1",
					"balance":    map[string]any{"current": 77.0},
				}},
			})

		loans, err := NormalizeLiabilities(payload)
		require.NoError(t, err)
		assert.Equal(t, 77.0, loans[0].Balance)
	})

	t.Run("missing everywhere is exactly zero", func(t *testing.T) {
		payload := liabilitiesPayload(nil, map[string][]any{
			"mortgage": []any{map[string]any{"account_id": "m1"}},
		})

		loans, err := NormalizeLiabilities(payload)
		require.NoError(t, err)
		assert.Equal(t, 0.0, loans[0].Balance)
	})
}

func TestNormalize_CreditAPR(t *testing.T) {
	t.Run("purchase_apr wins regardless of position", func(t *testing.T) {
		payload := liabilitiesPayload(nil, map[string][]any{
			"credit": []any{map[string]any{
				"account_id": "c1",
				"aprs": []any{
					map[string]any{"apr_type": "cash_apr", "apr_percentage": 29.99},
					map[string]any{"apr_type": "purchase_apr", "apr_percentage": 21.49},
				},
			}},
		})

		loans, err := NormalizeLiabilities(payload)
		require.NoError(t, err)
		require.NotNil(t, loans[0].APR)
		assert.Equal(t, 21.49, *loans[0].APR)
	})

	t.Run("first entry when no purchase_apr", func(t *testing.T) {
		payload := liabilitiesPayload(nil, map[string][]any{
			"credit": []any{map[string]any{
				"account_id": "c1",
				"aprs": []any{
					map[string]any{"apr_type": "cash_apr", "apr_percentage": 29.99},
					map[string]any{"apr_type": "balance_transfer_apr", "apr_percentage": 17.0},
				},
			}},
		})

		loans, err := NormalizeLiabilities(payload)
		require.NoError(t, err)
		require.NotNil(t, loans[0].APR)
		assert.Equal(t, 29.99, *loans[0].APR)
	})

	t.Run("empty APR list yields null", func(t *testing.T) {
		payload := liabilitiesPayload(nil, map[string][]any{
			"credit": []any{map[string]any{
				"account_id": "c1",
				"aprs":       []any{},
			}},
		})

		loans, err := NormalizeLiabilities(payload)
		require.NoError(t, err)
		assert.Nil(t, loans[0].APR)
	})
}

func TestNormalize_CategoryAPRFields(t *testing.T) {
	payload := liabilitiesPayload(nil, map[string][]any{
		"student": []any{map[string]any{
			"account_id":               "s1",
			"interest_rate_percentage": 5.8,
		}},
		"mortgage": []any{map[string]any{
			"account_id":    "m1",
			"interest_rate": map[string]any{"percentage": 3.99, "type": "fixed"},
		}},
	})

	loans, err := NormalizeLiabilities(payload)
	require.NoError(t, err)
	require.Len(t, loans, 2)

	require.NotNil(t, loans[0].APR)
	assert.Equal(t, 5.8, *loans[0].APR)
	require.NotNil(t, loans[1].APR)
	assert.Equal(t, 3.99, *loans[1].APR)
}

func TestNormalize_UnknownAPRIsNullNotZero(t *testing.T) {
	payload := liabilitiesPayload(nil, map[string][]any{
		"student": []any{
			map[string]any{"account_id": "missing"},
			map[string]any{"account_id": "zero", "interest_rate_percentage": 0.0},
		},
	})

	loans, err := NormalizeLiabilities(payload)
	require.NoError(t, err)
	require.Len(t, loans, 2)

	assert.Nil(t, loans[0].APR)
	require.NotNil(t, loans[1].APR)
	assert.Equal(t, 0.0, *loans[1].APR)
}

func TestNormalize_PaymentShapes(t *testing.T) {
	payload := liabilitiesPayload(nil, map[string][]any{
		"student": []any{
			map[string]any{"account_id": "bare", "last_payment_amount": 120.5},
			map[string]any{"account_id": "nested", "last_payment_amount": map[string]any{"amount": 80.0}},
			map[string]any{"account_id": "absent"},
		},
	})

	loans, err := NormalizeLiabilities(payload)
	require.NoError(t, err)
	require.Len(t, loans, 3)

	assert.Equal(t, 120.5, loans[0].Payment)
	assert.Equal(t, 80.0, loans[1].Payment)
	assert.Equal(t, 0.0, loans[2].Payment)
}

func TestNormalize_EndDate(t *testing.T) {
	due := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	payload := liabilitiesPayload(nil, map[string][]any{
		"student": []any{
			map[string]any{"account_id": "typed", "next_payment_due_date": due},
			map[string]any{"account_id": "text", "next_payment_due_date": "2030-06-15"},
			map[string]any{"account_id": "none"},
		},
	})

	loans, err := NormalizeLiabilities(payload)
	require.NoError(t, err)
	require.Len(t, loans, 3)

	assert.Equal(t, "2027-03-01", loans[0].EndDate)
	assert.Equal(t, "2030-06-15", loans[1].EndDate)
	assert.Equal(t, "N/A", loans[2].EndDate)
}

func TestNormalize_TitlePriority(t *testing.T) {
	t.Run("account official name first", func(t *testing.T) {
		payload := liabilitiesPayload(
			[]any{map[string]any{
				"account_id":    "s1",
				"official_name": "Federal Direct Subsidized",
				"name":          "Student Loan",
			}},
			map[string][]any{
				"student": []any{map[string]any{"account_id": "s1", "name": "My loan"}},
			})

		loans, err := NormalizeLiabilities(payload)
		require.NoError(t, err)
		assert.Equal(t, "Federal Direct Subsidized", loans[0].Title)
	})

	t.Run("account name second", func(t *testing.T) {
		payload := liabilitiesPayload(
			[]any{map[string]any{"account_id": "s1", "name": "Student Loan"}},
			map[string][]any{
				"student": []any{map[string]any{"account_id": "s1", "loan_name": "My loan"}},
			})

		loans, err := NormalizeLiabilities(payload)
		require.NoError(t, err)
		assert.Equal(t, "Student Loan", loans[0].Title)
	})

	t.Run("loan record name third", func(t *testing.T) {
		payload := liabilitiesPayload(nil, map[string][]any{
			"student": []any{map[string]any{"account_id": "s1", "loan_name": "Sallie Mae 2019"}},
		})

		loans, err := NormalizeLiabilities(payload)
		require.NoError(t, err)
		assert.Equal(t, "Sallie Mae 2019", loans[0].Title)
	})

	t.Run("synthesized fallback", func(t *testing.T) {
		payload := liabilitiesPayload(nil, map[string][]any{
			"student": []any{map[string]any{"account_id": "s1"}},
		})

		loans, err := NormalizeLiabilities(payload)
		require.NoError(t, err)
		assert.Equal(t, "Loan s1", loans[0].Title)
	})
}

func TestNormalize_Idempotent(t *testing.T) {
	payload := liabilitiesPayload(
		[]any{map[string]any{
			"account_id": "c1",
			"name":       "Rewards Card",
			"balances":   map[string]any{"current": 800.0},
		}},
		map[string][]any{
			"credit": []any{map[string]any{
				"account_id": "c1",
				"aprs": []any{
					map[string]any{"apr_type": "purchase_apr", "apr_percentage": 24.99},
				},
				"last_payment_amount":   55.0,
				"next_payment_due_date": "2026-09-20",
			}},
			"student": []any{map[string]any{"account_id": "s1"}},
		})

	first, err := NormalizeLiabilities(payload)
	require.NoError(t, err)
	second, err := NormalizeLiabilities(payload)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
