package domain

// Category classifies a liability the way the aggregation API reports it.
// Loans under any other category are dropped during normalization rather
// than carried as "unknown".
type Category string

const (
	CategoryStudent  Category = "student"
	CategoryMortgage Category = "mortgage"
	CategoryCredit   Category = "credit"
)

// Categories returns the known liability categories in the order loans are
// normalized and displayed: student, mortgage, credit.
func Categories() []Category {
	return []Category{CategoryStudent, CategoryMortgage, CategoryCredit}
}

// Loan is the canonical representation of one liability after the
// heterogeneous per-category payloads have been reconciled.
//
// APR is a pointer so an unknown rate serializes as null instead of being
// indistinguishable from a genuine zero-rate loan. EndDate is an ISO-8601
// date or the sentinel "N/A".
type Loan struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Balance  float64  `json:"balance"`
	APR      *float64 `json:"apr"`
	Payment  float64  `json:"payment"`
	EndDate  string   `json:"endDate"`
	Category Category `json:"category"`
}
