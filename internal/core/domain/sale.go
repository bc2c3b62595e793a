package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a raw sale record as captured at the till. Sales feed the profit
// and loss report directly and are not necessarily posted to the journal.
type Sale struct {
	SaleID      string          `json:"saleID"`
	SaleDate    time.Time       `json:"saleDate"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	AuditFields
}

// DefaultExpenseCategory is the bucket used for expenses with no category.
const DefaultExpenseCategory = "Other Expenses"

// Expense is a raw expense record, grouped by category in the profit and
// loss report.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"` // Empty category falls into DefaultExpenseCategory
	Description string          `json:"description"`
	AuditFields
}
