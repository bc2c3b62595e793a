package domain

// AccountType defines the fundamental accounting type of an account.
// The normal-balance side (debit or credit) is derived from it.
type AccountType string

const (
	Asset       AccountType = "ASSET"
	Liability   AccountType = "LIABILITY"
	Equity      AccountType = "EQUITY"
	Revenue     AccountType = "REVENUE"
	ExpenseType AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, ExpenseType:
		return true
	}
	return false
}

// Account represents an entry in the chart of accounts.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	Code        string      `json:"code"`        // Human-assigned code, e.g. "1001"; conventionally unique
	Name        string      `json:"name"`        // User-defined name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`    // Soft delete / status flag
	AuditFields             // Embed CreatedAt, CreatedBy, etc.
}
