package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how a customer pays. Cash and card settle
// synchronously at the till and never enter the reconciliation flow.
type PaymentMethod string

const (
	MethodMpesa  PaymentMethod = "mpesa"
	MethodPaypal PaymentMethod = "paypal"
	MethodCash   PaymentMethod = "cash"
	MethodCard   PaymentMethod = "card"
)

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodMpesa, MethodPaypal, MethodCash, MethodCard:
		return true
	}
	return false
}

// RequiresReconciliation reports whether the method settles asynchronously
// through a provider and needs the reconciliation state machine.
func (m PaymentMethod) RequiresReconciliation() bool {
	return m == MethodMpesa || m == MethodPaypal
}

// PaymentStatus is the reconciliation state of a payment attempt.
// processing -> pending -> {success | failed}; success and failed are terminal.
type PaymentStatus string

const (
	PaymentProcessing PaymentStatus = "processing"
	PaymentPending    PaymentStatus = "pending"
	PaymentSuccess    PaymentStatus = "success"
	PaymentFailed     PaymentStatus = "failed"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentSuccess || s == PaymentFailed
}

// PaymentRequest is a single payment attempt tracked through the
// reconciliation flow.
type PaymentRequest struct {
	OrderID       string          `json:"orderID"` // Caller-supplied correlation key, unique per attempt
	Amount        decimal.Decimal `json:"amount"`  // Positive
	Method        PaymentMethod   `json:"method"`
	PhoneNumber   string          `json:"phoneNumber"` // Normalized 254XXXXXXXXX; required for mpesa
	Email         string          `json:"email"`       // Optional, paypal only
	Description   string          `json:"description"`
	TransactionID string          `json:"transactionID"` // Assigned by the provider at initiation
	Status        PaymentStatus   `json:"status"`
	ReceiptNumber string          `json:"receiptNumber"` // Provider receipt reference, e.g. M-Pesa receipt
	FailureReason string          `json:"failureReason"`
	RedirectURL   string          `json:"redirectURL"` // PayPal approval URL, when applicable
	InitiatedAt   time.Time       `json:"initiatedAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
}

// PaymentStatusEvent is an asynchronous provider notification correlated to
// a payment attempt by TransactionID.
type PaymentStatusEvent struct {
	TransactionID string `json:"transactionID"`
	Succeeded     bool   `json:"succeeded"`
	ReceiptNumber string `json:"receiptNumber"` // Set on success
	FailureReason string `json:"failureReason"` // Set on failure
}
