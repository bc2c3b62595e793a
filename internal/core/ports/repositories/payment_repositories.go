package repositories

import (
	"context"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
)

// PaymentRepository defines persistence operations for payment attempts.
// Each attempt is written at initiation and updated as the reconciliation
// state machine advances.
type PaymentRepository interface {
	// SavePayment inserts a new payment attempt. A duplicate OrderID returns
	// apperrors.ErrDuplicate.
	SavePayment(ctx context.Context, payment domain.PaymentRequest) error

	// UpdatePayment persists the current state of an attempt (status,
	// transaction ID, receipt, failure reason).
	UpdatePayment(ctx context.Context, payment domain.PaymentRequest) error

	// FindPaymentByOrderID retrieves an attempt by its caller correlation key.
	FindPaymentByOrderID(ctx context.Context, orderID string) (*domain.PaymentRequest, error)

	// FindPaymentByTransactionID retrieves an attempt by the provider key.
	FindPaymentByTransactionID(ctx context.Context, transactionID string) (*domain.PaymentRequest, error)
}
