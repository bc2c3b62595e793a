package services

import (
	"context"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/dto"
)

// PaymentCallback is invoked exactly once per payment attempt when it
// reaches a terminal state. transactionID is empty when initiation failed
// before a provider transaction was assigned.
type PaymentCallback func(success bool, transactionID string)

// ProviderAck is the provider's synchronous acknowledgment of an
// initiation attempt.
type ProviderAck struct {
	TransactionID string // Correlation key for status updates
	RedirectURL   string // Set by redirect-based providers (PayPal)
}

// PaymentProvider is the adapter for an external payment gateway. The wire
// format is the adapter's business; the reconciliation service only needs
// the two-call shape: synchronous initiate plus asynchronous status events
// delivered to PaymentService.HandleStatusEvent.
type PaymentProvider interface {
	Method() domain.PaymentMethod
	Initiate(ctx context.Context, payment domain.PaymentRequest) (*ProviderAck, error)
}

// PaymentService runs the payment reconciliation state machine:
// processing -> pending -> {success | failed}, with a dwell timeout on
// pending and an exactly-once terminal callback per attempt.
type PaymentService interface {
	// InitiatePayment validates the request, dispatches the provider
	// initiation and registers the attempt for status correlation. The
	// returned payment reflects the state immediately after initiation
	// (pending, or failed when the provider call itself failed).
	InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest, callback PaymentCallback) (*domain.PaymentRequest, error)

	// HandleStatusEvent feeds an asynchronous provider status update into
	// the state machine. Events for unknown or already-terminal transaction
	// IDs are ignored.
	HandleStatusEvent(ctx context.Context, event domain.PaymentStatusEvent)

	// CancelListening stops waiting for events on a transaction ID without
	// firing the callback, for callers that abandon the payment dialog.
	CancelListening(transactionID string)

	// GetPaymentByOrderID returns the stored state of an attempt.
	GetPaymentByOrderID(ctx context.Context, orderID string) (*domain.PaymentRequest, error)
}
