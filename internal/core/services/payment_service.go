package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/apperrors"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portsrepo "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/repositories"
	portssvc "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/dto"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/utils/phone"
)

// TimeoutFailureReason is the user-visible reason set when a pending payment
// exceeds its dwell time. Kept distinct from provider rejections so the POS
// can suggest a retry.
const TimeoutFailureReason = "Payment timeout. Please try again."

// DefaultPendingTimeout is the maximum dwell time in the pending state.
const DefaultPendingTimeout = 120 * time.Second

var (
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrNoReconciliation  = errors.New("payment method settles synchronously and needs no reconciliation")
)

// pendingAttempt tracks a payment waiting for a provider status event.
// An attempt lives in the pending map from initiation ack until the first of
// {status event, timeout, cancel} removes it; removal is the single-winner
// transition guard.
type pendingAttempt struct {
	payment  domain.PaymentRequest
	callback portssvc.PaymentCallback
	timer    *time.Timer
}

// paymentService runs the payment reconciliation state machine.
type paymentService struct {
	BaseService
	paymentRepo    portsrepo.PaymentRepository
	providers      map[domain.PaymentMethod]portssvc.PaymentProvider
	pendingTimeout time.Duration

	mu      sync.Mutex
	pending map[string]*pendingAttempt // keyed by transactionID
}

// PaymentServiceOption is a functional option for configuring the payment service.
type PaymentServiceOption func(*paymentService)

// WithPendingTimeout overrides the maximum dwell time in the pending state.
func WithPendingTimeout(timeout time.Duration) PaymentServiceOption {
	return func(s *paymentService) {
		s.pendingTimeout = timeout
	}
}

// NewPaymentService creates a new payment reconciliation service with the
// given provider adapters.
func NewPaymentService(paymentRepo portsrepo.PaymentRepository, providers []portssvc.PaymentProvider, options ...PaymentServiceOption) portssvc.PaymentService {
	svc := &paymentService{
		paymentRepo:    paymentRepo,
		providers:      make(map[domain.PaymentMethod]portssvc.PaymentProvider, len(providers)),
		pendingTimeout: DefaultPendingTimeout,
		pending:        make(map[string]*pendingAttempt),
	}
	for _, provider := range providers {
		svc.providers[provider.Method()] = provider
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PaymentService = (*paymentService)(nil)

// InitiatePayment validates the request, dispatches the provider initiation
// call and registers the attempt for asynchronous status correlation.
//
// Validation failures return an error with no record created and no callback
// fired. Provider initiation failures are a terminal failed state: the
// attempt is recorded, the callback fires once, and the returned payment
// carries the provider's error message.
func (s *paymentService) InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest, callback portssvc.PaymentCallback) (*domain.PaymentRequest, error) {
	if !req.Method.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, req.Method)
	}
	if !req.Method.RequiresReconciliation() {
		return nil, fmt.Errorf("%w: %s", ErrNoReconciliation, req.Method)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	provider, ok := s.providers[req.Method]
	if !ok {
		return nil, fmt.Errorf("%w: no provider configured for %s", ErrUnsupportedMethod, req.Method)
	}

	payment := domain.PaymentRequest{
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		Method:      req.Method,
		Email:       req.Email,
		Description: req.Description,
		Status:      domain.PaymentProcessing,
		InitiatedAt: time.Now().UTC(),
	}

	if req.Method == domain.MethodMpesa {
		normalized, err := phone.NormalizeKenyan(req.PhoneNumber)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		payment.PhoneNumber = normalized
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: order %s already has a payment attempt", apperrors.ErrDuplicate, req.OrderID)
		}
		s.LogError(ctx, err, "Failed to save payment attempt", slog.String("order_id", req.OrderID))
		return nil, err
	}

	ack, err := provider.Initiate(ctx, payment)
	if err != nil {
		// Initiation failure skips pending and goes straight to failed.
		payment.Status = domain.PaymentFailed
		payment.FailureReason = err.Error()
		now := time.Now().UTC()
		payment.CompletedAt = &now
		s.persist(ctx, payment)
		s.LogWarn(ctx, "Payment initiation failed",
			slog.String("order_id", payment.OrderID),
			slog.String("method", string(payment.Method)),
			slog.String("reason", payment.FailureReason))
		if callback != nil {
			callback(false, "")
		}
		return &payment, nil
	}

	payment.TransactionID = ack.TransactionID
	payment.RedirectURL = ack.RedirectURL
	payment.Status = domain.PaymentPending
	s.persist(ctx, payment)

	attempt := &pendingAttempt{payment: payment, callback: callback}
	// Timer start and map insert happen under the same lock so the expiry
	// goroutine cannot run before the attempt is registered.
	s.mu.Lock()
	attempt.timer = time.AfterFunc(s.pendingTimeout, func() {
		s.expire(ack.TransactionID)
	})
	s.pending[ack.TransactionID] = attempt
	s.mu.Unlock()

	s.LogInfo(ctx, "Payment pending provider confirmation",
		slog.String("order_id", payment.OrderID),
		slog.String("transaction_id", payment.TransactionID),
		slog.String("method", string(payment.Method)))
	return &payment, nil
}

// HandleStatusEvent feeds an asynchronous provider status update into the
// state machine. Events for transaction IDs that are unknown or already
// settled are ignored, which makes duplicate deliveries harmless.
func (s *paymentService) HandleStatusEvent(ctx context.Context, event domain.PaymentStatusEvent) {
	attempt := s.take(event.TransactionID)
	if attempt == nil {
		s.LogDebug(ctx, "Ignoring status event for unknown or settled transaction",
			slog.String("transaction_id", event.TransactionID))
		return
	}
	attempt.timer.Stop()

	payment := attempt.payment
	now := time.Now().UTC()
	payment.CompletedAt = &now
	if event.Succeeded {
		payment.Status = domain.PaymentSuccess
		payment.ReceiptNumber = event.ReceiptNumber
	} else {
		payment.Status = domain.PaymentFailed
		payment.FailureReason = event.FailureReason
		if payment.FailureReason == "" {
			payment.FailureReason = "Payment rejected by provider"
		}
	}
	s.persist(ctx, payment)

	s.LogInfo(ctx, "Payment settled",
		slog.String("transaction_id", payment.TransactionID),
		slog.String("status", string(payment.Status)),
		slog.String("receipt", payment.ReceiptNumber))

	if attempt.callback != nil {
		attempt.callback(event.Succeeded, payment.TransactionID)
	}
}

// CancelListening stops waiting for events on a transaction without firing
// the callback. Used when the POS abandons the payment dialog.
func (s *paymentService) CancelListening(transactionID string) {
	attempt := s.take(transactionID)
	if attempt == nil {
		return
	}
	attempt.timer.Stop()
}

// GetPaymentByOrderID returns the stored state of a payment attempt.
func (s *paymentService) GetPaymentByOrderID(ctx context.Context, orderID string) (*domain.PaymentRequest, error) {
	return s.paymentRepo.FindPaymentByOrderID(ctx, orderID)
}

// expire is the timer path: the pending dwell time elapsed with no status
// event. Losing the race against HandleStatusEvent is fine; take returns
// nil for the loser.
func (s *paymentService) expire(transactionID string) {
	attempt := s.take(transactionID)
	if attempt == nil {
		return
	}

	ctx := context.Background()
	payment := attempt.payment
	payment.Status = domain.PaymentFailed
	payment.FailureReason = TimeoutFailureReason
	now := time.Now().UTC()
	payment.CompletedAt = &now
	s.persist(ctx, payment)

	s.LogWarn(ctx, "Payment timed out waiting for provider confirmation",
		slog.String("transaction_id", transactionID),
		slog.String("order_id", payment.OrderID))

	if attempt.callback != nil {
		attempt.callback(false, "")
	}
}

// take removes and returns the pending attempt for transactionID. Exactly
// one caller gets a non-nil result per attempt; that caller owns the
// terminal transition.
func (s *paymentService) take(transactionID string) *pendingAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt, ok := s.pending[transactionID]
	if !ok {
		return nil
	}
	delete(s.pending, transactionID)
	return attempt
}

// persist updates the stored payment record, logging rather than failing
// on error: the in-memory state machine remains authoritative for callbacks.
func (s *paymentService) persist(ctx context.Context, payment domain.PaymentRequest) {
	if err := s.paymentRepo.UpdatePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to persist payment state",
			slog.String("order_id", payment.OrderID),
			slog.String("status", string(payment.Status)))
	}
}
