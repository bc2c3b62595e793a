package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/apperrors"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portsrepo "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/repositories"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment attempts.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepository {
	return &PgxPaymentRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

const paymentColumns = `order_id, amount, method, phone_number, email, description, transaction_id, status, receipt_number, failure_reason, redirect_url, initiated_at, completed_at`

func scanPayment(row pgx.Row) (domain.PaymentRequest, error) {
	var p domain.PaymentRequest
	var completedAt sql.NullTime
	err := row.Scan(
		&p.OrderID,
		&p.Amount,
		&p.Method,
		&p.PhoneNumber,
		&p.Email,
		&p.Description,
		&p.TransactionID,
		&p.Status,
		&p.ReceiptNumber,
		&p.FailureReason,
		&p.RedirectURL,
		&p.InitiatedAt,
		&completedAt,
	)
	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}
	return p, err
}

// SavePayment inserts a new payment attempt. A second attempt for the same
// order returns apperrors.ErrDuplicate.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.PaymentRequest) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		payment.OrderID,
		payment.Amount,
		payment.Method,
		payment.PhoneNumber,
		payment.Email,
		payment.Description,
		payment.TransactionID,
		payment.Status,
		payment.ReceiptNumber,
		payment.FailureReason,
		payment.RedirectURL,
		payment.InitiatedAt,
		payment.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payment for order %s already exists", apperrors.ErrDuplicate, payment.OrderID)
		}
		return fmt.Errorf("failed to save payment for order %s: %w", payment.OrderID, err)
	}
	return nil
}

// UpdatePayment persists the current state of an attempt, keyed by order ID.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.PaymentRequest) error {
	query := `
		UPDATE payments
		SET transaction_id = $2, status = $3, receipt_number = $4, failure_reason = $5, redirect_url = $6, completed_at = $7
		WHERE order_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		payment.OrderID,
		payment.TransactionID,
		payment.Status,
		payment.ReceiptNumber,
		payment.FailureReason,
		payment.RedirectURL,
		payment.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment for order %s: %w", payment.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPaymentByOrderID retrieves an attempt by the caller's correlation key.
func (r *PgxPaymentRepository) FindPaymentByOrderID(ctx context.Context, orderID string) (*domain.PaymentRequest, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1;`
	payment, err := scanPayment(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment for order %s: %w", orderID, err)
	}
	return &payment, nil
}

// FindPaymentByTransactionID retrieves an attempt by the provider key.
func (r *PgxPaymentRepository) FindPaymentByTransactionID(ctx context.Context, transactionID string) (*domain.PaymentRequest, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1;`
	payment, err := scanPayment(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment for transaction %s: %w", transactionID, err)
	}
	return &payment, nil
}
