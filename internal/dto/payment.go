package dto

import (
	"time"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InitiatePaymentRequest defines the data needed to start a payment attempt.
// PhoneNumber is required for mpesa and may be in any accepted Kenyan format;
// it is normalized before initiation. Email is optional and only used by
// paypal.
type InitiatePaymentRequest struct {
	OrderID     string               `json:"orderID" binding:"required"`
	Amount      decimal.Decimal      `json:"amount" binding:"required"`
	Method      domain.PaymentMethod `json:"method" binding:"required,paymentmethod"`
	PhoneNumber string               `json:"phoneNumber"`
	Email       string               `json:"email" binding:"omitempty,email"`
	Description string               `json:"description"`
}

// PaymentResponse defines the data returned for a payment attempt.
type PaymentResponse struct {
	OrderID       string               `json:"orderID"`
	Amount        decimal.Decimal      `json:"amount"`
	Method        domain.PaymentMethod `json:"method"`
	PhoneNumber   string               `json:"phoneNumber,omitempty"`
	Status        domain.PaymentStatus `json:"status"`
	TransactionID string               `json:"transactionID,omitempty"`
	ReceiptNumber string               `json:"receiptNumber,omitempty"`
	FailureReason string               `json:"failureReason,omitempty"`
	RedirectURL   string               `json:"redirectURL,omitempty"`
	InitiatedAt   time.Time            `json:"initiatedAt"`
	CompletedAt   *time.Time           `json:"completedAt,omitempty"`
}

// ToPaymentResponse converts a domain.PaymentRequest to its DTO.
func ToPaymentResponse(p *domain.PaymentRequest) PaymentResponse {
	return PaymentResponse{
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		Method:        p.Method,
		PhoneNumber:   p.PhoneNumber,
		Status:        p.Status,
		TransactionID: p.TransactionID,
		ReceiptNumber: p.ReceiptNumber,
		FailureReason: p.FailureReason,
		RedirectURL:   p.RedirectURL,
		InitiatedAt:   p.InitiatedAt,
		CompletedAt:   p.CompletedAt,
	}
}
