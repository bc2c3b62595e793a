package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	paymentadapter "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/adapters/payment"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/apperrors"
	portssvc "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/dto"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/middleware"
)

// paymentHandler handles HTTP requests related to payment attempts.
type paymentHandler struct {
	paymentService portssvc.PaymentService
}

// registerPaymentRoutes registers the authenticated payment routes.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentService) {
	h := &paymentHandler{paymentService: paymentService}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.initiatePayment)
		payments.GET("/:orderID", h.getPayment)
		payments.DELETE("/listeners/:transactionID", h.cancelListening)
	}
}

// registerProviderCallbackRoutes registers the public gateway callback
// routes. Gateways cannot send bearer tokens; events are correlated by
// transaction ID and unknown IDs are ignored, so these stay unauthenticated.
func registerProviderCallbackRoutes(r *gin.Engine, paymentService portssvc.PaymentService) {
	h := &paymentHandler{paymentService: paymentService}

	callbacks := r.Group("/api/v1/payments")
	{
		callbacks.POST("/mpesa/callback", h.mpesaCallback)
		callbacks.POST("/paypal/webhook", h.paypalWebhook)
	}
}

// initiatePayment godoc
// @Summary Initiate a payment
// @Description Starts an asynchronous payment attempt (mpesa or paypal) and returns its state after provider initiation
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.InitiatePaymentRequest true "Payment details"
// @Success 202 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Validation error (bad phone number, amount, or method)"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Order already has a payment attempt"
// @Failure 500 {object} map[string]string "Failed to initiate payment"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) initiatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for InitiatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// The terminal outcome is also persisted; this callback just closes the
	// loop in the logs for operators tailing them.
	callback := func(success bool, transactionID string) {
		logger.Info("Payment reached terminal state",
			slog.String("order_id", req.OrderID),
			slog.String("transaction_id", transactionID),
			slog.Bool("success", success))
	}

	payment, err := h.paymentService.InitiatePayment(c.Request.Context(), req, callback)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, services.ErrUnsupportedMethod),
			errors.Is(err, services.ErrNoReconciliation):
			logger.Warn("Payment initiation rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to initiate payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate payment"})
		}
		return
	}

	c.JSON(http.StatusAccepted, dto.ToPaymentResponse(payment))
}

// getPayment godoc
// @Summary Get a payment attempt by order ID
// @Description Returns the stored state of a payment attempt
// @Tags payments
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment"
// @Security BearerAuth
// @Router /payments/{orderID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	payment, err := h.paymentService.GetPaymentByOrderID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		} else {
			logger.Error("Failed to get payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// cancelListening godoc
// @Summary Stop waiting for a payment's status events
// @Description Stops the reconciliation listener for a transaction without failing the stored attempt; used when the till abandons the payment dialog
// @Tags payments
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "No content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /payments/listeners/{transactionID} [delete]
func (h *paymentHandler) cancelListening(c *gin.Context) {
	h.paymentService.CancelListening(c.Param("transactionID"))
	c.Status(http.StatusNoContent)
}

// mpesaCallback godoc
// @Summary M-Pesa STK push result callback
// @Description Receives Daraja STK push results; duplicate or late deliveries are acknowledged and ignored
// @Tags payments
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Malformed callback body"
// @Router /payments/mpesa/callback [post]
func (h *paymentHandler) mpesaCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read callback body"})
		return
	}

	event, err := paymentadapter.ParseMpesaCallback(body)
	if err != nil {
		logger.Warn("Malformed M-Pesa callback", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed callback"})
		return
	}

	h.paymentService.HandleStatusEvent(c.Request.Context(), event)

	// Daraja expects this acknowledgment shape.
	c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
}

// paypalWebhook godoc
// @Summary PayPal webhook receiver
// @Description Receives PayPal capture events; unrelated event types are acknowledged without processing
// @Tags payments
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Malformed webhook body"
// @Router /payments/paypal/webhook [post]
func (h *paymentHandler) paypalWebhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read webhook body"})
		return
	}

	event, err := paymentadapter.ParsePaypalWebhook(body)
	if err != nil {
		// Unknown event types are fine; acknowledge so PayPal stops retrying.
		logger.Debug("Ignoring PayPal webhook", slog.String("reason", err.Error()))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	h.paymentService.HandleStatusEvent(c.Request.Context(), event)
	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}
