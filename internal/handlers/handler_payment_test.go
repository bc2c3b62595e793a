package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/apperrors"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portssvc "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/dto"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/handlers"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/pkg/config"
)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest, callback portssvc.PaymentCallback) (*domain.PaymentRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRequest), args.Error(1)
}
func (m *MockPaymentService) HandleStatusEvent(ctx context.Context, event domain.PaymentStatusEvent) {
	m.Called(ctx, event)
}
func (m *MockPaymentService) CancelListening(transactionID string) {
	m.Called(transactionID)
}
func (m *MockPaymentService) GetPaymentByOrderID(ctx context.Context, orderID string) (*domain.PaymentRequest, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRequest), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PaymentService = (*MockPaymentService)(nil)

// --- Test Suite ---
type PaymentHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPaymentService *MockPaymentService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *PaymentHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pos-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockPaymentService = new(MockPaymentService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger routes
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Payment: suite.mockPaymentService,
	})
}

func (suite *PaymentHandlerTestSuite) authedRequest(method, url string, body []byte) *http.Request {
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("user-1"))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *PaymentHandlerTestSuite) TestInitiatePayment_Accepted() {
	pending := &domain.PaymentRequest{
		OrderID:       "ORD-1001",
		Amount:        decimal.NewFromInt(150),
		Method:        domain.MethodMpesa,
		PhoneNumber:   "254712345678",
		Status:        domain.PaymentPending,
		TransactionID: "ws_CO_1001",
		InitiatedAt:   time.Now(),
	}
	suite.mockPaymentService.On("InitiatePayment",
		mock.Anything,
		mock.MatchedBy(func(req dto.InitiatePaymentRequest) bool {
			return req.OrderID == "ORD-1001" && req.Method == domain.MethodMpesa
		}),
	).Return(pending, nil).Once()

	body, _ := json.Marshal(dto.InitiatePaymentRequest{
		OrderID:     "ORD-1001",
		Amount:      decimal.NewFromInt(150),
		Method:      domain.MethodMpesa,
		PhoneNumber: "0712345678",
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/payments", body))

	suite.Equal(http.StatusAccepted, w.Code)
	var resp dto.PaymentResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("ORD-1001", resp.OrderID)
	suite.Equal(domain.PaymentPending, resp.Status)
	suite.Equal("ws_CO_1001", resp.TransactionID)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestInitiatePayment_UnknownMethodRejectedByBinding() {
	body := []byte(`{"orderID":"ORD-1002","amount":"100","method":"bitcoin"}`)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/payments", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "InitiatePayment")
}

func (suite *PaymentHandlerTestSuite) TestInitiatePayment_DuplicateOrderConflict() {
	suite.mockPaymentService.On("InitiatePayment", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrDuplicate).Once()

	body, _ := json.Marshal(dto.InitiatePaymentRequest{
		OrderID:     "ORD-1001",
		Amount:      decimal.NewFromInt(150),
		Method:      domain.MethodMpesa,
		PhoneNumber: "0712345678",
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/payments", body))

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *PaymentHandlerTestSuite) TestInitiatePayment_Unauthorized() {
	body, _ := json.Marshal(dto.InitiatePaymentRequest{
		OrderID: "ORD-1003",
		Amount:  decimal.NewFromInt(150),
		Method:  domain.MethodMpesa,
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(body))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "InitiatePayment")
}

func (suite *PaymentHandlerTestSuite) TestGetPayment_NotFound() {
	suite.mockPaymentService.On("GetPaymentByOrderID", mock.Anything, "ORD-MISSING").
		Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/payments/ORD-MISSING", nil))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PaymentHandlerTestSuite) TestMpesaCallback_SuccessEventForwarded() {
	suite.mockPaymentService.On("HandleStatusEvent", mock.Anything, domain.PaymentStatusEvent{
		TransactionID: "ws_CO_1001",
		Succeeded:     true,
		ReceiptNumber: "NLJ7RT61SV",
	}).Once()

	// Daraja STK callbacks are unauthenticated; no bearer token here.
	body := []byte(`{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "29115-34620561-1",
				"CheckoutRequestID": "ws_CO_1001",
				"ResultCode": 0,
				"ResultDesc": "The service request is processed successfully.",
				"CallbackMetadata": {
					"Item": [
						{"Name": "Amount", "Value": 150.00},
						{"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
						{"Name": "PhoneNumber", "Value": 254712345678}
					]
				}
			}
		}
	}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/payments/mpesa/callback", bytes.NewReader(body))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestMpesaCallback_MalformedRejected() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/payments/mpesa/callback", bytes.NewReader([]byte(`{"Body":{}}`)))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "HandleStatusEvent")
}

func (suite *PaymentHandlerTestSuite) TestPaypalWebhook_CaptureCompletedForwarded() {
	suite.mockPaymentService.On("HandleStatusEvent", mock.Anything, mock.MatchedBy(func(event domain.PaymentStatusEvent) bool {
		return event.TransactionID == "5O190127TN364715T" && event.Succeeded
	})).Once()

	body := []byte(`{
		"event_type": "PAYMENT.CAPTURE.COMPLETED",
		"resource": {
			"id": "2GG279541U471931P",
			"status": "COMPLETED",
			"supplementary_data": {
				"related_ids": {"order_id": "5O190127TN364715T"}
			}
		}
	}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/payments/paypal/webhook", bytes.NewReader(body))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestCancelListening_NoContent() {
	suite.mockPaymentService.On("CancelListening", "ws_CO_1001").Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, "/api/v1/payments/listeners/ws_CO_1001", nil))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPaymentHandler(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}
