package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
)

func mpesaTestServer(t *testing.T, stkStatus int, stkBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		require.True(t, ok, "token request must use basic auth")
		assert.Equal(t, "test-key", user)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test-token","expires_in":"3599"}`))
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(stkStatus)
		w.Write([]byte(stkBody))
	})
	return httptest.NewServer(mux)
}

func mpesaPayment() domain.PaymentRequest {
	return domain.PaymentRequest{
		OrderID:     "ORD-1001",
		Amount:      decimal.RequireFromString("2500.50"),
		Method:      domain.MethodMpesa,
		PhoneNumber: "254712345678",
		Description: "Business cards x500",
	}
}

func TestMpesaInitiate_ReturnsCheckoutRequestID(t *testing.T) {
	server := mpesaTestServer(t, http.StatusOK,
		`{"MerchantRequestID":"29115-34620561-1","CheckoutRequestID":"ws_CO_191220191020363925","ResponseCode":"0","ResponseDescription":"Success. Request accepted for processing"}`)
	defer server.Close()

	provider := NewMpesaProvider(server.Client(), MpesaConfig{
		BaseURL:        server.URL,
		ConsumerKey:    "test-key",
		ConsumerSecret: "test-secret",
		ShortCode:      "174379",
		Passkey:        "test-passkey",
		CallbackURL:    "https://pos.example/api/v1/payments/mpesa/callback",
	})

	ack, err := provider.Initiate(context.Background(), mpesaPayment())

	require.NoError(t, err)
	assert.Equal(t, "ws_CO_191220191020363925", ack.TransactionID)
	assert.Empty(t, ack.RedirectURL)
}

func TestMpesaInitiate_RejectionIsError(t *testing.T) {
	server := mpesaTestServer(t, http.StatusOK,
		`{"ResponseCode":"1","ResponseDescription":"Invalid PhoneNumber"}`)
	defer server.Close()

	provider := NewMpesaProvider(server.Client(), MpesaConfig{
		BaseURL:     server.URL,
		ConsumerKey: "test-key",
	})

	_, err := provider.Initiate(context.Background(), mpesaPayment())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid PhoneNumber")
}

func TestMpesaInitiate_DarajaErrorBody(t *testing.T) {
	server := mpesaTestServer(t, http.StatusInternalServerError,
		`{"errorCode":"500.001.1001","errorMessage":"Unable to lock subscriber"}`)
	defer server.Close()

	provider := NewMpesaProvider(server.Client(), MpesaConfig{
		BaseURL:     server.URL,
		ConsumerKey: "test-key",
	})

	_, err := provider.Initiate(context.Background(), mpesaPayment())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to lock subscriber")
}

func TestParseMpesaCallback_Success(t *testing.T) {
	body := []byte(`{"Body":{"stkCallback":{
		"MerchantRequestID":"29115-34620561-1",
		"CheckoutRequestID":"ws_CO_191220191020363925",
		"ResultCode":0,
		"ResultDesc":"The service request is processed successfully.",
		"CallbackMetadata":{"Item":[
			{"Name":"Amount","Value":2500},
			{"Name":"MpesaReceiptNumber","Value":"NLJ7RT61SV"},
			{"Name":"PhoneNumber","Value":254712345678}
		]}}}}`)

	event, err := ParseMpesaCallback(body)

	require.NoError(t, err)
	assert.Equal(t, "ws_CO_191220191020363925", event.TransactionID)
	assert.True(t, event.Succeeded)
	assert.Equal(t, "NLJ7RT61SV", event.ReceiptNumber)
}

func TestParseMpesaCallback_Cancelled(t *testing.T) {
	body := []byte(`{"Body":{"stkCallback":{
		"CheckoutRequestID":"ws_CO_191220191020363925",
		"ResultCode":1032,
		"ResultDesc":"Request cancelled by user"}}}`)

	event, err := ParseMpesaCallback(body)

	require.NoError(t, err)
	assert.False(t, event.Succeeded)
	assert.Equal(t, "Request cancelled by user", event.FailureReason)
	assert.Empty(t, event.ReceiptNumber)
}

func TestParseMpesaCallback_Malformed(t *testing.T) {
	_, err := ParseMpesaCallback([]byte(`{"Body":{}}`))
	require.Error(t, err)

	_, err = ParseMpesaCallback([]byte(`not json`))
	require.Error(t, err)
}
