package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
)

func TestPaypalInitiate_ReturnsOrderIDAndApproveLink(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"pp-token","expires_in":32400}`))
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer pp-token", r.Header.Get("Authorization"))
		var orderReq paypalOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&orderReq))
		assert.Equal(t, "CAPTURE", orderReq.Intent)
		require.Len(t, orderReq.PurchaseUnits, 1)
		assert.Equal(t, "ORD-1001", orderReq.PurchaseUnits[0].ReferenceID)
		assert.Equal(t, "19.99", orderReq.PurchaseUnits[0].Amount.Value)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"5O190127TN364715T","status":"CREATED","links":[
			{"href":"https://api-m.sandbox.paypal.com/v2/checkout/orders/5O190127TN364715T","rel":"self"},
			{"href":"https://www.sandbox.paypal.com/checkoutnow?token=5O190127TN364715T","rel":"approve"}]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	provider := NewPaypalProvider(server.Client(), PaypalConfig{
		BaseURL:      server.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})

	ack, err := provider.Initiate(context.Background(), domain.PaymentRequest{
		OrderID: "ORD-1001",
		Amount:  decimal.RequireFromString("19.99"),
		Method:  domain.MethodPaypal,
	})

	require.NoError(t, err)
	assert.Equal(t, "5O190127TN364715T", ack.TransactionID)
	assert.Contains(t, ack.RedirectURL, "checkoutnow")
}

func TestParsePaypalWebhook_CaptureCompleted(t *testing.T) {
	body := []byte(`{"event_type":"PAYMENT.CAPTURE.COMPLETED","resource":{
		"id":"3C679366HH908993F",
		"status":"COMPLETED",
		"supplementary_data":{"related_ids":{"order_id":"5O190127TN364715T"}}}}`)

	event, err := ParsePaypalWebhook(body)

	require.NoError(t, err)
	assert.Equal(t, "5O190127TN364715T", event.TransactionID, "capture correlates back to the checkout order")
	assert.True(t, event.Succeeded)
	assert.Equal(t, "3C679366HH908993F", event.ReceiptNumber)
}

func TestParsePaypalWebhook_CaptureDenied(t *testing.T) {
	body := []byte(`{"event_type":"PAYMENT.CAPTURE.DENIED","resource":{
		"id":"3C679366HH908993F",
		"status":"DECLINED",
		"status_details":{"reason":"TRANSACTION_LIMIT_EXCEEDED"},
		"supplementary_data":{"related_ids":{"order_id":"5O190127TN364715T"}}}}`)

	event, err := ParsePaypalWebhook(body)

	require.NoError(t, err)
	assert.False(t, event.Succeeded)
	assert.Equal(t, "TRANSACTION_LIMIT_EXCEEDED", event.FailureReason)
}

func TestParsePaypalWebhook_UnhandledEventType(t *testing.T) {
	body := []byte(`{"event_type":"CUSTOMER.DISPUTE.CREATED","resource":{"id":"X"}}`)

	_, err := ParsePaypalWebhook(body)

	require.Error(t, err)
}
