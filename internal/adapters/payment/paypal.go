package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portssvc "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/services"
)

// PaypalConfig carries the PayPal REST API credentials and redirect URLs.
type PaypalConfig struct {
	BaseURL      string // e.g. https://api-m.sandbox.paypal.com
	ClientID     string
	ClientSecret string
	CurrencyCode string // e.g. USD
	ReturnURL    string
	CancelURL    string
}

// PaypalProvider creates PayPal checkout orders and translates webhook
// notifications into status events. The customer approves the payment on
// PayPal's site via the redirect URL returned at initiation.
type PaypalProvider struct {
	httpClient *http.Client
	config     PaypalConfig

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPaypalProvider creates a PayPal checkout adapter.
func NewPaypalProvider(httpClient *http.Client, config PaypalConfig) *PaypalProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if config.CurrencyCode == "" {
		config.CurrencyCode = "USD"
	}
	return &PaypalProvider{httpClient: httpClient, config: config}
}

var _ portssvc.PaymentProvider = (*PaypalProvider)(nil)

func (p *PaypalProvider) Method() domain.PaymentMethod {
	return domain.MethodPaypal
}

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalPurchaseUnit struct {
	ReferenceID string       `json:"reference_id"`
	Description string       `json:"description,omitempty"`
	Amount      paypalAmount `json:"amount"`
}

type paypalAppContext struct {
	ReturnURL string `json:"return_url,omitempty"`
	CancelURL string `json:"cancel_url,omitempty"`
}

type paypalOrderRequest struct {
	Intent             string               `json:"intent"`
	PurchaseUnits      []paypalPurchaseUnit `json:"purchase_units"`
	ApplicationContext paypalAppContext     `json:"application_context"`
}

type paypalOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
	Message string `json:"message"`
}

// Initiate creates a checkout order. The returned order ID correlates
// webhook events to this attempt; the redirect URL is where the customer
// approves the payment.
func (p *PaypalProvider) Initiate(ctx context.Context, payment domain.PaymentRequest) (*portssvc.ProviderAck, error) {
	token, err := p.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("paypal auth: %w", err)
	}

	orderReq := paypalOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []paypalPurchaseUnit{{
			ReferenceID: payment.OrderID,
			Description: payment.Description,
			Amount: paypalAmount{
				CurrencyCode: p.config.CurrencyCode,
				Value:        payment.Amount.StringFixed(2),
			},
		}},
		ApplicationContext: paypalAppContext{
			ReturnURL: p.config.ReturnURL,
			CancelURL: p.config.CancelURL,
		},
	}

	body, err := json.Marshal(orderReq)
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.BaseURL+"/v2/checkout/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paypal create order call: %w", err)
	}
	defer resp.Body.Close()

	var orderResp paypalOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return nil, fmt.Errorf("decode order response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paypal rejected order (status %d): %s", resp.StatusCode, orderResp.Message)
	}
	if orderResp.ID == "" {
		return nil, fmt.Errorf("paypal order response missing order id")
	}

	ack := &portssvc.ProviderAck{TransactionID: orderResp.ID}
	for _, link := range orderResp.Links {
		if link.Rel == "approve" || link.Rel == "payer-action" {
			ack.RedirectURL = link.Href
			break
		}
	}
	return ack, nil
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (p *PaypalProvider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.accessToken != "" && time.Now().Before(p.tokenExpiry.Add(-time.Minute)) {
		return p.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(p.config.ClientID, p.config.ClientSecret)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("token call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, body)
	}

	var tokenResp paypalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty token")
	}

	p.accessToken = tokenResp.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return p.accessToken, nil
}

// paypalWebhookEnvelope mirrors the fields of a PayPal webhook event that
// matter for reconciliation.
type paypalWebhookEnvelope struct {
	EventType string `json:"event_type"`
	Resource  struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		StatusDetails struct {
			Reason string `json:"reason"`
		} `json:"status_details"`
		SupplementaryData struct {
			RelatedIDs struct {
				OrderID string `json:"order_id"`
			} `json:"related_ids"`
		} `json:"supplementary_data"`
	} `json:"resource"`
}

// ParsePaypalWebhook translates a raw webhook body into a status event.
// Capture events correlate back to the checkout order through
// supplementary_data; order approval events carry the order ID directly.
func ParsePaypalWebhook(body []byte) (domain.PaymentStatusEvent, error) {
	var envelope paypalWebhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.PaymentStatusEvent{}, fmt.Errorf("decode paypal webhook: %w", err)
	}

	transactionID := envelope.Resource.SupplementaryData.RelatedIDs.OrderID
	if transactionID == "" {
		transactionID = envelope.Resource.ID
	}
	if transactionID == "" {
		return domain.PaymentStatusEvent{}, fmt.Errorf("paypal webhook missing order id")
	}

	event := domain.PaymentStatusEvent{TransactionID: transactionID}
	switch envelope.EventType {
	case "PAYMENT.CAPTURE.COMPLETED", "CHECKOUT.ORDER.COMPLETED":
		event.Succeeded = true
		event.ReceiptNumber = envelope.Resource.ID
	case "PAYMENT.CAPTURE.DENIED", "PAYMENT.CAPTURE.DECLINED":
		event.FailureReason = "Payment declined by PayPal"
		if reason := envelope.Resource.StatusDetails.Reason; reason != "" {
			event.FailureReason = reason
		}
	default:
		return domain.PaymentStatusEvent{}, fmt.Errorf("unhandled paypal event type %q", envelope.EventType)
	}
	return event, nil
}
