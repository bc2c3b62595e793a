package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portssvc "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/services"
)

// MpesaConfig carries the Daraja API credentials and endpoints.
type MpesaConfig struct {
	BaseURL        string // e.g. https://sandbox.safaricom.co.ke
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	CallbackURL    string // Public URL Daraja posts STK results to
}

// MpesaProvider initiates STK push payments through the Safaricom Daraja
// API and translates its callbacks into status events.
type MpesaProvider struct {
	httpClient *http.Client
	config     MpesaConfig

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewMpesaProvider creates a Daraja STK push adapter.
func NewMpesaProvider(httpClient *http.Client, config MpesaConfig) *MpesaProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &MpesaProvider{httpClient: httpClient, config: config}
}

var _ portssvc.PaymentProvider = (*MpesaProvider)(nil)

func (p *MpesaProvider) Method() domain.PaymentMethod {
	return domain.MethodMpesa
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            string `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
	ErrorCode           string `json:"errorCode"`
	ErrorMessage        string `json:"errorMessage"`
}

// Initiate sends an STK push prompt to the customer's phone. The returned
// CheckoutRequestID correlates the eventual callback to this attempt.
func (p *MpesaProvider) Initiate(ctx context.Context, payment domain.PaymentRequest) (*portssvc.ProviderAck, error) {
	token, err := p.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("daraja auth: %w", err)
	}

	timestamp := time.Now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString(
		[]byte(p.config.ShortCode + p.config.Passkey + timestamp))

	desc := payment.Description
	if desc == "" {
		desc = "POS payment"
	}
	req := stkPushRequest{
		BusinessShortCode: p.config.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		// Daraja takes whole shillings only.
		Amount:           payment.Amount.Ceil().String(),
		PartyA:           payment.PhoneNumber,
		PartyB:           p.config.ShortCode,
		PhoneNumber:      payment.PhoneNumber,
		CallBackURL:      p.config.CallbackURL,
		AccountReference: payment.OrderID,
		TransactionDesc:  desc,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal stk push request: %w", err)
	}

	url := p.config.BaseURL + "/mpesa/stkpush/v1/processrequest"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create stk push request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("daraja stk push call: %w", err)
	}
	defer resp.Body.Close()

	var stkResp stkPushResponse
	if err := json.NewDecoder(resp.Body).Decode(&stkResp); err != nil {
		return nil, fmt.Errorf("decode stk push response (status %d): %w", resp.StatusCode, err)
	}
	if stkResp.ErrorCode != "" {
		return nil, fmt.Errorf("daraja: %s %s", stkResp.ErrorCode, stkResp.ErrorMessage)
	}
	if stkResp.ResponseCode != "0" {
		return nil, fmt.Errorf("daraja rejected stk push: %s", stkResp.ResponseDescription)
	}

	return &portssvc.ProviderAck{TransactionID: stkResp.CheckoutRequestID}, nil
}

type darajaTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// token returns a cached OAuth access token, refreshing it when it is
// within a minute of expiry.
func (p *MpesaProvider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.accessToken != "" && time.Now().Before(p.tokenExpiry.Add(-time.Minute)) {
		return p.accessToken, nil
	}

	url := p.config.BaseURL + "/oauth/v1/generate?grant_type=client_credentials"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	httpReq.SetBasicAuth(p.config.ConsumerKey, p.config.ConsumerSecret)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("token call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, body)
	}

	var tokenResp darajaTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty token")
	}

	ttl := time.Hour // Daraja tokens last 3599s; fall back to an hour
	if secs, convErr := time.ParseDuration(tokenResp.ExpiresIn + "s"); convErr == nil {
		ttl = secs
	}
	p.accessToken = tokenResp.AccessToken
	p.tokenExpiry = time.Now().Add(ttl)
	return p.accessToken, nil
}

// stkCallbackEnvelope mirrors the Daraja STK result payload.
type stkCallbackEnvelope struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// ParseMpesaCallback translates a raw Daraja STK callback body into a
// status event. ResultCode 0 is success; anything else carries the
// gateway's human-readable reason (e.g. "Request cancelled by user").
func ParseMpesaCallback(body []byte) (domain.PaymentStatusEvent, error) {
	var envelope stkCallbackEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.PaymentStatusEvent{}, fmt.Errorf("decode stk callback: %w", err)
	}
	cb := envelope.Body.StkCallback
	if cb.CheckoutRequestID == "" {
		return domain.PaymentStatusEvent{}, fmt.Errorf("stk callback missing CheckoutRequestID")
	}

	event := domain.PaymentStatusEvent{
		TransactionID: cb.CheckoutRequestID,
		Succeeded:     cb.ResultCode == 0,
	}
	if event.Succeeded {
		for _, item := range cb.CallbackMetadata.Item {
			if item.Name == "MpesaReceiptNumber" {
				if receipt, ok := item.Value.(string); ok {
					event.ReceiptNumber = receipt
				}
			}
		}
	} else {
		event.FailureReason = cb.ResultDesc
	}
	return event, nil
}
