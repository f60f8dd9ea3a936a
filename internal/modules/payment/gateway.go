package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Gateway is the provider-agnostic interface to the external payment network.
// It covers both directions of money movement: collecting a buyer's payment
// and sending payouts to suppliers.
type Gateway interface {
	// InitiateCheckout creates a hosted payment page for an order and returns
	// the redirect URL plus the token identifying the invoice.
	InitiateCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)

	// VerifyCheckout queries the provider for the current status of an invoice.
	VerifyCheckout(ctx context.Context, token string) (*VerifyResult, error)

	// SendPayout transfers money to a mobile-money account. A declined
	// transfer comes back as Success=false with the provider's reason; only
	// transport-level problems surface as an error.
	SendPayout(ctx context.Context, req *PayoutRequest) (*PayoutResult, error)
}

// CheckoutRequest describes the buyer payment to collect.
type CheckoutRequest struct {
	OrderID       string
	Amount        float64
	Description   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// CheckoutSession is the provider's hosted payment page for one invoice.
type CheckoutSession struct {
	PaymentURL string `json:"payment_url"`
	Token      string `json:"token"`
}

// VerifyResult is the provider's view of an invoice.
type VerifyResult struct {
	Status        string `json:"status"` // completed | pending | failed
	TransactionID string `json:"transaction_id,omitempty"`
}

// PayoutRequest describes a transfer to a mobile-money account.
type PayoutRequest struct {
	PhoneNumber string
	Method      string // WAVE | OM
	Amount      float64
	Reference   string
}

// PayoutResult is the outcome of a payout attempt.
type PayoutResult struct {
	Success       bool
	TransactionID string
	Error         string
}

// ── PayDunya adapter ──────────────────────────────────────────────────────────
// PayDunya fronts Wave and Orange Money in Senegal. Checkout invoices come
// from the checkout-invoice API; supplier transfers go through Direct Pay.
// API docs: https://paydunya.com/developers

// PayDunyaConfig holds the API credentials and callback URLs.
type PayDunyaConfig struct {
	BaseURL     string
	MasterKey   string
	PrivateKey  string
	Token       string
	FrontendURL string
	BackendURL  string
	Sandbox     bool
}

type payDunyaGateway struct {
	cfg    PayDunyaConfig
	client *http.Client
}

// NewPayDunyaGateway creates the PayDunya payment gateway adapter.
func NewPayDunyaGateway(cfg PayDunyaConfig) Gateway {
	return &payDunyaGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type payDunyaInvoiceResponse struct {
	ResponseCode  string `json:"response_code"`
	ResponseText  string `json:"response_text"`
	Token         string `json:"token"`
	TransactionID string `json:"transaction_id"`
}

type payDunyaPayoutResponse struct {
	ResponseCode  string `json:"response_code"`
	ResponseText  string `json:"response_text"`
	Status        string `json:"status"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
	ReceiptNumber string `json:"receipt_number"`
}

func (g *payDunyaGateway) InitiateCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than 0")
	}

	if g.cfg.Sandbox {
		token := fmt.Sprintf("sandbox_%d_%s", time.Now().UnixMilli(), req.OrderID)
		return &CheckoutSession{
			PaymentURL: fmt.Sprintf("%s/api/v1/payments/sandbox?token=%s&order_id=%s",
				g.cfg.BackendURL, token, req.OrderID),
			Token: token,
		}, nil
	}

	body := map[string]interface{}{
		"invoice": map[string]interface{}{
			"total_amount": req.Amount,
			"description":  req.Description,
		},
		"store": map[string]string{
			"name":    "Teranga Fil",
			"tagline": "Marketplace de produits crochetés",
		},
		"custom_data": map[string]string{
			"order_id": req.OrderID,
		},
		"actions": map[string]string{
			"cancel_url":   g.cfg.FrontendURL + "/checkout/cancel",
			"return_url":   g.cfg.FrontendURL + "/checkout/success",
			"callback_url": g.cfg.BackendURL + "/api/v1/payments/callback",
		},
	}

	var resp payDunyaInvoiceResponse
	if err := g.post(ctx, "/checkout-invoice/create", body, &resp); err != nil {
		return nil, fmt.Errorf("paydunya checkout creation failed: %w", err)
	}
	if resp.ResponseCode != "00" {
		return nil, fmt.Errorf("paydunya refused checkout: %s", resp.ResponseText)
	}
	return &CheckoutSession{PaymentURL: resp.ResponseText, Token: resp.Token}, nil
}

func (g *payDunyaGateway) VerifyCheckout(ctx context.Context, token string) (*VerifyResult, error) {
	if g.cfg.Sandbox {
		return &VerifyResult{
			Status:        "completed",
			TransactionID: fmt.Sprintf("sandbox_txn_%d", time.Now().UnixMilli()),
		}, nil
	}

	var resp payDunyaInvoiceResponse
	if err := g.get(ctx, "/checkout-invoice/confirm/"+token, &resp); err != nil {
		return &VerifyResult{Status: "failed"}, nil
	}
	switch resp.ResponseCode {
	case "00":
		return &VerifyResult{Status: "completed", TransactionID: resp.TransactionID}, nil
	case "01":
		return &VerifyResult{Status: "pending"}, nil
	default:
		return &VerifyResult{Status: "failed"}, nil
	}
}

func (g *payDunyaGateway) SendPayout(ctx context.Context, req *PayoutRequest) (*PayoutResult, error) {
	if g.cfg.Sandbox {
		return &PayoutResult{
			Success:       true,
			TransactionID: fmt.Sprintf("sandbox_payout_%d", time.Now().UnixMilli()),
		}, nil
	}

	body := map[string]interface{}{
		"account_alias": req.PhoneNumber,
		"amount":        req.Amount,
		"withdraw_mode": withdrawMode(req.Method),
		"description":   req.Reference,
	}

	var resp payDunyaPayoutResponse
	if err := g.post(ctx, "/direct-pay/credit-account", body, &resp); err != nil {
		return nil, fmt.Errorf("paydunya payout call failed: %w", err)
	}

	if resp.ResponseCode == "00" || resp.Status == "success" {
		txID := resp.TransactionID
		if txID == "" {
			txID = resp.ReceiptNumber
		}
		return &PayoutResult{Success: true, TransactionID: txID}, nil
	}

	reason := resp.ResponseText
	if reason == "" {
		reason = resp.Message
	}
	if reason == "" {
		reason = "payout refused by provider"
	}
	return &PayoutResult{Success: false, Error: reason}, nil
}

// withdrawMode maps our payment method names to PayDunya's withdraw modes.
func withdrawMode(method string) string {
	switch method {
	case "WAVE":
		return "wave"
	case "OM":
		return "orange-money-senegal"
	default:
		return "wave"
	}
}

func (g *payDunyaGateway) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	g.setAuthHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

func (g *payDunyaGateway) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	g.setAuthHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

func (g *payDunyaGateway) setAuthHeaders(req *http.Request) {
	req.Header.Set("PAYDUNYA-MASTER-KEY", g.cfg.MasterKey)
	req.Header.Set("PAYDUNYA-PRIVATE-KEY", g.cfg.PrivateKey)
	req.Header.Set("PAYDUNYA-TOKEN", g.cfg.Token)
}
