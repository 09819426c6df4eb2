package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mahbubzaman/gobazaar/app/configs"
	"github.com/shopspring/decimal"
)

const bkashSuccessStatusCode = "0000"
const bkashCompletedTransactionStatus = "Completed"

// AuthError means the gateway rejected our credentials or the token grant
// never reached it. Fatal for the checkout attempt, never retried.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bkash auth: %s: %v", e.Message, e.Err)
	}
	return "bkash auth: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// GatewayError carries the gateway's own status message when it sent one.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string { return "bkash gateway: " + e.Message }

type BkashPayment struct {
	PaymentID   string
	RedirectURL string
}

type BkashExecution struct {
	PaymentID         string
	TrxID             string
	StatusCode        string
	StatusMessage     string
	TransactionStatus string
}

type BkashClient interface {
	GrantToken(ctx context.Context) (string, error)
	CreatePayment(ctx context.Context, token string, amount decimal.Decimal, invoiceNumber string) (*BkashPayment, error)
	ExecutePayment(ctx context.Context, token, paymentID string) (*BkashExecution, error)
}

type bkashClient struct {
	cfg         configs.BkashConfig
	callbackURL string
	httpClient  *http.Client
}

func NewBkashClient(cfg configs.BkashConfig, callbackURL string) BkashClient {
	return &bkashClient{
		cfg:         cfg,
		callbackURL: callbackURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

type bkashTokenResponse struct {
	IDToken       string `json:"id_token"`
	TokenType     string `json:"token_type"`
	ExpiresIn     int    `json:"expires_in"`
	StatusCode    string `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
}

type bkashCreateResponse struct {
	PaymentID     string `json:"paymentID"`
	BkashURL      string `json:"bkashURL"`
	StatusCode    string `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
}

type bkashExecuteResponse struct {
	PaymentID         string `json:"paymentID"`
	TrxID             string `json:"trxID"`
	TransactionStatus string `json:"transactionStatus"`
	StatusCode        string `json:"statusCode"`
	StatusMessage     string `json:"statusMessage"`
}

func (c *bkashClient) postJSON(ctx context.Context, url string, token string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode bkash request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build bkash request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
		req.Header.Set("X-APP-Key", c.cfg.AppKey)
	} else {
		req.Header.Set("username", c.cfg.Username)
		req.Header.Set("password", c.cfg.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach bkash: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read bkash response: %w", err)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse bkash response (%d): %w", resp.StatusCode, err)
	}

	return nil
}

// GrantToken exchanges the configured credentials for a bearer token.
func (c *bkashClient) GrantToken(ctx context.Context) (string, error) {
	payload := map[string]string{
		"app_key":    c.cfg.AppKey,
		"app_secret": c.cfg.AppSecret,
	}

	var resp bkashTokenResponse
	if err := c.postJSON(ctx, c.cfg.BaseURL+"/token/grant", "", payload, &resp); err != nil {
		return "", &AuthError{Message: "token grant failed", Err: err}
	}

	if resp.IDToken == "" {
		message := resp.StatusMessage
		if message == "" {
			message = "credentials rejected by gateway"
		}
		return "", &AuthError{Message: message}
	}

	return resp.IDToken, nil
}

// CreatePayment opens a payment session for the given amount and merchant
// invoice number. The returned redirect URL is where the customer completes
// the payment before the gateway calls back.
func (c *bkashClient) CreatePayment(ctx context.Context, token string, amount decimal.Decimal, invoiceNumber string) (*BkashPayment, error) {
	payload := map[string]string{
		"mode":                  "0011",
		"payerReference":        invoiceNumber,
		"callbackURL":           c.callbackURL,
		"amount":                amount.StringFixed(2),
		"currency":              "BDT",
		"intent":                "sale",
		"merchantInvoiceNumber": invoiceNumber,
	}

	var resp bkashCreateResponse
	if err := c.postJSON(ctx, c.cfg.BaseURL+"/create", token, payload, &resp); err != nil {
		return nil, &GatewayError{Message: err.Error()}
	}

	if resp.PaymentID == "" || resp.BkashURL == "" {
		message := resp.StatusMessage
		if message == "" {
			message = "gateway response missing paymentID or redirect URL"
		}
		return nil, &GatewayError{Message: message}
	}

	return &BkashPayment{
		PaymentID:   resp.PaymentID,
		RedirectURL: resp.BkashURL,
	}, nil
}

// ExecutePayment confirms a created payment. It succeeds only when the
// gateway reports status code "0000" and transaction status "Completed";
// every other combination is a failure.
func (c *bkashClient) ExecutePayment(ctx context.Context, token, paymentID string) (*BkashExecution, error) {
	payload := map[string]string{
		"paymentID": paymentID,
	}

	var resp bkashExecuteResponse
	if err := c.postJSON(ctx, c.cfg.BaseURL+"/execute", token, payload, &resp); err != nil {
		return nil, &GatewayError{Message: err.Error()}
	}

	if resp.StatusCode != bkashSuccessStatusCode || resp.TransactionStatus != bkashCompletedTransactionStatus {
		message := resp.StatusMessage
		if message == "" {
			message = "payment was not completed"
		}
		return nil, &GatewayError{Message: message}
	}

	return &BkashExecution{
		PaymentID:         resp.PaymentID,
		TrxID:             resp.TrxID,
		StatusCode:        resp.StatusCode,
		StatusMessage:     resp.StatusMessage,
		TransactionStatus: resp.TransactionStatus,
	}, nil
}
