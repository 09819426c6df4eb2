package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahbubzaman/gobazaar/app/configs"
)

func newTestBkashClient(t *testing.T, handler http.HandlerFunc) BkashClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := configs.BkashConfig{
		BaseURL:   server.URL,
		Username:  "sandbox-user",
		Password:  "sandbox-pass",
		AppKey:    "app-key",
		AppSecret: "app-secret",
	}
	return NewBkashClient(cfg, "http://localhost:8080/checkout/payment/callback")
}

func TestGrantTokenSuccess(t *testing.T) {
	client := newTestBkashClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token/grant", r.URL.Path)
		assert.Equal(t, "sandbox-user", r.Header.Get("username"))
		assert.Equal(t, "sandbox-pass", r.Header.Get("password"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "app-key", payload["app_key"])
		assert.Equal(t, "app-secret", payload["app_secret"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id_token":   "token-abc",
			"token_type": "Bearer",
			"expires_in": 3600,
		})
	})

	token, err := client.GrantToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-abc", token)
}

func TestGrantTokenRejectedCredentials(t *testing.T) {
	client := newTestBkashClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"statusCode":    "9999",
			"statusMessage": "Invalid App Key",
		})
	})

	_, err := client.GrantToken(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Contains(t, authErr.Error(), "Invalid App Key")
}

func TestGrantTokenUnreachableGateway(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := NewBkashClient(configs.BkashConfig{BaseURL: server.URL}, "http://localhost/cb")

	_, err := client.GrantToken(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	assert.True(t, errors.As(err, &authErr))
}

func TestCreatePaymentSuccess(t *testing.T) {
	client := newTestBkashClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/create", r.URL.Path)
		assert.Equal(t, "token-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "app-key", r.Header.Get("X-APP-Key"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "0011", payload["mode"])
		assert.Equal(t, "2260.00", payload["amount"])
		assert.Equal(t, "BDT", payload["currency"])
		assert.Equal(t, "sale", payload["intent"])
		assert.Equal(t, "INV-20260828-0001", payload["merchantInvoiceNumber"])
		assert.Equal(t, "http://localhost:8080/checkout/payment/callback", payload["callbackURL"])

		json.NewEncoder(w).Encode(map[string]string{
			"paymentID": "TR0011abc",
			"bkashURL":  "https://sandbox.payment.bkash.com/redirect/TR0011abc",
		})
	})

	payment, err := client.CreatePayment(context.Background(), "token-abc", decimal.NewFromInt(2260), "INV-20260828-0001")
	require.NoError(t, err)
	assert.Equal(t, "TR0011abc", payment.PaymentID)
	assert.Contains(t, payment.RedirectURL, "TR0011abc")
}

func TestCreatePaymentMissingPaymentID(t *testing.T) {
	client := newTestBkashClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"statusCode":    "2054",
			"statusMessage": "Invalid amount",
		})
	})

	_, err := client.CreatePayment(context.Background(), "token-abc", decimal.NewFromInt(100), "INV-X")
	require.Error(t, err)

	var gwErr *GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Contains(t, gwErr.Error(), "Invalid amount")
}

func TestExecutePaymentCompleted(t *testing.T) {
	client := newTestBkashClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/execute", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "TR0011abc", payload["paymentID"])

		json.NewEncoder(w).Encode(map[string]string{
			"paymentID":         "TR0011abc",
			"trxID":             "9BC123XYZ",
			"transactionStatus": "Completed",
			"statusCode":        "0000",
			"statusMessage":     "Successful",
		})
	})

	execution, err := client.ExecutePayment(context.Background(), "token-abc", "TR0011abc")
	require.NoError(t, err)
	assert.Equal(t, "9BC123XYZ", execution.TrxID)
	assert.Equal(t, "Completed", execution.TransactionStatus)
}

// A 200 response with any status combination other than code 0000 plus
// Completed must be treated as a failed payment.
func TestExecutePaymentNotCompleted(t *testing.T) {
	cases := []struct {
		name              string
		statusCode        string
		transactionStatus string
	}{
		{"wrong status code", "2062", "Completed"},
		{"initiated but not completed", "0000", "Initiated"},
		{"both wrong", "2117", "Failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestBkashClient(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{
					"paymentID":         "TR0011abc",
					"transactionStatus": tc.transactionStatus,
					"statusCode":        tc.statusCode,
					"statusMessage":     "The payment was not completed",
				})
			})

			_, err := client.ExecutePayment(context.Background(), "token-abc", "TR0011abc")
			require.Error(t, err)

			var gwErr *GatewayError
			require.True(t, errors.As(err, &gwErr))
			assert.Contains(t, gwErr.Error(), "The payment was not completed")
		})
	}
}
