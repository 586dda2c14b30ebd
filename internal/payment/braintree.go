package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Braintree GraphQL endpoints
const (
	SandboxEndpoint    = "https://payments.sandbox.braintree-api.com/graphql"
	ProductionEndpoint = "https://payments.braintree-api.com/graphql"
	apiVersion         = "2019-01-01"
)

const createClientTokenMutation = `mutation CreateClientToken($input: CreateClientTokenInput) {
  createClientToken(input: $input) { clientToken }
}`

const chargeMutation = `mutation ChargePaymentMethod($input: ChargePaymentMethodInput!) {
  chargePaymentMethod(input: $input) {
    transaction { id legacyId status orderId createdAt amount { value currencyCode } }
  }
}`

const authorizeMutation = `mutation AuthorizePaymentMethod($input: AuthorizePaymentMethodInput!) {
  authorizePaymentMethod(input: $input) {
    transaction { id legacyId status orderId createdAt amount { value currencyCode } }
  }
}`

// failedStatuses are transaction statuses that mean no money moved
var failedStatuses = map[string]bool{
	"FAILED":              true,
	"GATEWAY_REJECTED":    true,
	"PROCESSOR_DECLINED":  true,
	"SETTLEMENT_DECLINED": true,
	"VOIDED":              true,
}

// BraintreeConfig holds merchant credentials
type BraintreeConfig struct {
	Environment string // "sandbox" or "production"
	Endpoint    string // Overrides the environment endpoint when set
	MerchantID  string
	PublicKey   string
	PrivateKey  string
	Timeout     time.Duration
}

// Braintree is a Gateway backed by the Braintree GraphQL API
type Braintree struct {
	endpoint   string
	auth       string
	merchantID string
	client     *http.Client
}

// NewBraintree creates a Braintree gateway client
func NewBraintree(cfg BraintreeConfig) *Braintree {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = SandboxEndpoint
		if cfg.Environment == "production" {
			endpoint = ProductionEndpoint
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Braintree{
		endpoint:   endpoint,
		auth:       "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.PublicKey+":"+cfg.PrivateKey)),
		merchantID: cfg.MerchantID,
		client:     &http.Client{Timeout: timeout},
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		ErrorClass string `json:"errorClass"`
		LegacyCode string `json:"legacyCode"`
	} `json:"extensions"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type transactionPayload struct {
	Transaction *struct {
		ID        string `json:"id"`
		LegacyID  string `json:"legacyId"`
		Status    string `json:"status"`
		OrderID   string `json:"orderId"`
		CreatedAt string `json:"createdAt"`
		Amount    struct {
			Value        string `json:"value"`
			CurrencyCode string `json:"currencyCode"`
		} `json:"amount"`
	} `json:"transaction"`
}

// ClientToken implements Gateway
func (b *Braintree) ClientToken(ctx context.Context) (*ClientToken, error) {
	input := map[string]any{}
	if b.merchantID != "" {
		input["clientToken"] = map[string]any{"merchantAccountId": b.merchantID}
	}
	var data struct {
		CreateClientToken struct {
			ClientToken string `json:"clientToken"`
		} `json:"createClientToken"`
	}
	if err := b.do(ctx, createClientTokenMutation, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	return &ClientToken{ClientToken: data.CreateClientToken.ClientToken, Success: true}, nil
}

// Sale implements Gateway
func (b *Braintree) Sale(ctx context.Context, req SaleRequest) (*Transaction, error) {
	query, field := authorizeMutation, "authorizePaymentMethod"
	if req.SubmitForSettlement {
		query, field = chargeMutation, "chargePaymentMethod"
	}
	input := map[string]any{
		"paymentMethodId": req.Nonce,
		"transaction": map[string]any{
			"amount":  req.Amount.StringFixed(2),
			"orderId": req.OrderID,
		},
	}
	var data map[string]transactionPayload
	if err := b.do(ctx, query, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	payload, ok := data[field]
	if !ok || payload.Transaction == nil {
		return nil, fmt.Errorf("braintree: %s returned no transaction", field)
	}
	t := payload.Transaction
	if failedStatuses[t.Status] {
		return nil, &Error{Message: "Transaction " + t.Status, Status: t.Status}
	}
	amount, err := parseAmount(t.Amount.Value)
	if err != nil {
		return nil, fmt.Errorf("braintree: %w", err)
	}
	return &Transaction{
		ID:           t.ID,
		LegacyID:     t.LegacyID,
		Status:       t.Status,
		Amount:       amount,
		CurrencyCode: t.Amount.CurrencyCode,
		OrderID:      t.OrderID,
		CreatedAt:    t.CreatedAt,
		Success:      true,
	}, nil
}

// do posts one GraphQL operation and decodes its data into out
func (b *Braintree) do(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("braintree: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("braintree: build request: %w", err)
	}
	req.Header.Set("Authorization", b.auth)
	req.Header.Set("Braintree-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("braintree: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("braintree: read response: %w", err)
	}
	var gql graphQLResponse
	if err := json.Unmarshal(raw, &gql); err != nil {
		return fmt.Errorf("braintree: unexpected response (HTTP %d): %w", resp.StatusCode, err)
	}
	if len(gql.Errors) > 0 {
		first := gql.Errors[0]
		return &Error{
			Message: first.Message,
			Class:   first.Extensions.ErrorClass,
			Code:    first.Extensions.LegacyCode,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("braintree: unexpected HTTP status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(gql.Data, out); err != nil {
		return fmt.Errorf("braintree: decode data: %w", err)
	}
	return nil
}

func parseAmount(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}
