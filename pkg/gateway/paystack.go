// Package gateway verifies third-party payment references before settlement.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// PaystackClient verifies transaction references against the Paystack API.
type PaystackClient struct {
	baseURL   string
	secretKey string
	httpc     *http.Client
}

func NewPaystackClient(baseURL, secretKey string) *PaystackClient {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &PaystackClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpc:     &http.Client{Timeout: 30 * time.Second},
	}
}

// VerifyResult is the normalized verification outcome. Amount is in major
// currency units (Paystack reports kobo/cents).
type VerifyResult struct {
	Success   bool
	Amount    decimal.Decimal
	Currency  string
	Reference string
}

type verifyResp struct {
	Status bool `json:"status"`
	Data   struct {
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		Reference string `json:"reference"`
	} `json:"data"`
}

func (c *PaystackClient) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack verify: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paystack verify failed: %d", resp.StatusCode)
	}
	var out verifyResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("paystack verify: decode: %w", err)
	}
	return &VerifyResult{
		Success:   out.Status && out.Data.Status == "success",
		Amount:    decimal.NewFromInt(out.Data.Amount).Div(decimal.NewFromInt(100)),
		Currency:  out.Data.Currency,
		Reference: out.Data.Reference,
	}, nil
}
