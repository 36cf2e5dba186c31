// Package activation talks to the BioLite code API, which mints hardware
// unlock codes for financed devices.
package activation

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	// Bearer tokens are issued for about an hour; refresh a little early so
	// an in-flight code request never carries an expired token.
	tokenLifetime = 55 * time.Minute
	refreshSkew   = 5 * time.Minute
)

// Client authenticates with an ES256 signed assertion and caches the
// resulting bearer token process-wide. Concurrent callers hitting an expired
// cache share one re-authentication via singleflight.
type Client struct {
	baseURL   string
	clientKey string
	keyID     string
	signKey   *ecdsa.PrivateKey
	httpc     *http.Client

	group singleflight.Group

	mu       sync.RWMutex
	token    string
	tokenExp time.Time
}

func NewClient(baseURL, clientKey, keyID string, privateKeyPEM []byte, timeout time.Duration) (*Client, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("activation: parse private key: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		clientKey: clientKey,
		keyID:     keyID,
		signKey:   key,
		httpc:     &http.Client{Timeout: timeout},
	}, nil
}

type authReq struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
}

type authResp struct {
	Token string `json:"token"`
}

type codeReq struct {
	SerialNum string `json:"serialNum"`
	CodeType  string `json:"codeType"`
	Arg       int    `json:"arg"`
}

type codeResp struct {
	Code string `json:"code"`
}

// GenerateCode requests a device-bound activation code, e.g. codeType
// "add_time" with arg as the number of days.
func (c *Client) GenerateCode(ctx context.Context, serialNumber, codeType string, arg int) (string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}
	body, _ := json.Marshal(codeReq{SerialNum: serialNumber, CodeType: codeType, Arg: arg})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/codes", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("activation: code request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("activation: code request failed: %d", resp.StatusCode)
	}
	var out codeResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("activation: decode code response: %w", err)
	}
	if out.Code == "" {
		return "", fmt.Errorf("activation: empty code in response")
	}
	return out.Code, nil
}

// accessToken returns the cached bearer token, re-authenticating when it is
// missing or near expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.RLock()
	token, exp := c.token, c.tokenExp
	c.mu.RUnlock()
	if token != "" && time.Now().Before(exp.Add(-refreshSkew)) {
		return token, nil
	}

	v, err, _ := c.group.Do("auth", func() (interface{}, error) {
		// A concurrent caller may have refreshed while we waited.
		c.mu.RLock()
		token, exp := c.token, c.tokenExp
		c.mu.RUnlock()
		if token != "" && time.Now().Before(exp.Add(-refreshSkew)) {
			return token, nil
		}
		return c.authenticate(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) authenticate(ctx context.Context) (string, error) {
	now := time.Now()
	assertion := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": c.clientKey,
		"sub": c.keyID,
		"iat": now.Unix(),
		"jti": uuid.NewString(),
	})
	signed, err := assertion.SignedString(c.signKey)
	if err != nil {
		return "", fmt.Errorf("activation: sign assertion: %w", err)
	}

	body, _ := json.Marshal(authReq{Token: signed, TokenType: "auth"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("activation: auth request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("activation: auth failed: %d", resp.StatusCode)
	}
	var out authResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("activation: decode auth response: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("activation: empty auth token")
	}

	c.mu.Lock()
	c.token = out.Token
	c.tokenExp = now.Add(tokenLifetime)
	c.mu.Unlock()
	return out.Token, nil
}
