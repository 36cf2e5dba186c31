// Package sms sends customer notifications through Africa's Talking.
package sms

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client posts messages to the Africa's Talking messaging API. Callers treat
// sends as fire-and-forget; a failed send is logged upstream, never fatal.
type Client struct {
	baseURL  string
	username string
	apiKey   string
	senderID string
	httpc    *http.Client
}

func NewClient(baseURL, username, apiKey, senderID string) *Client {
	if baseURL == "" {
		baseURL = "https://api.sandbox.africastalking.com"
	}
	return &Client{
		baseURL:  baseURL,
		username: username,
		apiKey:   apiKey,
		senderID: senderID,
		httpc:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Send(to, message string) error {
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("to", to)
	form.Set("message", message)
	if c.senderID != "" {
		form.Set("from", c.senderID)
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/version1/messaging", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.apiKey)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sms send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms send failed: %d", resp.StatusCode)
	}
	return nil
}
