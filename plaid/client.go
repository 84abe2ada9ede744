// Package plaid is a thin client for the Plaid liabilities product. Only
// the three calls the backend needs are wrapped; everything else the API
// offers is out of scope.
package plaid

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
)

// LiabilityClient is the narrow surface the rest of the backend depends
// on. The raw liabilities payload stays an untyped map because its shape
// is heterogeneous per loan category; normalization happens downstream.
type LiabilityClient interface {
	CreateLinkToken(ctx context.Context, userID string) (map[string]any, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (string, error)
	GetLiabilities(ctx context.Context, accessToken string) (map[string]any, error)
}

var envHosts = map[string]string{
	"sandbox":     "https://sandbox.plaid.com",
	"development": "https://development.plaid.com",
	"production":  "https://production.plaid.com",
}

const requestTimeout = 30 * time.Second

type Client struct {
	clientID string
	secret   string
	http     *resty.Client
}

// NewClient builds a client for the named Plaid environment; unknown
// environments fall back to sandbox.
func NewClient(clientID, secret, env string) *Client {
	host, ok := envHosts[env]
	if !ok {
		host = envHosts["sandbox"]
	}
	return &Client{
		clientID: clientID,
		secret:   secret,
		http: resty.New().
			SetBaseURL(host).
			SetTimeout(requestTimeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// CreateLinkToken requests a Link token scoped to the liabilities product
// for the given user.
func (c *Client) CreateLinkToken(ctx context.Context, userID string) (map[string]any, error) {
	body := map[string]any{
		"client_id":     c.clientID,
		"secret":        c.secret,
		"client_name":   "Better Loanz",
		"user":          map[string]any{"client_user_id": userID},
		"products":      []string{"liabilities"},
		"country_codes": []string{"US"},
		"language":      "en",
	}
	return c.post(ctx, "/link/token/create", body)
}

// ExchangePublicToken trades a Link public token for a persistent access
// token.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (string, error) {
	body := map[string]any{
		"client_id":    c.clientID,
		"secret":       c.secret,
		"public_token": publicToken,
	}
	resp, err := c.post(ctx, "/item/public_token/exchange", body)
	if err != nil {
		return "", err
	}
	accessToken, _ := resp["access_token"].(string)
	if accessToken == "" {
		return "", fmt.Errorf("plaid: exchange response missing access_token")
	}
	return accessToken, nil
}

// GetLiabilities fetches the raw liabilities payload for an access token.
func (c *Client) GetLiabilities(ctx context.Context, accessToken string) (map[string]any, error) {
	body := map[string]any{
		"client_id":    c.clientID,
		"secret":       c.secret,
		"access_token": accessToken,
	}
	return c.post(ctx, "/liabilities/get", body)
}

func (c *Client) post(ctx context.Context, path string, body map[string]any) (map[string]any, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("plaid: %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("plaid: %s returned %s: %s", path, resp.Status(), resp.Body())
	}

	var out map[string]any
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("plaid: decoding %s response: %w", path, err)
	}
	return out, nil
}
