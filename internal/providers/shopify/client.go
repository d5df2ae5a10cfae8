package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"catalog-audit/internal/httpx"
)

// Client talks to the Shopify Admin GraphQL API. Requests are paced with a
// client-side limiter so a long fetch stays under the API's call budget, and
// retried on 429/5xx with Retry-After respected.
type Client struct {
	BaseURL     string // https://<shop-domain>, overridable for tests
	AccessToken string
	APIVersion  string

	HTTP    *http.Client
	limiter *rate.Limiter
	retry   httpx.RetryConfig
}

func New(shopURL, accessToken, apiVersion string) *Client {
	if apiVersion == "" {
		apiVersion = "2025-01"
	}
	return &Client{
		BaseURL:     "https://" + shopURL,
		AccessToken: accessToken,
		APIVersion:  apiVersion,
		HTTP: &http.Client{
			Timeout: 2 * time.Minute,
		},
		// two calls per second, matching the production pacing
		limiter: rate.NewLimiter(rate.Limit(2), 2),
		retry:   httpx.DefaultRetryConfig(),
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", c.BaseURL, c.APIVersion)
}

// Query runs one GraphQL request and unmarshals the "data" object into out.
// GraphQL-level errors come back as a plain error.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("shopify: rate limiter: %w", err)
	}

	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("shopify: marshal gql request: %w", err)
	}

	buildReq := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("shopify: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Shopify-Access-Token", c.AccessToken)
		return req, nil
	}

	_, body, err := httpx.DoWithRetry(ctx, c.HTTP, buildReq, c.retry)
	if err != nil {
		return fmt.Errorf("shopify: request failed: %w", err)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("shopify: json parse error: %w body=%s", err, string(body))
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("shopify: gql errors: %+v", envelope.Errors)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("shopify: json parse error: %w body=%s", err, string(envelope.Data))
	}
	return nil
}
