package clients

import (
	"context"
)

// BillingClient proxies requests to billing-service.
type BillingClient struct {
	base *BaseClient
}

// NewBillingClient returns client instance.
func NewBillingClient(baseURL string, httpClient HTTPDoer) *BillingClient {
	return &BillingClient{base: NewBaseClient(baseURL, httpClient)}
}

// Forward relays a request for the payment endpoints.
func (c *BillingClient) Forward(ctx context.Context, method, path string, body []byte, headers map[string]string) (int, []byte, error) {
	return c.base.Do(ctx, method, path, body, headers)
}
