package clients

import (
	"context"
)

// SessionsClient proxies calls to sessions-service.
type SessionsClient struct {
	base *BaseClient
}

// NewSessionsClient returns client.
func NewSessionsClient(baseURL string, httpClient HTTPDoer) *SessionsClient {
	return &SessionsClient{base: NewBaseClient(baseURL, httpClient)}
}

// Forward relays a request for the session, table and dashboard endpoints.
func (c *SessionsClient) Forward(ctx context.Context, method, path string, body []byte, headers map[string]string) (int, []byte, error) {
	return c.base.Do(ctx, method, path, body, headers)
}
