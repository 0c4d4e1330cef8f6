package clients

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseClient_Do(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sessions/start", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "abc", r.Header.Get("X-Staff-ID"))
		assert.JSONEq(t, `{"table_id":"t1"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"s1"}`))
	}))
	defer upstream.Close()

	client := NewSessionsClient(upstream.URL+"/", NewDefaultHTTPClient(0))
	status, body, err := client.Forward(context.Background(), http.MethodPost, "sessions/start",
		[]byte(`{"table_id":"t1"}`), map[string]string{"X-Staff-ID": "abc"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"id":"s1"}`, string(body))
}

func TestBaseClient_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	_, _, err := NewAuthClient(url, NewDefaultHTTPClient(0)).Login(context.Background(), []byte(`{}`))
	assert.Error(t, err)
}
