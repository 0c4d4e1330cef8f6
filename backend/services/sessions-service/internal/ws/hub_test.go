package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"billiardsone/backend/services/sessions-service/internal/models"
)

func headerCafe(r *http.Request) (string, bool) {
	id := r.Header.Get("X-Cafe-ID")
	return id, id != ""
}

func dial(t *testing.T, srv *httptest.Server, cafeID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{}
	header.Set("X-Cafe-ID", cafeID)
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_PublishesToSubscribersOfTheCafe(t *testing.T) {
	hub := NewHub(zap.NewNop())
	wsServer := NewServer(hub, headerCafe, time.Second, time.Minute, zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(wsServer.HandleWS))
	defer srv.Close()

	cafe := uuid.New()
	other := uuid.New()
	conn := dial(t, srv, cafe.String())
	require.Eventually(t, func() bool { return hub.Subscribers(cafe.String()) == 1 }, 2*time.Second, 10*time.Millisecond)

	sessionID := uuid.New()
	hub.Publish(models.TableEvent{Type: models.EventStatusChanged, CafeID: other, TableID: uuid.New(), Status: models.TableOutOfService})
	hub.Publish(models.TableEvent{
		Type:      models.EventSessionOpened,
		CafeID:    cafe,
		TableID:   uuid.New(),
		SessionID: &sessionID,
		Status:    models.TableInUse,
		Players:   3,
		At:        time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC),
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got models.TableEvent
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, models.EventSessionOpened, got.Type)
	assert.Equal(t, cafe, got.CafeID)
	require.NotNil(t, got.SessionID)
	assert.Equal(t, sessionID, *got.SessionID)
	assert.Equal(t, 3, got.Players)
}

func TestHub_RemovesClosedConnections(t *testing.T) {
	hub := NewHub(zap.NewNop())
	wsServer := NewServer(hub, headerCafe, 100*time.Millisecond, time.Minute, zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(wsServer.HandleWS))
	defer srv.Close()

	cafe := uuid.NewString()
	conn := dial(t, srv, cafe)
	require.Eventually(t, func() bool { return hub.Subscribers(cafe) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Subscribers(cafe) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServer_RejectsMissingCafe(t *testing.T) {
	hub := NewHub(zap.NewNop())
	wsServer := NewServer(hub, headerCafe, 0, 0, zap.NewNop())

	rec := httptest.NewRecorder()
	wsServer.HandleWS(rec, httptest.NewRequest(http.MethodGet, "/ws/tables", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
