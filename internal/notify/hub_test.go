package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

func TestHub_DeliversToRoom(t *testing.T) {
	hub := NewHub(logger.Nop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, r.URL.Query().Get("room"))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url+"?room=owner-1", nil)
	require.NoError(t, err)
	defer conn.Close()

	other, _, err := websocket.DefaultDialer.Dial(url+"?room=owner-2", nil)
	require.NoError(t, err)
	defer other.Close()

	require.Eventually(t, func() bool { return hub.Clients("owner-1") == 1 && hub.Clients("owner-2") == 1 },
		time.Second, 5*time.Millisecond)

	e := Event{Audience: AudienceOwner, Recipient: "owner-1", Kind: KindPaymentReceived, Payload: Payload{Title: "Payment Received"}}
	require.NoError(t, hub.Deliver(context.Background(), e))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, KindPaymentReceived, got.Kind)
	assert.Equal(t, "Payment Received", got.Payload.Title)

	require.NoError(t, other.SetReadDeadline(time.Now().Add(50*time.Millisecond)))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub := NewHub(logger.Nop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, "room")
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Clients("room") == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Clients("room") == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_Accepts(t *testing.T) {
	hub := NewHub(logger.Nop())
	assert.True(t, hub.Accepts(Event{Audience: AudienceOwner}))
	assert.True(t, hub.Accepts(Event{Audience: AudienceOperator}))
	assert.False(t, hub.Accepts(Event{Audience: AudienceCustomer}))
}
