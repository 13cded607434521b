package bridge

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_PostsTypedJSON(t *testing.T) {
	received := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var msg map[string]any
		_ = json.Unmarshal(body, &msg)
		received <- msg
	}))
	defer srv.Close()

	b := New(srv.URL, nil)
	b.Send("reward_mode_activated", map[string]any{"duration_minutes": 30})

	select {
	case msg := <-received:
		assert.Equal(t, "reward_mode_activated", msg["type"])
		assert.Equal(t, float64(30), msg["duration_minutes"])
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast never arrived")
	}
}

func TestSendAssign(t *testing.T) {
	received := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		received <- msg
	}))
	defer srv.Close()

	b := New(srv.URL, nil)
	b.SendAssign(2)

	select {
	case msg := <-received:
		assert.Equal(t, MsgAssignSlot, msg["type"])
		assert.Equal(t, float64(2), msg["slot"])
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast never arrived")
	}
}

func TestSend_EmptyEndpointIsNoop(t *testing.T) {
	b := New("", nil)
	// Must not panic or block.
	b.Send("anything", nil)
}

func TestSend_UnreachableEndpointIsSwallowed(t *testing.T) {
	var logged atomic.Bool
	b := New("http://127.0.0.1:1/unreachable", func(string, ...any) { logged.Store(true) })

	b.Send("reward_mode_deactivated", nil)

	assert.Eventually(t, func() bool { return logged.Load() }, 2*time.Second, 10*time.Millisecond)
}
