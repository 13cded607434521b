// Package bridge delivers fire-and-forget notifications to external
// companions: a JSON broadcast endpoint (e.g. a browser extension relay) and
// desktop notifications.
package bridge

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// sendTimeout bounds a single broadcast attempt.
const sendTimeout = 5 * time.Second

// MsgAssignSlot instructs the companion to assign the next item to a slot.
const MsgAssignSlot = "assign_next_item"

// Bridge posts one-way messages to a companion endpoint. There is no
// acknowledgement; delivery failures are logged and dropped.
type Bridge struct {
	endpoint string
	http     *http.Client
	logf     func(format string, args ...any)
	inflight sync.WaitGroup
}

// New creates a Bridge for the given endpoint. An empty endpoint disables
// broadcasting entirely.
func New(endpoint string, logf func(format string, args ...any)) *Bridge {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Bridge{
		endpoint: endpoint,
		http:     &http.Client{Timeout: sendTimeout},
		logf:     logf,
	}
}

// Send broadcasts a message of the given type with the payload fields merged
// into the message object. The call returns immediately; delivery happens in
// the background and is never retried.
func (b *Bridge) Send(msgType string, payload map[string]any) {
	if b.endpoint == "" {
		return
	}

	msg := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		msg[k] = v
	}
	msg["type"] = msgType

	body, err := json.Marshal(msg)
	if err != nil {
		b.logf("encoding bridge message %q: %v", msgType, err)
		return
	}

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		resp, err := b.http.Post(b.endpoint, "application/json", bytes.NewReader(body))
		if err != nil {
			b.logf("bridge send %q: %v", msgType, err)
			return
		}
		_ = resp.Body.Close()
	}()
}

// Flush blocks until all in-flight broadcasts have been attempted. Short-lived
// commands call this before exiting so sends are not cut off mid-delivery.
func (b *Bridge) Flush() {
	b.inflight.Wait()
}

// SendAssign broadcasts the pending "assign next item to slot N" instruction.
func (b *Bridge) SendAssign(slot int) {
	b.Send(MsgAssignSlot, map[string]any{"slot": slot})
}
