package ws

import (
	"encoding/json"
	"testing"
	"time"

	"snake_webapp/internal/snake"
)

func newTestClient() *Client {
	return &Client{
		SessionID: "test",
		Game:      snake.New(),
		Send:      make(chan []byte, 16),
		Tick:      200 * time.Millisecond,
		Done:      make(chan struct{}),
	}
}

func recvPayload(t *testing.T, c *Client) map[string]any {
	t.Helper()
	select {
	case msg := <-c.Send:
		var out map[string]any
		if err := json.Unmarshal(msg, &out); err != nil {
			t.Fatalf("bad frame %s: %v", msg, err)
		}
		return out
	default:
		t.Fatalf("no frame queued")
		return nil
	}
}

func TestHandleCommandStart(t *testing.T) {
	c := newTestClient()

	c.handleCommand([]byte(`{"type":"start"}`))

	out := recvPayload(t, c)
	if out["type"] != MsgStart || out["success"] != true || out["state"] != "playing" {
		t.Fatalf("start reply = %v", out)
	}
	if c.Game.Snapshot().State != snake.StatePlaying {
		t.Fatalf("game not playing after start command")
	}

	// second start is a no-op reporting failure
	c.handleCommand([]byte(`{"type":"start"}`))
	out = recvPayload(t, c)
	if out["success"] != false {
		t.Fatalf("second start reply = %v; want success=false", out)
	}
}

func TestHandleCommandMove(t *testing.T) {
	c := newTestClient()
	c.handleCommand([]byte(`{"type":"start"}`))
	<-c.Send

	c.handleCommand([]byte(`{"type":"move","direction":"down"}`))
	out := recvPayload(t, c)
	if out["type"] != MsgState {
		t.Fatalf("move reply type = %v; want state", out["type"])
	}
}

func TestHandleCommandInvalidDirection(t *testing.T) {
	c := newTestClient()
	c.handleCommand([]byte(`{"type":"start"}`))
	<-c.Send

	before := c.Game.Snapshot()
	c.handleCommand([]byte(`{"type":"move","direction":"sideways"}`))

	out := recvPayload(t, c)
	if out["type"] != MsgError {
		t.Fatalf("reply = %v; want error frame", out)
	}
	after := c.Game.Snapshot()
	if after.Snake[0] != before.Snake[0] || after.State != before.State {
		t.Fatalf("invalid direction mutated the game")
	}
}

func TestHandleCommandReset(t *testing.T) {
	c := newTestClient()
	c.handleCommand([]byte(`{"type":"start"}`))
	<-c.Send

	c.handleCommand([]byte(`{"type":"reset"}`))
	out := recvPayload(t, c)
	if out["type"] != MsgState || out["state"] != "ready" {
		t.Fatalf("reset reply = %v; want ready state frame", out)
	}
}

func TestHandleCommandUnknownType(t *testing.T) {
	c := newTestClient()
	c.handleCommand([]byte(`{"type":"teleport"}`))
	out := recvPayload(t, c)
	if out["type"] != MsgError {
		t.Fatalf("reply = %v; want error frame", out)
	}
}

func TestHandleCommandMalformedJSON(t *testing.T) {
	c := newTestClient()
	c.handleCommand([]byte(`{not json`))
	out := recvPayload(t, c)
	if out["type"] != MsgError {
		t.Fatalf("reply = %v; want error frame", out)
	}
}
