package hub

import (
	"context"
	"testing"
	"time"

	"github.com/teslashibe/go-atlas/pkg/protocol"
)

func fakeClient(h *Hub, buf int) *Client {
	return &Client{hub: h, send: make(chan Message, buf)}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within 1s")
}

func TestHub_RegisterBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := New("test")
	go h.Run(ctx)

	c := fakeClient(h, 4)
	h.register <- c
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	h.Broadcast(NewJSONMessage([]byte(`{"x":1}`)))

	select {
	case msg := <-c.send:
		if string(msg.Data) != `{"x":1}` {
			t.Errorf("got %q", msg.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}

	h.unregister <- c
	waitFor(t, func() bool { return h.ClientCount() == 0 })
}

func TestHub_BroadcastMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := New("test")
	go h.Run(ctx)

	c := fakeClient(h, 4)
	h.register <- c
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	m, _ := protocol.NewErrorMessage("nope")
	if err := h.BroadcastMessage(m); err != nil {
		t.Fatalf("BroadcastMessage: %v", err)
	}

	select {
	case msg := <-c.send:
		parsed, err := protocol.ParseMessage(msg.Data)
		if err != nil || parsed.Type != protocol.TypeError {
			t.Errorf("parsed = %+v, err = %v", parsed, err)
		}
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := New("test")
	go h.Run(ctx)

	slow := fakeClient(h, 0)
	h.register <- slow
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	h.Broadcast(NewJSONMessage([]byte(`{}`)))
	waitFor(t, func() bool { return h.ClientCount() == 0 })

	if _, ok := <-slow.send; ok {
		t.Error("slow client's channel should be closed")
	}
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	h := New("test")
	go h.Run(ctx)

	c := fakeClient(h, 1)
	h.register <- c
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	cancel()

	select {
	case <-h.done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	if _, ok := <-c.send; ok {
		t.Error("client channel should be closed on shutdown")
	}
}
