package main

import (
	"testing"

	"github.com/dii-lab/launchpad/games/launch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHub(t *testing.T) *Hub {
	t.Helper()

	room := launch.NewRoom("ABCDE", "p1", "alice")
	return newHub("ABCDE", room)
}

func addClient(h *Hub, playerID string, buffer int) *Client {
	c := &Client{
		send:     make(chan any, buffer),
		playerID: playerID,
	}
	h.clients[c] = true
	return c
}

func TestBroadcastEvictsSlowClient(t *testing.T) {
	h := testHub(t)

	c := addClient(h, "p1", 1)
	c.send <- struct{}{} // buffer full; the first send must evict

	require.NotPanics(t, h.broadcastState)

	assert.NotContains(t, h.clients, c)

	// The channel is closed after eviction and holds only the pre-fill.
	<-c.send
	_, open := <-c.send
	assert.False(t, open)
}

func TestBroadcastReachesHealthyClients(t *testing.T) {
	h := testHub(t)

	slow := addClient(h, "p1", 1)
	slow.send <- struct{}{}
	healthy := addClient(h, "p2", 8)

	require.NotPanics(t, h.broadcastState)

	// Snapshot plus private hand.
	assert.Len(t, healthy.send, 2)
	assert.Contains(t, h.clients, healthy)
}

func TestSendToUnregisteredClient(t *testing.T) {
	h := testHub(t)

	c := &Client{send: make(chan any, 1), playerID: "p1"}

	assert.False(t, h.sendTo(c, JoinedMessage{Type: "joined", Room: "ABCDE"}))
	assert.Empty(t, c.send)
}

func TestTeardownWithoutHub(t *testing.T) {
	c := &Client{send: make(chan any, 1)}

	c.teardown()

	// A closed send channel releases writePump.
	_, open := <-c.send
	assert.False(t, open)
}

func TestTeardownAfterHubExit(t *testing.T) {
	h := testHub(t)
	close(h.done)

	c := &Client{send: make(chan any, 1), hub: h}

	// Must not block on the unreg channel of a finished hub.
	done := make(chan struct{})
	go func() {
		c.teardown()
		close(done)
	}()

	select {
	case <-done:
	case <-h.unreg:
		t.Fatal("teardown delivered to a finished hub")
	}
}
