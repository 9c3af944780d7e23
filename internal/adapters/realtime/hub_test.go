package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID uint, isAdmin bool) *client {
	return &client{
		userID:  userID,
		isAdmin: isAdmin,
		send:    make(chan []byte, 16),
	}
}

func TestHubPushToUser(t *testing.T) {
	h := NewHub()
	lawyer := newTestClient(7, false)
	other := newTestClient(8, false)
	h.register(lawyer)
	h.register(other)

	h.PushToUser(7, Event{Type: "case_assigned", Title: "New Case Assigned"})

	require.Len(t, lawyer.send, 1)
	assert.Len(t, other.send, 0)

	var ev Event
	require.NoError(t, json.Unmarshal(<-lawyer.send, &ev))
	assert.Equal(t, "case_assigned", ev.Type)
	assert.Equal(t, "New Case Assigned", ev.Title)
}

func TestHubPushToUserNobodyOnline(t *testing.T) {
	h := NewHub()
	// no connections, must not panic or block
	h.PushToUser(7, Event{Type: "noop"})
	assert.Equal(t, 0, h.ConnectedUsers())
}

func TestHubPushToAdmins(t *testing.T) {
	h := NewHub()
	admin := newTestClient(1, true)
	lawyer := newTestClient(7, false)
	h.register(admin)
	h.register(lawyer)

	h.PushToAdmins(Event{Type: "payment_received"})

	assert.Len(t, admin.send, 1)
	assert.Len(t, lawyer.send, 0)
}

func TestHubFullBufferDropsPush(t *testing.T) {
	h := NewHub()
	c := &client{userID: 7, send: make(chan []byte)}
	h.register(c)

	// nobody reads from the channel, the push must not block
	h.PushToUser(7, Event{Type: "dropped"})
	assert.Len(t, c.send, 0)
}

func TestHubRegisterUnregister(t *testing.T) {
	h := NewHub()
	a := newTestClient(7, false)
	b := newTestClient(7, false)
	c := newTestClient(8, false)

	h.register(a)
	h.register(b)
	h.register(c)
	assert.Equal(t, 2, h.ConnectedUsers())

	h.unregister(a)
	assert.Equal(t, 2, h.ConnectedUsers())

	h.unregister(b)
	assert.Equal(t, 1, h.ConnectedUsers())

	// repeated unregister is a no-op
	h.unregister(b)
	assert.Equal(t, 1, h.ConnectedUsers())

	h.unregister(c)
	assert.Equal(t, 0, h.ConnectedUsers())
}
