package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastEvent_DeliversToClients(t *testing.T) {
	h := NewHub(zerolog.Nop())

	first := &Client{hub: h, send: make(chan []byte, 1)}
	second := &Client{hub: h, send: make(chan []byte, 1)}
	h.clients[first] = true
	h.clients[second] = true

	h.broadcastEvent(&Event{
		Type:           EventAnnouncementCreated,
		AnnouncementID: 12,
		Title:          "Homecoming 2026",
		Timestamp:      time.Now(),
	})

	for _, c := range []*Client{first, second} {
		select {
		case data := <-c.send:
			var event Event
			require.NoError(t, json.Unmarshal(data, &event))
			assert.Equal(t, EventAnnouncementCreated, event.Type)
			assert.Equal(t, int64(12), event.AnnouncementID)
			assert.Equal(t, "Homecoming 2026", event.Title)
		default:
			t.Fatal("expected event on client send channel")
		}
	}
}

func TestBroadcastEvent_DropsStaleClient(t *testing.T) {
	h := NewHub(zerolog.Nop())
	go h.Run()

	// Zero-capacity buffer means the first broadcast already overflows
	stale := &Client{hub: h, send: make(chan []byte)}
	h.clients[stale] = true

	h.broadcastEvent(&Event{Type: EventAnnouncementDeleted, AnnouncementID: 3, Timestamp: time.Now()})

	assert.Eventually(t, func() bool {
		return h.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}
