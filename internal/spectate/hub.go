// Package spectate implements a read-only websocket event hub that pushes
// hand, action and standings events to any number of observers without
// participating in the game itself. It never renders anything — it only
// emits structured JSON {"event", "data"} objects.
package spectate

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const subscriberBuffer = 64

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Event is one notification pushed to every subscriber. Event is one of
// "hand_started", "action_taken", "hand_ended" or "standings_updated".
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type subscriber struct {
	send chan Event
	conn *websocket.Conn
}

// Hub fans a stream of Events out to any number of websocket subscribers.
// Publish is non-blocking: a subscriber whose buffer is full is dropped
// rather than allowed to stall the broadcaster.
type Hub struct {
	log zerolog.Logger

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// NewHub constructs an empty Hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{log: log, subs: make(map[*subscriber]struct{})}
}

// ServeHTTP upgrades the request to a websocket and registers the
// connection as a subscriber until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("spectate: websocket upgrade failed")
		return
	}

	sub := &subscriber{send: make(chan Event, subscriberBuffer), conn: conn}
	h.add(sub)
	defer h.remove(sub)

	h.writeLoop(sub)
}

func (h *Hub) add(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[sub] = struct{}{}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
	sub.conn.Close()
}

func (h *Hub) writeLoop(sub *subscriber) {
	for event := range sub.send {
		payload, err := json.Marshal(event)
		if err != nil {
			h.log.Warn().Err(err).Msg("spectate: failed to encode event")
			continue
		}
		if err := sub.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// Publish broadcasts event to every current subscriber. A subscriber whose
// buffer is already full is dropped immediately rather than blocking the
// publisher or the round/tournament drivers that call it.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.send <- event:
		default:
			h.log.Warn().Msg("spectate: subscriber buffer full, dropping")
			delete(h.subs, sub)
			close(sub.send)
		}
	}
}

// SubscriberCount reports how many observers are currently attached.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
