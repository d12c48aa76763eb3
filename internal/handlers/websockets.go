package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"linkfeed/internal/pubsub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB
)

// External subscription names, mapped 1:1 onto event bus topics.
var subscriptionTopics = map[string]pubsub.Topic{
	"newLink": pubsub.TopicNewLink,
	"newVote": pubsub.TopicNewVote,
}

var topicNames = map[pubsub.Topic]string{
	pubsub.TopicNewLink: "newLink",
	pubsub.TopicNewVote: "newVote",
}

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Subscribe to live events
// @Description  Upgrades to a WebSocket and streams one {type,data} envelope per event on the requested topics (newLink, newVote) until the client disconnects. Events published before the subscription was registered are never delivered.
// @Tags         subscriptions
// @Param        topics  query  string  false  "Comma-separated topics"  default(newLink,newVote)
// @Success      101
// @Failure      400  {object}  map[string]string
// @Router       /ws [get]
func (h *Handler) wsSubscribe(c *gin.Context) {
	topics, err := parseTopics(c.Query("topics"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Register before entering the write loop: an event published
	// after this point is delivered, one published before it is not.
	events := h.subscribeAll(topics)
	defer events.close()

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case ev := <-events.ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(wsEnvelope{Type: topicNames[ev.Topic], Data: ev.Payload}); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// parseTopics resolves the topics query parameter to bus topics.
// Empty means all topics.
func parseTopics(raw string) ([]pubsub.Topic, error) {
	if raw == "" {
		return []pubsub.Topic{pubsub.TopicNewLink, pubsub.TopicNewVote}, nil
	}
	var topics []pubsub.Topic
	for _, name := range strings.Split(raw, ",") {
		topic, ok := subscriptionTopics[strings.TrimSpace(name)]
		if !ok {
			return nil, &unknownTopicError{name: name}
		}
		topics = append(topics, topic)
	}
	return topics, nil
}

type unknownTopicError struct{ name string }

func (e *unknownTopicError) Error() string { return "unknown topic: " + e.name }

// mergedEvents fans several bus subscriptions into one channel so the
// write loop selects on a single source. Per-topic ordering survives
// the merge; ordering across topics was never guaranteed.
type mergedEvents struct {
	ch   chan pubsub.Event
	subs []*pubsub.Subscription
	quit chan struct{}
	wg   sync.WaitGroup
}

func (h *Handler) subscribeAll(topics []pubsub.Topic) *mergedEvents {
	m := &mergedEvents{
		ch:   make(chan pubsub.Event, len(topics)*8),
		quit: make(chan struct{}),
	}
	for _, topic := range topics {
		sub := h.bus.Subscribe(topic)
		m.subs = append(m.subs, sub)
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			for ev := range sub.Events() {
				select {
				case m.ch <- ev:
				case <-m.quit:
					return
				}
			}
		}()
	}
	return m
}

// close releases every subscription and waits for the forwarders, so
// nothing is left delivering to a disconnected client.
func (m *mergedEvents) close() {
	for _, sub := range m.subs {
		sub.Close()
	}
	close(m.quit)
	m.wg.Wait()
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}
