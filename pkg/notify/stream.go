package notify

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/clouddrive/clouddrive-client/internal/logging"
	"github.com/clouddrive/clouddrive-client/pkg/protocol"
	"github.com/clouddrive/clouddrive-client/pkg/session"
)

// State is the stream's connection state.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Stream maintains the persistent push connection. Its lifecycle is
// independent of every other component: it runs while the subscription
// context lives and a session exists, and any close or error is just a
// transition back to Disconnected followed by a backoff reconnect.
type Stream struct {
	wsURL        string
	sess         *session.Store
	store        *Store
	dialer       *websocket.Dialer
	reconnectMin time.Duration
	reconnectMax time.Duration

	mu    sync.RWMutex
	state State
}

// NewStream creates a stream against the backend's websocket endpoint,
// derived from the HTTP base URL.
func NewStream(baseURL string, sess *session.Store, store *Store) *Stream {
	ws := strings.TrimSuffix(baseURL, "/")
	if strings.HasPrefix(ws, "https://") {
		ws = "wss://" + strings.TrimPrefix(ws, "https://")
	} else if strings.HasPrefix(ws, "http://") {
		ws = "ws://" + strings.TrimPrefix(ws, "http://")
	}

	return &Stream{
		wsURL:        ws + "/ws/notifications",
		sess:         sess,
		store:        store,
		dialer:       &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		reconnectMin: 1 * time.Second,
		reconnectMax: 30 * time.Second,
	}
}

// State returns the current connection state.
func (s *Stream) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Stream) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Run connects and keeps reconnecting with exponential backoff until ctx
// ends or the session is gone. It never panics the host; every failure
// becomes a Disconnected transition.
func (s *Stream) Run(ctx context.Context) {
	defer s.setState(Disconnected)

	delay := s.reconnectMin

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !s.sess.Active() {
			return
		}

		connected, err := s.connect(ctx)
		s.setState(Disconnected)
		if ctx.Err() != nil {
			return
		}
		if connected {
			delay = s.reconnectMin
		}
		if err != nil {
			logging.Debug("notification stream closed, reconnecting",
				zap.Error(err), zap.Duration("delay", delay))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		if !connected {
			delay *= 2
			if delay > s.reconnectMax {
				delay = s.reconnectMax
			}
		}
	}
}

// connect dials, then reads push frames until the connection drops. The
// returned bool reports whether the dial succeeded, so the caller can
// reset its backoff.
func (s *Stream) connect(ctx context.Context) (bool, error) {
	token := s.sess.Token()
	if token == "" {
		return false, context.Canceled
	}

	s.setState(Connecting)

	u := s.wsURL + "?token=" + url.QueryEscape(token)
	conn, resp, err := s.dialer.DialContext(ctx, u, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return false, err
	}
	defer conn.Close()

	s.setState(Connected)
	logging.Debug("notification stream connected")

	// Keepalive greeting, matching what the backend expects on open.
	conn.WriteMessage(websocket.TextMessage, []byte("hello"))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return true, err
		}

		var frame protocol.PushFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue // not a push frame
		}
		if frame.Event == "notification" && frame.Notification != nil {
			s.store.Push(*frame.Notification)
		}
		// Unrecognized event types are ignored.
	}
}
