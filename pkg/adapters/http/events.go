package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/automata/pkg/domain"
)

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- string]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates a manager without subscribers. Dropped messages
// are reported on logger; a nil logger discards them.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &StreamManager{
		subscribers: make(map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a new listener. The returned function unregisters it
// and closes the channel.
func (sm *StreamManager) Subscribe() (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Broadcast sends msg to every subscriber. Slow subscribers miss messages.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message")
		}
	}
}

// Subscribers returns the number of active listeners.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// queryMessage is the payload of a query event on the stream.
type queryMessage struct {
	Kind     domain.Kind   `json:"kind"`
	Length   int           `json:"length"`
	Accepted bool          `json:"accepted"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Hooks returns lifecycle hooks that broadcast every language query.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAccept: func(_ context.Context, e *domain.QueryEvent) {
			msg := queryMessage{
				Kind:     e.Kind,
				Length:   e.Length,
				Accepted: e.Accepted,
				Duration: e.Duration,
			}
			if e.Err != nil {
				msg.Error = e.Err.Error()
			}
			bytes, err := json.Marshal(msg)
			if err != nil {
				return
			}
			sm.Broadcast(string(bytes))
		},
	}
}

// SubscribeEvents handles the GET /events request (SSE).
// The optional kind parameter keeps only the listed machine kinds.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, s.Logger, http.StatusInternalServerError, "streaming not supported")
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	var kinds map[string]bool
	if filter := r.URL.Query().Get("kind"); filter != "" {
		kinds = make(map[string]bool)
		for _, k := range strings.Split(filter, ",") {
			kinds[strings.TrimSpace(k)] = true
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE Client Disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if kinds != nil {
				var q queryMessage
				if err := json.Unmarshal([]byte(msg), &q); err == nil && !kinds[string(q.Kind)] {
					continue
				}
			}
			fmt.Fprintf(w, "event: query\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
