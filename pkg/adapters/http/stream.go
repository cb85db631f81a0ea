package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/longboard/internal/logging"
)

// Event names sent over the SSE stream.
const (
	EventFrame   = "frame"
	EventPreview = "preview"
)

// Message is one server-sent event.
type Message struct {
	Event string
	Data  string
}

// StreamManager handles active SSE connections, keyed by document ID.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- Message]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates a StreamManager logging to logger; nil discards.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- Message]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a channel for documentID. The returned func
// unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(documentID string) (chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, 16)
	if _, ok := sm.subscribers[documentID]; !ok {
		sm.subscribers[documentID] = make(map[chan<- Message]struct{})
	}
	sm.subscribers[documentID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[documentID]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, documentID)
			}
		}
	}
}

// Publish encodes v and broadcasts it.
func (sm *StreamManager) Publish(documentID, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		sm.logger.Warn("SSE: encode failed", "document_id", documentID, "event", event, "err", err)
		return
	}
	sm.Broadcast(documentID, Message{Event: event, Data: string(data)})
}

// Broadcast sends msg to every subscriber of documentID. Slow clients
// lose messages instead of blocking the engine.
func (sm *StreamManager) Broadcast(documentID string, msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[documentID] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message", "document_id", documentID, "event", msg.Event)
		}
	}
}

// SubscribeEvents handles GET /documents/{id}/events (SSE). The optional
// watch query parameter is a comma-separated list of event names.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	id := documentID(r)
	watch := map[string]bool{}
	if v := r.URL.Query().Get("watch"); v != "" {
		for _, name := range strings.Split(v, ",") {
			watch[strings.TrimSpace(name)] = true
		}
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watch) > 0 && !watch[msg.Event] {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}
