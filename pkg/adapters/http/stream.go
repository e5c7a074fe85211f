package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/aretw0/mindbuffer/pkg/flow"
)

// Event is one server-sent event.
type Event struct {
	Name string
	Data string
}

// StreamManager fans flow events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{} // flow ID -> set of channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan Event]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a channel for flowID. The returned func unsubscribes.
func (sm *StreamManager) Subscribe(flowID string) (<-chan Event, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Event, 10)
	if _, ok := sm.subscribers[flowID]; !ok {
		sm.subscribers[flowID] = make(map[chan Event]struct{})
	}
	sm.subscribers[flowID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		subs, ok := sm.subscribers[flowID]
		if !ok {
			return
		}
		if _, ok := subs[ch]; !ok {
			return
		}
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(sm.subscribers, flowID)
		}
	}
}

// Broadcast sends e to every subscriber of flowID. Slow subscribers miss it.
func (sm *StreamManager) Broadcast(flowID string, e Event) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[flowID] {
		select {
		case ch <- e:
		default:
			sm.logger.Warn("SSE client buffer full, dropping event", "flow_id", flowID, "event", e.Name)
		}
	}
}

// Close ends every stream of flowID.
func (sm *StreamManager) Close(flowID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for ch := range sm.subscribers[flowID] {
		close(ch)
	}
	delete(sm.subscribers, flowID)
}

// Subscribers returns the number of open streams for flowID.
func (sm *StreamManager) Subscribers(flowID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[flowID])
}

// pump relays the countdown of f. The countdown stops at zero while the flow
// stays usable, so the streams only end once the flow itself is closed.
func (s *Server) pump(id string, f *flow.Flow) {
	for remaining := range f.Ticks() {
		s.Streams.Broadcast(id, Event{Name: "tick", Data: strconv.Itoa(remaining)})
	}
	if f.Closed() {
		s.Streams.Close(id)
		return
	}
	s.publish(id, f)
}

func (s *Server) publish(id string, f *flow.Flow) {
	data, err := json.Marshal(viewOf(id, f))
	if err != nil {
		s.logger.Error("failed to encode flow view", "flow_id", id, "err", err)
		return
	}
	s.Streams.Broadcast(id, Event{Name: "stage", Data: string(data)})
}

// SubscribeEvents handles GET /flows/{flowID}/events. It streams "tick"
// events with the remaining seconds and a "stage" event after each change.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, flowID string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	id, f, ok := s.lookup(w, r, flowID)
	if !ok {
		return
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: %d\n\n", f.Remaining())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-ch:
			if !ok {
				fmt.Fprint(w, "event: end\ndata: closed\n\n")
				flusher.Flush()
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Name, e.Data)
			flusher.Flush()
		}
	}
}
