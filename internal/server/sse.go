package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const keepaliveEvery = 30 * time.Second

// StreamEvents serves the real-time channel as Server-Sent Events. Each
// connection gets its own hub subscription; payloads are the full updated
// entity, and a client that reconnects must refetch to catch up because
// nothing is replayed.
func (h *Handlers) StreamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeProblem(w, http.StatusInternalServerError, "streaming_unsupported", "response writer cannot stream")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	subscriberID := uuid.New().String()
	events := h.hub.Subscribe(subscriberID)
	defer h.hub.Unsubscribe(subscriberID)

	h.lg.Info("sse_connected", map[string]any{"subscriber_id": subscriberID})

	fmt.Fprintf(w, ": connected\n\n")
	fmt.Fprintf(w, "retry: 2000\n\n")
	flusher.Flush()

	ticker := time.NewTicker(keepaliveEvery)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.lg.Info("sse_disconnected", map[string]any{"subscriber_id": subscriberID})
			return

		case <-ticker.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			flusher.Flush()

		case ev, open := <-events:
			if !open {
				return
			}
			body, err := json.Marshal(ev)
			if err != nil {
				h.lg.Error("sse_encode_failed", err, nil)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, body)
			flusher.Flush()
		}
	}
}
