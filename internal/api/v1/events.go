package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	sseHeartbeat = 30 * time.Second
	maxReplay    = 500
)

// streamEvents serves scan events as server-sent events. With ?replay=N the
// stream opens with up to N persisted events, oldest first, then follows the
// live feed until the client disconnects.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	if s.deps.Bus == nil {
		writeError(w, http.StatusServiceUnavailable, "NO_EVENT_BUS", "Event stream not configured")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "STREAM_UNSUPPORTED", "streaming unsupported by connection")
		return
	}

	replay := queryInt(r, "replay", 0)
	if replay < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_REPLAY", "replay must be non-negative")
		return
	}
	if replay > maxReplay {
		replay = maxReplay
	}

	// Subscribe before replaying so nothing falls in the gap between the
	// two.
	ch := s.deps.Bus.SubscribeAll(16)
	defer s.deps.Bus.Unsubscribe(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	if replay > 0 && s.deps.EventLog != nil {
		past, err := s.deps.EventLog.Recent(replay)
		if err == nil {
			// Recent returns newest first; replay in event order.
			for i := len(past) - 1; i >= 0; i-- {
				writeSSE(w, past[i].EventType, []byte(past[i].Payload))
			}
			flusher.Flush()
		}
	}

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				continue
			}
			writeSSE(w, e.EventType(), data)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}

func writeSSE(w io.Writer, event string, data []byte) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
