package devserve

import (
	"fmt"
	"net/http"
)

// serveLiveReload holds the connection open as a server-sent event stream.
// Each detected filesystem change produces one reload event carrying the
// change id; an idle stream gets a ping every ping interval so proxies and
// browsers don't close it. The stream ends when the client goes away,
// which is the normal way these handlers terminate.
func (s *Server) serveLiveReload(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// A comment line helps proxies keep the stream open.
	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		return
	}
	flusher.Flush()

	s.metrics.streams.Inc()
	defer s.metrics.streams.Dec()
	s.log.Debug("devserve: live-reload stream opened", "remote", r.RemoteAddr)

	ctx := r.Context()
	lastSeen := s.state.ChangeID()
	for {
		id, changed := s.state.WaitForChange(ctx, lastSeen, s.ping)
		if ctx.Err() != nil {
			break
		}
		var err error
		if changed {
			lastSeen = id
			_, err = fmt.Fprintf(w, "event: reload\ndata: %d\n\n", id)
			s.metrics.reloads.Inc()
		} else {
			_, err = fmt.Fprint(w, "event: ping\ndata: 0\n\n")
			s.metrics.pings.Inc()
		}
		if err != nil {
			break
		}
		flusher.Flush()
	}
	s.log.Debug("devserve: live-reload stream closed", "remote", r.RemoteAddr)
}
