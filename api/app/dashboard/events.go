package dashboard

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// events streams the live feed as server sent events
func (d *DashboardRessource) events(w http.ResponseWriter, r *http.Request) {
	if d.feed == nil {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	pubsub := d.feed.Subscribe(r.Context())
	defer pubsub.Close()
	ch := pubsub.Channel()

	fmt.Fprint(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	d.log.Debug("live feed subscriber connected")
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", msg.Payload); err != nil {
				d.log.Debug("live feed subscriber gone", zap.Error(err))
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
