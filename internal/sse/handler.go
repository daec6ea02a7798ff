package sse

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/willowbyte/gardenbloom/internal/logger"
)

// Handler streams hub events to the browser over SSE. The optional
// "types" query parameter is a comma-separated event-type filter.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		var eventTypes []string
		if raw := r.URL.Query().Get("types"); raw != "" {
			eventTypes = strings.Split(raw, ",")
		}

		log := logger.FromContext(r.Context())
		client := hub.Register(eventTypes)
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()
		log.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"filters", eventTypes)

		// Opening comment confirms the stream before the first event.
		if _, err := io.WriteString(w, ": ok\n\n"); err != nil {
			return
		}
		flusher.Flush()

		keepalive := time.NewTicker(KeepaliveInterval)
		defer keepalive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return

			case evt, open := <-client.EventChannel:
				if !open {
					// Hub shut down.
					return
				}
				if err := writeEvent(w, flusher, evt); err != nil {
					log.Warn(LogMsgWriteError, "client_id", client.ID, "error", err)
					return
				}

			case <-keepalive.C:
				if _, err := io.WriteString(w, ": keepalive\n\n"); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w io.Writer, flusher http.Flusher, evt Event) error {
	msg, err := FormatSSEMessage(evt)
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
