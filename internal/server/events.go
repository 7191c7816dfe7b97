package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/velozity/opsboard/internal/scanevents"
)

// StreamScanEvents streams completion pulses as server-sent events. A pulse
// is emitted each time an intake record transitions to complete; clients use
// it as a cheap refresh signal rather than a data feed.
func (s *Server) StreamScanEvents(c *gin.Context) {
	if s.pulses == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	subscription, err := s.pulses.Subscribe()
	if err != nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}
	defer subscription.Close()

	writer := c.Writer
	headers := writer.Header()
	headers.Set("Content-Type", "text/event-stream")
	headers.Set("Cache-Control", "no-cache")
	headers.Set("Connection", "keep-alive")
	headers.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	flusher, ok := writer.(http.Flusher)
	if !ok {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	if _, err := io.WriteString(writer, "retry: 2000\n\n"); err != nil {
		return
	}
	flusher.Flush()

	ctx := c.Request.Context()
	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case pulse := <-subscription.Events():
			if err := writeScanPulse(writer, pulse); err != nil {
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := io.WriteString(writer, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeScanPulse(w io.Writer, pulse scanevents.Pulse) error {
	data, err := json.Marshal(pulse)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
