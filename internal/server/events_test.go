package server

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStreamScanEventsDeliversPulses(t *testing.T) {
	srv, hub := setupServer(t)

	ts := httptest.NewServer(srv.Engine())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events/scan", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// Publish until the subscriber is registered and a frame comes through.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				hub.Publish(time.Now().UTC())
			}
		}
	}()

	reader := bufio.NewReader(resp.Body)
	sawRetry := false
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				t.Fatal("stream ended before a data frame arrived")
			}
			t.Fatalf("reading stream: %v", err)
		}
		if strings.HasPrefix(line, "retry:") {
			sawRetry = true
		}
		if strings.HasPrefix(line, "data:") {
			require.Contains(t, line, `"ts"`)
			break
		}
	}
	require.True(t, sawRetry, "stream opens with a retry hint")
	cancel()
}
