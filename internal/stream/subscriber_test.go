package stream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/models"
)

// sseServer streams the given lines then blocks until the client disconnects.
func sseServer(t *testing.T, lines []string, hold bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("response writer does not support flushing")
		}
		// Send headers immediately so clients aren't stuck waiting for them
		// when there are no lines to stream.
		flusher.Flush()

		for _, line := range lines {
			fmt.Fprintf(w, "%s\n", line)
			flusher.Flush()
		}

		if hold {
			<-r.Context().Done()
		}
	}))
}

func collectFrames(t *testing.T, frames <-chan *models.DiscoveryProgress, n int) []*models.DiscoveryProgress {
	t.Helper()
	var got []*models.DiscoveryProgress
	timeout := time.After(5 * time.Second)

	for len(got) < n {
		select {
		case frame, ok := <-frames:
			if !ok {
				return got
			}
			got = append(got, frame)
		case <-timeout:
			t.Fatalf("timed out waiting for %d frames, got %d", n, len(got))
		}
	}
	return got
}

func TestSubscriber(t *testing.T) {
	t.Run("Decodes Data Frames", func(t *testing.T) {
		srv := sseServer(t, []string{
			`data: {"type":"manual","phase":"fetching","done":1,"total":4}`,
			``,
			`data: {"type":"scheduler","schedulerId":"sch_1","phase":"analyzing","done":2,"total":6}`,
		}, false)
		defer srv.Close()

		sub := NewSubscriber(srv.URL+"?token=tok", srv.Client(), nil)
		frames, err := sub.Open(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer sub.Close()

		got := collectFrames(t, frames, 2)
		if got[0].Type != models.RunTypeManual || got[0].Phase != models.PhaseFetching {
			t.Errorf("unexpected first frame: %+v", got[0])
		}
		if got[1].SchedulerID != "sch_1" {
			t.Errorf("unexpected second frame: %+v", got[1])
		}
	})

	t.Run("Drops Malformed Frames Silently", func(t *testing.T) {
		srv := sseServer(t, []string{
			`: heartbeat`,
			`data: {broken`,
			`retry: 3000`,
			`data: {"type":"manual","phase":"downloading","done":3,"total":4}`,
		}, false)
		defer srv.Close()

		sub := NewSubscriber(srv.URL+"?token=tok", srv.Client(), nil)
		frames, err := sub.Open(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer sub.Close()

		got := collectFrames(t, frames, 1)
		if got[0].Phase != models.PhaseDownloading {
			t.Errorf("expected the one valid frame, got %+v", got[0])
		}
	})

	t.Run("Bare NDJSON Lines Accepted", func(t *testing.T) {
		srv := sseServer(t, []string{
			`{"type":"manual","phase":"fetching","done":0,"total":2}`,
		}, false)
		defer srv.Close()

		sub := NewSubscriber(srv.URL+"?token=tok", srv.Client(), nil)
		frames, err := sub.Open(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer sub.Close()

		got := collectFrames(t, frames, 1)
		if got[0].Type != models.RunTypeManual {
			t.Errorf("unexpected frame: %+v", got[0])
		}
	})

	t.Run("Channel Closes When Server Ends Stream", func(t *testing.T) {
		srv := sseServer(t, []string{
			`data: {"type":"manual","phase":"fetching","done":1,"total":2}`,
		}, false)
		defer srv.Close()

		sub := NewSubscriber(srv.URL+"?token=tok", srv.Client(), nil)
		frames, err := sub.Open(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer sub.Close()

		collectFrames(t, frames, 1)

		select {
		case _, ok := <-frames:
			if ok {
				t.Error("expected channel to close after server ended stream")
			}
		case <-time.After(5 * time.Second):
			t.Error("timed out waiting for channel close")
		}
	})

	t.Run("Close Cancels A Held Stream", func(t *testing.T) {
		srv := sseServer(t, []string{
			`data: {"type":"manual","phase":"fetching","done":1,"total":2}`,
		}, true)
		defer srv.Close()

		sub := NewSubscriber(srv.URL+"?token=tok", srv.Client(), nil)
		frames, err := sub.Open(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		collectFrames(t, frames, 1)
		sub.Close()

		select {
		case _, ok := <-frames:
			if ok {
				t.Error("expected no more frames after Close")
			}
		case <-time.After(5 * time.Second):
			t.Error("timed out waiting for channel close after Close")
		}
	})

	t.Run("Non-200 Status Is An Error", func(t *testing.T) {
		srv := sseServer(t, nil, false)
		defer srv.Close()

		// Missing token yields 401 from the test server
		sub := NewSubscriber(srv.URL, srv.Client(), nil)
		if _, err := sub.Open(context.Background()); err == nil {
			t.Error("expected error for unauthorized stream")
		}
	})

	t.Run("Close Returns After Failed Open", func(t *testing.T) {
		srv := sseServer(t, nil, false)
		defer srv.Close()

		// Missing token yields 401, so Open fails before the read loop starts
		sub := NewSubscriber(srv.URL, srv.Client(), nil)
		if _, err := sub.Open(context.Background()); err == nil {
			t.Fatal("expected error for unauthorized stream")
		}

		closed := make(chan struct{})
		go func() {
			sub.Close()
			close(closed)
		}()

		select {
		case <-closed:
		case <-time.After(2 * time.Second):
			t.Fatal("Close blocked after failed Open")
		}
	})

	t.Run("Second Open Rejected", func(t *testing.T) {
		srv := sseServer(t, nil, true)
		defer srv.Close()

		sub := NewSubscriber(srv.URL+"?token=tok", srv.Client(), nil)
		if _, err := sub.Open(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer sub.Close()

		if _, err := sub.Open(context.Background()); err == nil {
			t.Error("expected error for second Open on the same subscriber")
		}
	})
}

func TestDecodeLine(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`data: {"a":1}`, `{"a":1}`},
		{`data:{"a":1}`, `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{`: heartbeat`, ""},
		{`event: progress`, ""},
		{`id: 42`, ""},
		{`retry: 3000`, ""},
		{``, ""},
		{"data: {\"a\":1}\r", `{"a":1}`},
	}

	for _, tc := range cases {
		if got := decodeLine(tc.in); got != tc.want {
			t.Errorf("decodeLine(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
