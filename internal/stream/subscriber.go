package stream

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/charmbracelet/log"
)

// Subscriber owns a single long-lived connection to the progress stream endpoint.
//
// Open may be called once per Subscriber; Close cancels the request context and
// waits for the read loop to drain. The frame channel closes when the transport ends,
// whichever side ended it.
type Subscriber struct {
	url        string
	httpClient *http.Client
	logger     *log.Logger

	mu     sync.Mutex
	opened bool
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSubscriber creates a Subscriber for the given stream URL.
// The URL carries the query-string token; no Authorization header is sent.
func NewSubscriber(url string, httpClient *http.Client, logger *log.Logger) *Subscriber {
	if httpClient == nil {
		// No timeout: the stream is long-lived by design
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Subscriber{
		url:        url,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Open connects to the stream and returns the frame channel.
//
// Decoded frames are delivered in arrival order; malformed payloads (heartbeats,
// comments, partial JSON) are dropped silently. The channel closes when the server
// ends the stream or Close is called.
func (s *Subscriber) Open(ctx context.Context) (<-chan *models.DiscoveryProgress, error) {
	s.mu.Lock()
	if s.opened {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: subscriber already opened", shared.ErrInvalidArgument)
	}
	s.opened = true

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.mu.Unlock()

	// The read goroutine owns closing done, but it only starts on success;
	// error returns must close it themselves or a later Close blocks forever.
	fail := func() {
		cancel()
		close(s.done)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		fail()
		return nil, fmt.Errorf("failed to create stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		fail()
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		fail()
		return nil, fmt.Errorf("%w: stream returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	frames := make(chan *models.DiscoveryProgress, 32)

	go func() {
		defer close(frames)
		defer close(s.done)
		defer resp.Body.Close()

		dropped := 0
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			payload := decodeLine(scanner.Text())
			if payload == "" {
				continue
			}

			frame, err := models.ParseProgressFrame([]byte(payload))
			if err != nil {
				// Transport noise, not an error
				dropped++
				s.logger.Debug("dropped progress frame", "error", err, "total_dropped", dropped)
				continue
			}

			select {
			case frames <- frame:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			s.logger.Debug("progress stream ended", "error", err)
		}
	}()

	return frames, nil
}

// Close cancels the stream and blocks until the read loop exits.
// Safe to call multiple times and before Open.
func (s *Subscriber) Close() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// decodeLine extracts the JSON payload from one stream line.
//
// Supports both bare NDJSON lines and SSE "data:" framing; comment lines (leading
// colon) and event/id/retry fields yield no payload.
func decodeLine(line string) string {
	line = strings.TrimRight(line, "\r")
	if line == "" || strings.HasPrefix(line, ":") {
		return ""
	}

	if rest, ok := strings.CutPrefix(line, "data:"); ok {
		return strings.TrimSpace(rest)
	}

	if strings.HasPrefix(line, "event:") || strings.HasPrefix(line, "id:") || strings.HasPrefix(line, "retry:") {
		return ""
	}

	return line
}
