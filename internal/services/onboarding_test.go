package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// fakeOnboardingBackend tracks a fixed checklist; completing a step moves it out
// of pending, and the status flips to completed when nothing is left.
type fakeOnboardingBackend struct {
	mu      sync.Mutex
	steps   []string
	pending []string
}

func (f *fakeOnboardingBackend) handler() http.Handler {
	mux := http.NewServeMux()

	status := func() map[string]any {
		return map[string]any{
			"completed": len(f.pending) == 0,
			"steps":     f.steps,
			"pending":   f.pending,
		}
	}

	mux.HandleFunc("GET /api/onboarding/status", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(status())
	})

	mux.HandleFunc("POST /api/onboarding/steps/{step}/complete", func(w http.ResponseWriter, r *http.Request) {
		step := r.PathValue("step")
		f.mu.Lock()
		defer f.mu.Unlock()
		if !slices.Contains(f.steps, step) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		f.pending = slices.DeleteFunc(f.pending, func(s string) bool { return s == step })
		json.NewEncoder(w).Encode(status())
	})

	return mux
}

func TestOnboarding(t *testing.T) {
	backend := &fakeOnboardingBackend{
		steps:   []string{"connect_account", "track_hashtag", "run_discovery"},
		pending: []string{"track_hashtag", "run_discovery"},
	}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := NewClient(srv.URL, "tok", srv.Client())
	ctx := context.Background()

	t.Run("Status Reports Pending Steps", func(t *testing.T) {
		status, err := client.OnboardingStatus(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if status.Completed {
			t.Error("expected onboarding to be incomplete")
		}
		if len(status.Steps) != 3 || len(status.Pending) != 2 {
			t.Errorf("unexpected checklist: %+v", status)
		}
	})

	t.Run("Complete Updates The Checklist", func(t *testing.T) {
		status, err := client.CompleteOnboardingStep(ctx, "track_hashtag")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if slices.Contains(status.Pending, "track_hashtag") {
			t.Error("expected track_hashtag to leave pending")
		}

		status, err = client.CompleteOnboardingStep(ctx, "run_discovery")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !status.Completed {
			t.Errorf("expected completed checklist, got %+v", status)
		}
	})

	t.Run("Unknown Step Is Not Found", func(t *testing.T) {
		_, err := client.CompleteOnboardingStep(ctx, "paint_shed")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
