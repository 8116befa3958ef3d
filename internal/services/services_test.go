package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blossomlabs/blossom-cli/internal/shared"
)

func TestClientDoRequest(t *testing.T) {
	t.Run("Bearer Header Attached", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "tok_abc", srv.Client())
		var out map[string]any
		if err := client.doRequest(context.Background(), http.MethodGet, "/api/trends/posts", nil, &out); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotAuth != "Bearer tok_abc" {
			t.Errorf("expected bearer header, got %q", gotAuth)
		}
	})

	t.Run("Backend Error String Surfaced Verbatim", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"hashtag limit reached"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "tok", srv.Client())
		err := client.doRequest(context.Background(), http.MethodPost, "/api/analysis/trending/hashtags", map[string]string{"tag": "x"}, nil)

		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
		if !strings.Contains(err.Error(), "hashtag limit reached") {
			t.Errorf("expected backend error string in %q", err.Error())
		}
	})

	t.Run("Not Found Sentinel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "tok", srv.Client())
		err := client.doRequest(context.Background(), http.MethodGet, "/api/analysis/hooks/missing", nil, nil)

		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Unauthorized Sentinel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client())
		err := client.doRequest(context.Background(), http.MethodGet, "/api/social/accounts", nil, nil)

		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("No Token No Header", func(t *testing.T) {
		var hadAuth bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hadAuth = r.Header["Authorization"]
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", srv.Client())
		if err := client.doRequest(context.Background(), http.MethodGet, "/", nil, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if hadAuth {
			t.Error("expected no Authorization header without a token")
		}
	})
}

func TestProgressStreamURL(t *testing.T) {
	client := NewClient("https://app.example.com", "tok/with+chars", nil)

	url := client.ProgressStreamURL("")
	if !strings.HasPrefix(url, "https://app.example.com/api/analysis/trending/progress?token=") {
		t.Errorf("unexpected stream URL: %s", url)
	}
	if strings.Contains(url, "tok/with+chars") {
		t.Error("expected token to be query-escaped")
	}
}

func TestPaginatedPageOf(t *testing.T) {
	p := Paginated[int]{Total: 101, Page: 2, PageSize: 10}
	page := p.PageOf()

	if page.TotalPages() != 11 {
		t.Errorf("expected 11 pages, got %d", page.TotalPages())
	}
	if !page.HasNext() || !page.HasPrev() {
		t.Error("expected middle page to have next and prev")
	}
}
