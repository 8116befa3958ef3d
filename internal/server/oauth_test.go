package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCodeHandler(t *testing.T) {
	t.Run("Captures Code And State", func(t *testing.T) {
		h := NewCodeHandler("state123")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=state123", nil)
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		result := <-h.Result()
		if result.Error() != nil {
			t.Fatalf("unexpected error: %v", result.Error())
		}
		if result.Code != "abc" || result.State != "state123" {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("Rejects Bad State", func(t *testing.T) {
		h := NewCodeHandler("state123")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=wrong", nil)
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if result := <-h.Result(); result.Error() == nil {
			t.Error("expected error result for bad state")
		}
	})

	t.Run("Second Callback Rejected", func(t *testing.T) {
		h := NewCodeHandler("state123")

		first := httptest.NewRecorder()
		h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=state123", nil))

		second := httptest.NewRecorder()
		h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/callback?code=xyz&state=state123", nil))

		if second.Code != http.StatusBadRequest {
			t.Errorf("expected replay to be rejected, got %d", second.Code)
		}

		result := <-h.Result()
		if result.Code != "abc" {
			t.Errorf("expected first code to win, got %q", result.Code)
		}
	})

	t.Run("Missing Code Reports Provider Error", func(t *testing.T) {
		h := NewCodeHandler("state123")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/callback?state=state123&error=access_denied&error_description=denied", nil)
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if result := <-h.Result(); result.Error() == nil {
			t.Error("expected error result when code is missing")
		}
	})
}

func TestBasicRouter(t *testing.T) {
	t.Run("Method Filtering", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405 for wrong method, got %d", rec.Code)
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		router := NewBasicRouter()

		var order []string
		named := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router.Use(named("first"), named("second"))
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

		want := []string{"first", "second", "handler"}
		if len(order) != len(want) {
			t.Fatalf("unexpected call order: %v", order)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Fatalf("unexpected call order: %v", order)
			}
		}
	})
}
