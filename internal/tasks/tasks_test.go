package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/services"
)

// Mock API client for testing
type mockAPIClient struct {
	responses map[string]*services.APIResponse
	getErr    error
}

func (m *mockAPIClient) Get(ctx context.Context, path string) (*services.APIResponse, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if resp, ok := m.responses[path]; ok {
		return resp, nil
	}
	return &services.APIResponse{
		StatusCode: 404,
		Body:       []byte("not found"),
	}, nil
}

type mockClassFetcher struct {
	hooks      map[string]*models.HookClass
	formats    map[string]*models.FormatClass
	videos     map[string][]models.TrendingPost
	hookErr    error
	formatErr  error
	videosErr  error
	videoCalls int
}

func (m *mockClassFetcher) HookClass(ctx context.Context, id string) (*models.HookClass, error) {
	if m.hookErr != nil {
		return nil, m.hookErr
	}
	if class, ok := m.hooks[id]; ok {
		return class, nil
	}
	return nil, fmt.Errorf("class not found")
}

func (m *mockClassFetcher) HookClassVideos(ctx context.Context, id string, opts services.ClassListOptions) (*services.Paginated[models.TrendingPost], error) {
	m.videoCalls++
	if m.videosErr != nil {
		return nil, m.videosErr
	}
	posts := m.videos[id]
	return &services.Paginated[models.TrendingPost]{
		Items: posts,
		Total: len(posts),
	}, nil
}

func (m *mockClassFetcher) FormatClass(ctx context.Context, id string) (*models.FormatClass, error) {
	if m.formatErr != nil {
		return nil, m.formatErr
	}
	if class, ok := m.formats[id]; ok {
		return class, nil
	}
	return nil, fmt.Errorf("class not found")
}

func okJSON(data any) *services.APIResponse {
	return &services.APIResponse{
		StatusCode: 200,
		IsJSON:     true,
		JSONData:   data,
	}
}

func TestDashboardEngine_Dump(t *testing.T) {
	t.Run("Full Dump", func(t *testing.T) {
		api := &mockAPIClient{
			responses: map[string]*services.APIResponse{
				"/api/social/accounts":           okJSON([]any{map[string]any{"platform": "tiktok"}}),
				"/api/analysis/hooks":            okJSON(map[string]any{"items": []any{}}),
				"/api/analysis/formats":          okJSON(map[string]any{"items": []any{}}),
				"/api/analysis/trending/hashtags": okJSON(map[string]any{"hashtags": []any{}}),
				"/api/management/schedulers":     okJSON(map[string]any{"schedulers": []any{}}),
				"/api/trends/posts":              okJSON(map[string]any{"items": []any{}}),
				"/api/support/tickets":           okJSON(map[string]any{"tickets": []any{}}),
				"/api/billing/plans":             okJSON(map[string]any{"plans": []any{}}),
				"/api/billing/subscription":      okJSON(map[string]any{"plan_slug": "growth"}),
				"/api/onboarding/status":         okJSON(map[string]any{"completed": true}),
			},
		}

		engine := NewDashboardEngine(nil, api)
		result, err := engine.Dump(context.Background(), nil)
		if err != nil {
			t.Fatalf("Dump failed: %v", err)
		}

		if len(result.Errors) != 0 {
			t.Errorf("expected no endpoint errors, got %v", result.Errors)
		}
		if result.Accounts == nil || result.Subscription == nil {
			t.Errorf("expected all sections populated, got %+v", result)
		}
	})

	t.Run("Partial Failures Collected", func(t *testing.T) {
		api := &mockAPIClient{
			responses: map[string]*services.APIResponse{
				"/api/social/accounts": okJSON([]any{}),
			},
		}

		engine := NewDashboardEngine(nil, api)
		result, err := engine.Dump(context.Background(), nil)
		if err != nil {
			t.Fatalf("Dump failed: %v", err)
		}

		if result.Accounts == nil {
			t.Errorf("expected accounts section populated")
		}
		if len(result.Errors) != 9 {
			t.Errorf("expected 9 failed endpoints, got %d", len(result.Errors))
		}
	})

	t.Run("Transport Errors Collected", func(t *testing.T) {
		api := &mockAPIClient{getErr: errors.New("connection refused")}

		engine := NewDashboardEngine(nil, api)
		result, err := engine.Dump(context.Background(), nil)
		if err != nil {
			t.Fatalf("Dump failed: %v", err)
		}

		if len(result.Errors) != 10 {
			t.Errorf("expected every endpoint to fail, got %d", len(result.Errors))
		}
	})

	t.Run("Nil API Client", func(t *testing.T) {
		engine := NewDashboardEngine(nil, nil)
		if _, err := engine.Dump(context.Background(), nil); err == nil {
			t.Error("expected error for nil API client")
		}
	})

	t.Run("Progress Updates Sent", func(t *testing.T) {
		api := &mockAPIClient{responses: map[string]*services.APIResponse{}}
		engine := NewDashboardEngine(nil, api)

		progress := make(chan ProgressUpdate, 32)
		if _, err := engine.Dump(context.Background(), progress); err != nil {
			t.Fatalf("Dump failed: %v", err)
		}
		close(progress)

		count := 0
		for range progress {
			count++
		}
		if count != 10 {
			t.Errorf("expected 10 progress updates, got %d", count)
		}
	})

	t.Run("Full Progress Channel Does Not Block", func(t *testing.T) {
		api := &mockAPIClient{responses: map[string]*services.APIResponse{}}
		engine := NewDashboardEngine(nil, api)

		// Capacity 1: the remaining sends must be dropped, not block
		progress := make(chan ProgressUpdate, 1)
		if _, err := engine.Dump(context.Background(), progress); err != nil {
			t.Fatalf("Dump failed: %v", err)
		}
	})
}

func TestDumpResult_Data(t *testing.T) {
	result := &DumpResult{
		Accounts: []any{"a"},
		Errors: []EndpointResult{
			{Endpoint: "/api/trends/posts", Error: errors.New("status 500")},
		},
	}

	data := result.Data()
	if len(data.Errors) != 1 {
		t.Fatalf("expected 1 error entry, got %d", len(data.Errors))
	}
	entry, ok := data.Errors[0].(map[string]string)
	if !ok {
		t.Fatalf("unexpected error entry type: %T", data.Errors[0])
	}
	if entry["endpoint"] != "/api/trends/posts" || entry["error"] != "status 500" {
		t.Errorf("unexpected error entry: %v", entry)
	}
}
