package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func testClass(remoteID string) models.HookClass {
	return models.HookClass{
		ID:            remoteID,
		Name:          "Question Hook",
		Technique:     "open_question",
		AvgViews:      1_200_000,
		AvgEngagement: 4.7,
		VideoCount:    42,
	}
}

func testPost(remoteID string) models.TrendingPost {
	return models.TrendingPost{
		ID:       remoteID,
		Platform: "tiktok",
		Author:   "creator_one",
		Caption:  "morning routine",
		Hashtag:  "fittok",
		Views:    1_299_000,
		Likes:    84_000,
		PostedAt: "2026-08-20T10:00:00Z",
	}
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	first, err := NextSequence(db, "hook_classes")
	if err != nil {
		t.Fatalf("NextSequence failed: %v", err)
	}
	second, err := NextSequence(db, "hook_classes")
	if err != nil {
		t.Fatalf("NextSequence failed: %v", err)
	}

	if second != first+1 {
		t.Errorf("expected monotonic sequence, got %d then %d", first, second)
	}
}

func TestClassRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewClassRepository(db)

		class := models.NewPersistedClass(0, "hook", "hc_1", testClass("hc_1"))
		if err := repo.Create(class); err != nil {
			t.Fatalf("failed to create class: %v", err)
		}

		if class.ID() == "" {
			t.Error("class ID should be set after creation")
		}
		if class.Sequence == 0 {
			t.Error("class sequence should be assigned on creation")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewClassRepository(db)

		class := models.NewPersistedClass(0, "hook", "hc_1", testClass("hc_1"))
		if err := repo.Create(class); err != nil {
			t.Fatalf("failed to create class: %v", err)
		}

		got, err := repo.Get(class.ID())
		if err != nil {
			t.Fatalf("failed to get class: %v", err)
		}
		if got.Class.Name != "Question Hook" || got.Kind != "hook" {
			t.Errorf("unexpected class: %+v", got)
		}
	})

	t.Run("GetByRemoteID Distinguishes Kind", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewClassRepository(db)

		hook := models.NewPersistedClass(0, "hook", "c_1", testClass("c_1"))
		if err := repo.Create(hook); err != nil {
			t.Fatalf("failed to create hook class: %v", err)
		}

		format := models.NewPersistedClass(0, "format", "c_1", testClass("c_1"))
		if err := repo.Create(format); err != nil {
			t.Fatalf("same remote ID under different kind should insert: %v", err)
		}

		got, err := repo.GetByRemoteID("format", "c_1")
		if err != nil {
			t.Fatalf("failed to get format class: %v", err)
		}
		if got.Kind != "format" {
			t.Errorf("expected format kind, got %s", got.Kind)
		}
	})

	t.Run("Duplicate Kind And Remote ID Rejected", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewClassRepository(db)

		if err := repo.Create(models.NewPersistedClass(0, "hook", "c_1", testClass("c_1"))); err != nil {
			t.Fatalf("failed to create class: %v", err)
		}
		if err := repo.Create(models.NewPersistedClass(0, "hook", "c_1", testClass("c_1"))); err == nil {
			t.Error("expected UNIQUE constraint violation")
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewClassRepository(db)

		class := models.NewPersistedClass(0, "hook", "hc_1", testClass("hc_1"))
		if err := repo.Create(class); err != nil {
			t.Fatalf("failed to create class: %v", err)
		}

		class.Class.VideoCount = 50
		class.AnalysisJSON = `{"blueprint":"Open with a question"}`
		if err := repo.Update(class); err != nil {
			t.Fatalf("failed to update class: %v", err)
		}

		got, err := repo.Get(class.ID())
		if err != nil {
			t.Fatalf("failed to get class: %v", err)
		}
		if got.Class.VideoCount != 50 || got.AnalysisJSON == "" {
			t.Errorf("update not persisted: %+v", got)
		}
	})

	t.Run("Delete Excludes From Queries", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewClassRepository(db)

		class := models.NewPersistedClass(0, "hook", "hc_1", testClass("hc_1"))
		if err := repo.Create(class); err != nil {
			t.Fatalf("failed to create class: %v", err)
		}

		if err := repo.Delete(class.ID()); err != nil {
			t.Fatalf("failed to delete class: %v", err)
		}
		if _, err := repo.Get(class.ID()); err == nil {
			t.Error("expected soft-deleted class to be excluded")
		}
		if err := repo.Delete(class.ID()); err == nil {
			t.Error("expected second delete to fail")
		}
	})

	t.Run("List Filters By Kind", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewClassRepository(db)

		for _, kind := range []string{"hook", "hook", "format"} {
			id := shared.GenerateID()
			if err := repo.Create(models.NewPersistedClass(0, kind, id, testClass(id))); err != nil {
				t.Fatalf("failed to create class: %v", err)
			}
		}

		hooks, err := repo.List(map[string]any{"kind": "hook"})
		if err != nil {
			t.Fatalf("failed to list classes: %v", err)
		}
		if len(hooks) != 2 {
			t.Errorf("expected 2 hook classes, got %d", len(hooks))
		}

		all, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list classes: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 classes, got %d", len(all))
		}
	})
}

func TestPostRepository(t *testing.T) {
	t.Run("Create And Get", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostRepository(db)

		post := models.NewPersistedPost(0, testPost("post1"))
		if err := repo.Create(post); err != nil {
			t.Fatalf("failed to create post: %v", err)
		}

		got, err := repo.GetByRemoteID("post1")
		if err != nil {
			t.Fatalf("failed to get post: %v", err)
		}
		if got.Post.Author != "creator_one" || got.Post.Views != 1_299_000 {
			t.Errorf("unexpected post: %+v", got)
		}
		if got.Post.PostedAt != "2026-08-20T10:00:00Z" {
			t.Errorf("unexpected posted_at: %q", got.Post.PostedAt)
		}
	})

	t.Run("List Filters", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostRepository(db)

		posts := []models.TrendingPost{
			testPost("post1"),
			testPost("post2"),
			{ID: "post3", Platform: "instagram", Hashtag: "mealprep"},
		}
		for _, p := range posts {
			if err := repo.Create(models.NewPersistedPost(0, p)); err != nil {
				t.Fatalf("failed to create post: %v", err)
			}
		}

		fittok, err := repo.List(map[string]any{"hashtag": "fittok"})
		if err != nil {
			t.Fatalf("failed to list posts: %v", err)
		}
		if len(fittok) != 2 {
			t.Errorf("expected 2 fittok posts, got %d", len(fittok))
		}

		insta, err := repo.List(map[string]any{"platform": "instagram"})
		if err != nil {
			t.Fatalf("failed to list posts: %v", err)
		}
		if len(insta) != 1 {
			t.Errorf("expected 1 instagram post, got %d", len(insta))
		}
	})
}

func TestCredentialRepository(t *testing.T) {
	t.Run("Save And Get", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialRepository(db)

		cred := &StoredCredential{
			Token:     "tok_abc",
			Email:     "user@example.com",
			Role:      "user",
			Plan:      "growth",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		if err := repo.Save(cred); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}

		got, err := repo.Get()
		if err != nil {
			t.Fatalf("failed to get credential: %v", err)
		}
		if got.Token != "tok_abc" || got.Email != "user@example.com" {
			t.Errorf("unexpected credential: %+v", got)
		}
	})

	t.Run("Save Replaces Previous Identity", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialRepository(db)

		if err := repo.Save(&StoredCredential{Token: "tok_1", Email: "a@example.com"}); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}
		if err := repo.Save(&StoredCredential{Token: "tok_2", Email: "b@example.com"}); err != nil {
			t.Fatalf("failed to replace credential: %v", err)
		}

		got, err := repo.Get()
		if err != nil {
			t.Fatalf("failed to get credential: %v", err)
		}
		if got.Token != "tok_2" || got.Email != "b@example.com" {
			t.Errorf("expected the replacement to win, got %+v", got)
		}
	})

	t.Run("Get Without Saved Identity", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialRepository(db)

		if _, err := repo.Get(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialRepository(db)

		if err := repo.Save(&StoredCredential{Token: "tok_1"}); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}
		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear credential: %v", err)
		}
		if _, err := repo.Get(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected cleared store to report ErrNotAuthenticated, got %v", err)
		}
		if err := repo.Clear(); err != nil {
			t.Errorf("clearing an empty store should not error: %v", err)
		}
	})

	t.Run("Save Without Token", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCredentialRepository(db)

		if err := repo.Save(&StoredCredential{}); err == nil {
			t.Error("expected error for empty token")
		}
	})
}

func TestCacheAdapters(t *testing.T) {
	t.Run("ClassCacheAdapter Replaces On Refetch", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewClassRepository(db)
		adapter := NewClassCacheAdapter(repo)

		class := testClass("hc_1")
		if err := adapter.CacheClass("hook", class); err != nil {
			t.Fatalf("failed to cache class: %v", err)
		}

		class.VideoCount = 99
		class.Analysis = &models.ClassAnalysis{Blueprint: "Open with a question"}
		if err := adapter.CacheClass("hook", class); err != nil {
			t.Fatalf("failed to refresh cached class: %v", err)
		}

		rows, err := repo.List(map[string]any{"kind": "hook"})
		if err != nil {
			t.Fatalf("failed to list classes: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected a single cached row, got %d", len(rows))
		}
		if rows[0].Class.VideoCount != 99 || rows[0].AnalysisJSON == "" {
			t.Errorf("expected fetched copy to win, got %+v", rows[0])
		}
	})

	t.Run("Cached Analysis Survives A Round Trip", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewClassRepository(db)
		adapter := NewClassCacheAdapter(repo)

		class := testClass("hc_1")
		class.Analysis = &models.ClassAnalysis{
			Blueprint:  "Open with a question",
			Tactics:    []string{"direct address", "pattern interrupt"},
			WhenToUse:  []string{"High-competition niches"},
			ExampleIDs: []string{"vid_1", "vid_2"},
		}
		if err := adapter.CacheClass("hook", class); err != nil {
			t.Fatalf("failed to cache class: %v", err)
		}

		cached, err := repo.GetByRemoteID("hook", "hc_1")
		if err != nil {
			t.Fatalf("failed to read cached class: %v", err)
		}

		got := cached.Class.Analysis
		if got == nil {
			t.Fatal("expected cached class to carry its analysis")
		}
		if got.Blueprint != class.Analysis.Blueprint {
			t.Errorf("expected blueprint %q, got %q", class.Analysis.Blueprint, got.Blueprint)
		}
		if len(got.Tactics) != 2 || got.Tactics[1] != "pattern interrupt" {
			t.Errorf("unexpected tactics: %v", got.Tactics)
		}
		if len(got.ExampleIDs) != 2 {
			t.Errorf("expected 2 example IDs, got %d", len(got.ExampleIDs))
		}
	})

	t.Run("PostCacheAdapter Deduplicates", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostRepository(db)
		adapter := NewPostCacheAdapter(repo)

		if err := adapter.CachePost(testPost("post1")); err != nil {
			t.Fatalf("failed to cache post: %v", err)
		}
		if err := adapter.CachePost(testPost("post1")); err != nil {
			t.Fatalf("duplicate post should be ignored: %v", err)
		}

		rows, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list posts: %v", err)
		}
		if len(rows) != 1 {
			t.Errorf("expected a single cached post, got %d", len(rows))
		}
	})
}
