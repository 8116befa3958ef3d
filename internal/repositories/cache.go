package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// ClassCacheAdapter caches fetched classes via ClassRepository.
//
// Existing entries are replaced with the newly fetched copy; the backend's
// response always wins over what was cached before.
type ClassCacheAdapter struct {
	repo *ClassRepository
}

// NewClassCacheAdapter creates a new ClassCacheAdapter with the given repository
func NewClassCacheAdapter(repo *ClassRepository) *ClassCacheAdapter {
	return &ClassCacheAdapter{repo: repo}
}

// CacheClass stores a fetched class, replacing any previously cached copy.
func (a *ClassCacheAdapter) CacheClass(kind string, class models.HookClass) error {
	analysisJSON := ""
	if class.Analysis != nil {
		data, err := shared.MarshalJSON(class.Analysis, false)
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		analysisJSON = string(data)
	}

	if existing, err := a.repo.GetByRemoteID(kind, class.ID); err == nil && existing != nil {
		existing.Class = class
		existing.AnalysisJSON = analysisJSON
		existing.FetchedAt = time.Now()
		if err := a.repo.Update(existing); err != nil {
			return fmt.Errorf("failed to refresh cached class: %w", err)
		}
		return nil
	}

	persisted := models.NewPersistedClass(0, kind, class.ID, class)
	persisted.AnalysisJSON = analysisJSON

	if err := a.repo.Create(persisted); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache class: %w", err)
	}

	return nil
}

// PostCacheAdapter caches fetched trending posts via PostRepository.
//
// Duplicate posts are silently ignored (UNIQUE constraint violations).
type PostCacheAdapter struct {
	repo *PostRepository
}

// NewPostCacheAdapter creates a new PostCacheAdapter with the given repository
func NewPostCacheAdapter(repo *PostRepository) *PostCacheAdapter {
	return &PostCacheAdapter{repo: repo}
}

// CachePost caches a trending post.
// Returns nil if the post already exists (deduplication).
// Only returns errors for actual failures (not constraint violations).
func (a *PostCacheAdapter) CachePost(post models.TrendingPost) error {
	existing, err := a.repo.GetByRemoteID(post.ID)
	if err == nil && existing != nil {
		return nil
	}

	persisted := models.NewPersistedPost(0, post)

	if err := a.repo.Create(persisted); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache post: %w", err)
	}

	return nil
}
