package models

import (
	"fmt"
	"time"
)

// timestamps is embedded by persisted cache records to satisfy [Model].
type timestamps struct {
	id        string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func (t *timestamps) ID() string           { return t.id }
func (t *timestamps) CreatedAt() time.Time { return t.createdAt }
func (t *timestamps) UpdatedAt() time.Time { return t.updatedAt }

func (t *timestamps) SetID(id string)            { t.id = id }
func (t *timestamps) SetCreatedAt(at time.Time)  { t.createdAt = at }
func (t *timestamps) SetUpdatedAt(at time.Time)  { t.updatedAt = at }
func (t *timestamps) SetDeletedAt(at *time.Time) { t.deletedAt = at }
func (t *timestamps) DeletedAt() *time.Time      { return t.deletedAt }

// PersistedClass is a locally cached hook or format class.
//
// Kind is "hook" or "format"; RemoteID is the backend's identifier. FetchedAt stamps
// when the mirror was taken so stale cache can be distinguished in the UI.
type PersistedClass struct {
	timestamps
	Sequence     int
	Kind         string
	RemoteID     string
	Class        HookClass
	AnalysisJSON string
	FetchedAt    time.Time
}

// NewPersistedClass wraps a fetched class for cache storage.
func NewPersistedClass(sequence int, kind, remoteID string, class HookClass) *PersistedClass {
	now := time.Now()
	p := &PersistedClass{
		Sequence:  sequence,
		Kind:      kind,
		RemoteID:  remoteID,
		Class:     class,
		FetchedAt: now,
	}
	p.createdAt = now
	p.updatedAt = now
	return p
}

// Validate checks cache invariants before insert.
func (p *PersistedClass) Validate() error {
	if p.RemoteID == "" {
		return fmt.Errorf("remote ID is required")
	}
	if p.Kind != "hook" && p.Kind != "format" {
		return fmt.Errorf("invalid class kind: %s", p.Kind)
	}
	if p.Class.Name == "" {
		return fmt.Errorf("class name is required")
	}
	return nil
}

// PersistedPost is a locally cached trending post.
type PersistedPost struct {
	timestamps
	Sequence  int
	Post      TrendingPost
	FetchedAt time.Time
}

// NewPersistedPost wraps a fetched trending post for cache storage.
func NewPersistedPost(sequence int, post TrendingPost) *PersistedPost {
	now := time.Now()
	p := &PersistedPost{
		Sequence:  sequence,
		Post:      post,
		FetchedAt: now,
	}
	p.createdAt = now
	p.updatedAt = now
	return p
}

// Validate checks cache invariants before insert.
func (p *PersistedPost) Validate() error {
	if p.Post.ID == "" {
		return fmt.Errorf("post ID is required")
	}
	return nil
}
