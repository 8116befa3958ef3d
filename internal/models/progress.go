package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// RunType discriminates progress frames between the ad-hoc manual run and named scheduler runs.
type RunType string

const (
	RunTypeManual    RunType = "manual"
	RunTypeScheduler RunType = "scheduler"
)

// RunPhase is the server-driven phase of a discovery run.
//
// Runs move fetching → analyzing → downloading → completed, with error reachable from
// any non-terminal phase. The client never transitions phases itself, only displays them.
type RunPhase string

const (
	PhaseFetching    RunPhase = "fetching"
	PhaseAnalyzing   RunPhase = "analyzing"
	PhaseDownloading RunPhase = "downloading"
	PhaseCompleted   RunPhase = "completed"
	PhaseError       RunPhase = "error"
)

// Terminal reports whether the phase ends a run's visibility.
func (p RunPhase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseError
}

// Valid reports whether the phase is one the stream contract defines.
func (p RunPhase) Valid() bool {
	switch p {
	case PhaseFetching, PhaseAnalyzing, PhaseDownloading, PhaseCompleted, PhaseError:
		return true
	}
	return false
}

// HashtagProgress is the per-hashtag sub-progress inside a discovery frame.
type HashtagProgress struct {
	Tag       string `json:"tag"`
	Done      int    `json:"done"`
	Total     int    `json:"total"`
	PostCount int    `json:"post_count"`
}

// DiscoveryProgress is one frame of the live progress stream.
//
// Frames are ephemeral projections: each frame supersedes the previous one for the
// same run (last-write-wins, no field merging), and terminal frames discard the run
// from display entirely.
type DiscoveryProgress struct {
	Type           RunType           `json:"type"`
	SchedulerID    string            `json:"schedulerId,omitempty"`
	Phase          RunPhase          `json:"phase"`
	Done           int               `json:"done"`
	Total          int               `json:"total"`
	CurrentHashtag string            `json:"current_hashtag,omitempty"`
	Hashtags       []HashtagProgress `json:"hashtags,omitempty"`
	StartedAt      string            `json:"started_at,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// ParseProgressFrame decodes one stream payload into a DiscoveryProgress.
//
// Returns an error for malformed JSON or frames missing the contract's discriminator
// fields; callers treat those as transport noise and drop them.
func ParseProgressFrame(data []byte) (*DiscoveryProgress, error) {
	var frame DiscoveryProgress
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("malformed progress frame: %w", err)
	}

	if frame.Type != RunTypeManual && frame.Type != RunTypeScheduler {
		return nil, fmt.Errorf("unknown run type %q", frame.Type)
	}
	if !frame.Phase.Valid() {
		return nil, fmt.Errorf("unknown phase %q", frame.Phase)
	}
	if frame.Type == RunTypeScheduler && frame.SchedulerID == "" {
		return nil, fmt.Errorf("scheduler frame missing schedulerId")
	}

	return &frame, nil
}

// StartedTime parses the frame's start timestamp, returning the zero time on failure.
func (p DiscoveryProgress) StartedTime() time.Time {
	t, err := time.Parse(time.RFC3339, p.StartedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
