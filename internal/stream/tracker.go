package stream

import (
	"sort"
	"sync"

	"github.com/blossomlabs/blossom-cli/internal/models"
)

// Effect describes what applying a frame did to the tracker's state.
type Effect struct {
	Removed bool // the run left display state (terminal frame)
	Reload  bool // owner should re-fetch its data
	Error   string
}

// Tracker folds progress frames into the two pieces of display state the Discovery
// view renders: one manual-run slot and a map of schedulerId to the latest frame.
//
// Merging is last-write-wins with no partial-field merging. A completed frame removes
// the run and requests a data reload; an error frame removes the run without one (the
// operator re-triggers via an independent POST). Reloads carry a generation counter
// so a stale reload that resolves late can be discarded by the owner.
type Tracker struct {
	mu         sync.Mutex
	manual     *models.DiscoveryProgress
	schedulers map[string]*models.DiscoveryProgress
	generation uint64
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		schedulers: make(map[string]*models.DiscoveryProgress),
	}
}

// Apply folds one frame into the tracker and reports the effect.
func (t *Tracker) Apply(frame *models.DiscoveryProgress) Effect {
	if frame == nil {
		return Effect{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch frame.Type {
	case models.RunTypeManual:
		return t.applyManual(frame)
	case models.RunTypeScheduler:
		return t.applyScheduler(frame)
	}
	return Effect{}
}

func (t *Tracker) applyManual(frame *models.DiscoveryProgress) Effect {
	if frame.Phase.Terminal() {
		t.manual = nil
		if frame.Phase == models.PhaseCompleted {
			t.generation++
			return Effect{Removed: true, Reload: true}
		}
		return Effect{Removed: true, Error: frame.Error}
	}

	t.manual = frame
	return Effect{}
}

func (t *Tracker) applyScheduler(frame *models.DiscoveryProgress) Effect {
	if frame.Phase.Terminal() {
		delete(t.schedulers, frame.SchedulerID)
		if frame.Phase == models.PhaseCompleted {
			t.generation++
			return Effect{Removed: true, Reload: true}
		}
		return Effect{Removed: true, Error: frame.Error}
	}

	t.schedulers[frame.SchedulerID] = frame
	return Effect{}
}

// Manual returns the latest manual-run frame, or nil when no manual run is live.
func (t *Tracker) Manual() *models.DiscoveryProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.manual
}

// Scheduler returns the latest frame for a scheduler run, or nil when not live.
func (t *Tracker) Scheduler(id string) *models.DiscoveryProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.schedulers[id]
}

// SchedulerIDs returns the live scheduler run IDs in stable order.
func (t *Tracker) SchedulerIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(t.schedulers))
	for id := range t.schedulers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ActiveCount returns the number of runs currently visible.
func (t *Tracker) ActiveCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.schedulers)
	if t.manual != nil {
		n++
	}
	return n
}

// Generation returns the reload generation. Owners stamp outgoing reloads with this
// value and drop responses whose stamp no longer matches.
func (t *Tracker) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation
}

// Reset clears all display state without touching the generation counter.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.manual = nil
	t.schedulers = make(map[string]*models.DiscoveryProgress)
}
