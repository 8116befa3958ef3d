package stream

import (
	"testing"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manualFrame(phase models.RunPhase, done, total int) *models.DiscoveryProgress {
	return &models.DiscoveryProgress{Type: models.RunTypeManual, Phase: phase, Done: done, Total: total}
}

func schedulerFrame(id string, phase models.RunPhase, done, total int) *models.DiscoveryProgress {
	return &models.DiscoveryProgress{Type: models.RunTypeScheduler, SchedulerID: id, Phase: phase, Done: done, Total: total}
}

func TestTracker(t *testing.T) {
	t.Run("Last Frame Wins", func(t *testing.T) {
		tr := NewTracker()

		tr.Apply(schedulerFrame("sch_1", models.PhaseFetching, 1, 10))
		tr.Apply(schedulerFrame("sch_1", models.PhaseAnalyzing, 4, 10))
		tr.Apply(schedulerFrame("sch_1", models.PhaseAnalyzing, 7, 10))

		latest := tr.Scheduler("sch_1")
		require.NotNil(t, latest)
		assert.Equal(t, models.PhaseAnalyzing, latest.Phase)
		assert.Equal(t, 7, latest.Done, "state reflects only the most recent frame")
	})

	t.Run("No Partial Merge", func(t *testing.T) {
		tr := NewTracker()

		first := schedulerFrame("sch_1", models.PhaseFetching, 2, 10)
		first.CurrentHashtag = "fittok"
		tr.Apply(first)

		// Later frame omits the hashtag; the old value must not bleed through
		tr.Apply(schedulerFrame("sch_1", models.PhaseDownloading, 9, 10))

		latest := tr.Scheduler("sch_1")
		require.NotNil(t, latest)
		assert.Empty(t, latest.CurrentHashtag)
	})

	t.Run("Completed Removes And Reloads", func(t *testing.T) {
		tr := NewTracker()
		tr.Apply(schedulerFrame("sch_1", models.PhaseDownloading, 9, 10))

		gen := tr.Generation()
		effect := tr.Apply(schedulerFrame("sch_1", models.PhaseCompleted, 10, 10))

		assert.True(t, effect.Removed)
		assert.True(t, effect.Reload)
		assert.Nil(t, tr.Scheduler("sch_1"))
		assert.Equal(t, gen+1, tr.Generation(), "completed frame advances the reload generation")
	})

	t.Run("Error Removes Without Reload", func(t *testing.T) {
		tr := NewTracker()
		tr.Apply(manualFrame(models.PhaseAnalyzing, 3, 10))

		frame := manualFrame(models.PhaseError, 3, 10)
		frame.Error = "rate limited by platform"
		effect := tr.Apply(frame)

		assert.True(t, effect.Removed)
		assert.False(t, effect.Reload)
		assert.Equal(t, "rate limited by platform", effect.Error)
		assert.Nil(t, tr.Manual())
	})

	t.Run("Manual And Scheduler Slots Independent", func(t *testing.T) {
		tr := NewTracker()

		tr.Apply(manualFrame(models.PhaseFetching, 1, 5))
		tr.Apply(schedulerFrame("sch_1", models.PhaseFetching, 1, 10))
		tr.Apply(schedulerFrame("sch_2", models.PhaseAnalyzing, 2, 8))

		assert.Equal(t, 3, tr.ActiveCount())
		assert.Equal(t, []string{"sch_1", "sch_2"}, tr.SchedulerIDs())

		tr.Apply(manualFrame(models.PhaseCompleted, 5, 5))
		assert.Nil(t, tr.Manual())
		assert.Equal(t, 2, tr.ActiveCount(), "scheduler runs untouched by manual completion")
	})

	t.Run("Concurrent Scheduler Runs Keyed Separately", func(t *testing.T) {
		tr := NewTracker()

		tr.Apply(schedulerFrame("sch_1", models.PhaseFetching, 1, 10))
		tr.Apply(schedulerFrame("sch_2", models.PhaseDownloading, 7, 8))

		a := tr.Scheduler("sch_1")
		b := tr.Scheduler("sch_2")
		require.NotNil(t, a)
		require.NotNil(t, b)
		assert.Equal(t, models.PhaseFetching, a.Phase)
		assert.Equal(t, models.PhaseDownloading, b.Phase)
	})

	t.Run("Nil Frame Is A No-Op", func(t *testing.T) {
		tr := NewTracker()
		assert.Equal(t, Effect{}, tr.Apply(nil))
	})

	t.Run("Reset Clears Display State", func(t *testing.T) {
		tr := NewTracker()
		tr.Apply(manualFrame(models.PhaseFetching, 1, 5))
		tr.Apply(schedulerFrame("sch_1", models.PhaseFetching, 1, 10))

		tr.Reset()
		assert.Equal(t, 0, tr.ActiveCount())
	})
}
