package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/blossomlabs/blossom-cli/internal/stream"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg struct {
	frame *models.DiscoveryProgress
}

type streamClosedMsg struct{}

type tickMsg time.Time

type discoveryStartedMsg struct {
	err error
}

type streamOpenedMsg struct {
	subscriber *stream.Subscriber
	frames     <-chan *models.DiscoveryProgress
}

// openStream connects the progress stream.
//
// Exactly one stream is opened for the lifetime of the model; if the connection
// drops, live updates stop until the TUI is restarted.
func (m *Model) openStream() tea.Cmd {
	return func() tea.Msg {
		sub := stream.NewSubscriber(m.streamURL, nil, nil)
		frames, err := sub.Open(m.ctx)
		if err != nil {
			return streamClosedMsg{}
		}
		return streamOpenedMsg{subscriber: sub, frames: frames}
	}
}

// closeStream tears down the progress stream. Blocks until the read loop exits,
// so no goroutine outlives the program.
func (m *Model) closeStream() {
	if m.subscriber != nil {
		m.subscriber.Close()
		m.subscriber = nil
	}
	m.frames = nil
}

// quit closes the stream before stopping the program.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.closeStream()
	return m, tea.Quit
}

// waitForFrame blocks on the next stream frame.
func (m *Model) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		return m.pumpFrame()
	}
}

func (m *Model) pumpFrame() tea.Msg {
	if m.frames == nil {
		return streamClosedMsg{}
	}
	frame, ok := <-m.frames
	if !ok {
		return streamClosedMsg{}
	}
	return frameMsg{frame: frame}
}

// applyFrame merges one progress frame and schedules the follow-up work.
//
// A completed run bumps the tracker generation and triggers a reload stamped with
// that generation, so a fetch started before a newer completion cannot clobber
// fresher data when it lands.
func (m *Model) applyFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	effect := m.tracker.Apply(msg.frame)

	cmds := []tea.Cmd{m.waitForFrame()}
	if effect.Reload {
		cmds = append(cmds, m.fetchHashtags(m.tracker.Generation()))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchHashtags reloads the tracked hashtag list, stamped with the tracker
// generation current at dispatch time.
func (m *Model) fetchHashtags(generation uint64) tea.Cmd {
	return func() tea.Msg {
		hashtags, err := m.client.TrackedHashtags(m.ctx)
		return hashtagsFetchedMsg{hashtags: hashtags, generation: generation, err: err}
	}
}

// applyHashtags installs a fetched hashtag list unless it has been superseded.
func (m *Model) applyHashtags(msg hashtagsFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.generation < m.tracker.Generation() {
		// A newer completion already triggered a fresher fetch; drop this one
		return m, nil
	}
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}

	m.err = nil
	items := make([]list.Item, len(msg.hashtags))
	for i, hashtag := range msg.hashtags {
		items[i] = hashtagItem{hashtag: hashtag}
	}
	m.hashtagList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
	m.hashtagList.Title = "Tracked Hashtags"
	m.hashtagList.SetShowStatusBar(false)
	return m, nil
}

func (m *Model) handleDiscoveryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.back):
		m.view = MenuView
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchHashtags(m.tracker.Generation())
	case key.Matches(msg, m.keys.enter):
		return m, m.startDiscovery()
	}

	var cmd tea.Cmd
	m.hashtagList, cmd = m.hashtagList.Update(msg)
	return m, cmd
}

func (m *Model) startDiscovery() tea.Cmd {
	return func() tea.Msg {
		return discoveryStartedMsg{err: m.client.RunDiscovery(m.ctx)}
	}
}

func (m *Model) renderDiscovery() string {
	var b strings.Builder

	b.WriteString(m.hashtagList.View())

	if manual := m.tracker.Manual(); manual != nil {
		b.WriteString("\n\n")
		b.WriteString(styles.title.Render("Manual Discovery"))
		b.WriteString("\n")
		b.WriteString(renderRun(manual))
	}

	for _, id := range m.tracker.SchedulerIDs() {
		run := m.tracker.Scheduler(id)
		if run == nil {
			continue
		}
		b.WriteString("\n\n")
		b.WriteString(styles.title.Render(fmt.Sprintf("Scheduler %s", id)))
		b.WriteString("\n")
		b.WriteString(renderRun(run))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.back, m.keys.quit}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

// renderRun draws one run's current frame: phase, bar, and per-hashtag breakdown.
func renderRun(run *models.DiscoveryProgress) string {
	var b strings.Builder

	pct := shared.Percent(run.Done, run.Total)
	b.WriteString(fmt.Sprintf("%s %s %d%%", run.Phase, progressBar(pct, 30), pct))

	if run.CurrentHashtag != "" {
		b.WriteString(fmt.Sprintf("\n  current: #%s", run.CurrentHashtag))
	}
	for _, h := range run.Hashtags {
		b.WriteString(fmt.Sprintf("\n  #%-20s %d/%d (%d posts)", h.Tag, h.Done, h.Total, h.PostCount))
	}
	if !run.StartedTime().IsZero() {
		b.WriteString(fmt.Sprintf("\n  running for %s", shared.Elapsed(run.StartedTime(), time.Now())))
	}

	return b.String()
}

// progressBar renders a fixed-width unicode bar for the given percentage.
func progressBar(pct, width int) string {
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
