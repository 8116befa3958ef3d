package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/services"
	"github.com/blossomlabs/blossom-cli/internal/session"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/blossomlabs/blossom-cli/internal/stream"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MenuView ViewState = iota
	HookListView
	HookDetailView
	TrendListView
	DiscoveryView
	SupportListView
	SupportFormView
)

const pageSize = 20

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	client    *services.Client
	sess      *session.Session
	tracker   *stream.Tracker
	streamURL string

	subscriber *stream.Subscriber
	frames     <-chan *models.DiscoveryProgress

	width  int
	height int

	menuList    list.Model
	hookList    list.Model
	trendList   list.Model
	hashtagList list.Model
	ticketList  list.Model

	ticketForm    *ticketForm
	hookPage      *services.Paginated[models.HookClass]
	trendPage     *services.Paginated[models.TrendingPost]
	selectedClass *models.HookClass
	analyzing     bool

	refreshEvery time.Duration
	err          error
	help         help.Model
	keys         keyMap
}

type hooksFetchedMsg struct {
	page *services.Paginated[models.HookClass]
	err  error
}

type classFetchedMsg struct {
	class *models.HookClass
	err   error
}

type trendsFetchedMsg struct {
	page *services.Paginated[models.TrendingPost]
	err  error
}

type hashtagsFetchedMsg struct {
	hashtags   []models.TrackedHashtag
	generation uint64
	err        error
}

type ticketsFetchedMsg struct {
	tickets []models.Ticket
	err     error
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The session must already have passed the dashboard gate; the TUI assumes an
// authenticated, verified caller.
func NewModel(ctx context.Context, client *services.Client, sess *session.Session, streamURL string, refreshEvery time.Duration) *Model {
	if refreshEvery <= 0 {
		refreshEvery = 30 * time.Second
	}

	items := []list.Item{
		menuItem{title: "Hook Classes", desc: "Viral hook taxonomy with AI analysis", view: HookListView},
		menuItem{title: "Trends", desc: "Trending posts across tracked hashtags", view: TrendListView},
		menuItem{title: "Discovery", desc: "Tracked hashtags and live run progress", view: DiscoveryView},
		menuItem{title: "Support", desc: "Support ticket threads", view: SupportListView},
	}
	menuList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menuList.Title = "Blossom Dashboard"
	menuList.SetShowStatusBar(false)

	return &Model{
		ctx:          ctx,
		view:         MenuView,
		client:       client,
		sess:         sess,
		tracker:      stream.NewTracker(),
		streamURL:    streamURL,
		menuList:     menuList,
		refreshEvery: refreshEvery,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init opens the progress stream and schedules the periodic refresh.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.openStream(), m.scheduleTick())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.menuList, &m.hookList, &m.trendList, &m.hashtagList, &m.ticketList} {
			l.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MenuView:
			return m.handleMenuKeys(msg)
		case HookListView:
			return m.handleHookListKeys(msg)
		case HookDetailView:
			return m.handleHookDetailKeys(msg)
		case TrendListView:
			return m.handleTrendListKeys(msg)
		case DiscoveryView:
			return m.handleDiscoveryKeys(msg)
		case SupportListView:
			return m.handleSupportKeys(msg)
		case SupportFormView:
			return m.handleSupportFormKeys(msg)
		}

	case hooksFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.hookPage = msg.page
		items := make([]list.Item, len(msg.page.Items))
		for i, class := range msg.page.Items {
			items[i] = classItem{class: class}
		}
		m.hookList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.hookList.Title = fmt.Sprintf("Hook Classes — page %d/%d", msg.page.Page, msg.page.PageOf().TotalPages())
		m.hookList.SetShowStatusBar(false)
		return m, nil

	case classFetchedMsg:
		m.analyzing = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		// The response replaces the local copy wholesale
		m.selectedClass = msg.class
		m.view = HookDetailView
		return m, nil

	case trendsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.trendPage = msg.page
		items := make([]list.Item, len(msg.page.Items))
		for i, post := range msg.page.Items {
			items[i] = postItem{post: post}
		}
		m.trendList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.trendList.Title = fmt.Sprintf("Trending Posts — page %d/%d", msg.page.Page, msg.page.PageOf().TotalPages())
		m.trendList.SetShowStatusBar(false)
		return m, nil

	case hashtagsFetchedMsg:
		return m.applyHashtags(msg)

	case ticketsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.tickets))
		for i, ticket := range msg.tickets {
			items[i] = ticketItem{ticket: ticket}
		}
		m.ticketList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.ticketList.Title = "Support Tickets"
		m.ticketList.SetShowStatusBar(false)
		return m, nil

	case ticketCreatedMsg:
		if m.ticketForm != nil {
			m.ticketForm.submitting = false
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.ticketForm = nil
		m.view = SupportListView
		// The new ticket leads the list until the next fetch re-orders it
		return m, m.ticketList.InsertItem(0, ticketItem{ticket: *msg.ticket})

	case streamOpenedMsg:
		m.subscriber = msg.subscriber
		m.frames = msg.frames
		return m, m.waitForFrame()

	case frameMsg:
		return m.applyFrame(msg)

	case streamClosedMsg:
		return m, nil

	case discoveryStartedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refreshCurrent(), m.scheduleTick())
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	header := m.renderHeader()

	var body string
	switch m.view {
	case MenuView:
		body = m.menuList.View()
	case HookListView:
		body = m.renderHookList()
	case HookDetailView:
		body = m.renderHookDetail()
	case TrendListView:
		body = m.renderTrendList()
	case DiscoveryView:
		body = m.renderDiscovery()
	case SupportListView:
		body = m.renderSupport()
	case SupportFormView:
		body = m.renderSupportForm()
	}

	if m.err != nil {
		body = styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + body
	}

	return fmt.Sprintf("%s\n%s", header, body)
}

func (m *Model) renderHeader() string {
	identity := m.sess.Email
	if m.sess.IsAdmin() {
		identity += " (admin)"
	}
	running := m.tracker.ActiveCount()
	status := ""
	if running > 0 {
		status = styles.warn.Render(fmt.Sprintf(" • %d discovery run(s) active", running))
	}
	return styles.help.Render(identity) + status
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.enter):
		selected := m.menuList.SelectedItem()
		if item, ok := selected.(menuItem); ok {
			return m.openView(item.view)
		}
	}

	var cmd tea.Cmd
	m.menuList, cmd = m.menuList.Update(msg)
	return m, cmd
}

func (m *Model) openView(view ViewState) (tea.Model, tea.Cmd) {
	m.view = view
	m.err = nil
	switch view {
	case HookListView:
		return m, m.fetchHooks(1)
	case TrendListView:
		return m, m.fetchTrends(1)
	case DiscoveryView:
		return m, m.fetchHashtags(m.tracker.Generation())
	case SupportListView:
		return m, m.fetchTickets()
	}
	return m, nil
}

func (m *Model) handleHookListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.back):
		m.view = MenuView
		return m, nil
	case key.Matches(msg, m.keys.nextPage):
		if m.hookPage != nil && m.hookPage.PageOf().HasNext() {
			return m, m.fetchHooks(m.hookPage.Page + 1)
		}
		return m, nil
	case key.Matches(msg, m.keys.prevPage):
		if m.hookPage != nil && m.hookPage.PageOf().HasPrev() {
			return m, m.fetchHooks(m.hookPage.Page - 1)
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.hookList.SelectedItem().(classItem); ok {
			return m, m.fetchClass(item.class.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.hookList, cmd = m.hookList.Update(msg)
	return m, cmd
}

func (m *Model) handleHookDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.back):
		m.view = HookListView
		m.selectedClass = nil
		return m, nil
	case key.Matches(msg, m.keys.analyze):
		if m.selectedClass != nil && !m.analyzing {
			m.analyzing = true
			return m, m.analyzeClass(m.selectedClass.ID)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleTrendListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.back):
		m.view = MenuView
		return m, nil
	case key.Matches(msg, m.keys.nextPage):
		if m.trendPage != nil && m.trendPage.PageOf().HasNext() {
			return m, m.fetchTrends(m.trendPage.Page + 1)
		}
		return m, nil
	case key.Matches(msg, m.keys.prevPage):
		if m.trendPage != nil && m.trendPage.PageOf().HasPrev() {
			return m, m.fetchTrends(m.trendPage.Page - 1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.trendList, cmd = m.trendList.Update(msg)
	return m, cmd
}

func (m *Model) handleSupportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.back):
		m.view = MenuView
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchTickets()
	case key.Matches(msg, m.keys.create):
		m.ticketForm = newTicketForm()
		m.view = SupportFormView
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.ticketList, cmd = m.ticketList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case MenuView:
		m.menuList, cmd = m.menuList.Update(msg)
	case HookListView:
		m.hookList, cmd = m.hookList.Update(msg)
	case TrendListView:
		m.trendList, cmd = m.trendList.Update(msg)
	case DiscoveryView:
		m.hashtagList, cmd = m.hashtagList.Update(msg)
	case SupportListView:
		m.ticketList, cmd = m.ticketList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchHooks(page int) tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.HookClasses(m.ctx, services.ClassListOptions{Page: page, PageSize: pageSize})
		return hooksFetchedMsg{page: result, err: err}
	}
}

func (m *Model) fetchClass(id string) tea.Cmd {
	return func() tea.Msg {
		class, err := m.client.HookClass(m.ctx, id)
		return classFetchedMsg{class: class, err: err}
	}
}

func (m *Model) analyzeClass(id string) tea.Cmd {
	return func() tea.Msg {
		class, err := m.client.AnalyzeHookClass(m.ctx, id)
		return classFetchedMsg{class: class, err: err}
	}
}

func (m *Model) fetchTrends(page int) tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.TrendingPosts(m.ctx, services.TrendOptions{Page: page, PageSize: pageSize})
		return trendsFetchedMsg{page: result, err: err}
	}
}

func (m *Model) fetchTickets() tea.Cmd {
	return func() tea.Msg {
		tickets, err := m.client.Tickets(m.ctx)
		return ticketsFetchedMsg{tickets: tickets, err: err}
	}
}

// refreshCurrent re-fetches the data behind the active view.
func (m *Model) refreshCurrent() tea.Cmd {
	switch m.view {
	case HookListView:
		page := 1
		if m.hookPage != nil {
			page = m.hookPage.Page
		}
		return m.fetchHooks(page)
	case TrendListView:
		page := 1
		if m.trendPage != nil {
			page = m.trendPage.Page
		}
		return m.fetchTrends(page)
	case DiscoveryView:
		return m.fetchHashtags(m.tracker.Generation())
	case SupportListView:
		return m.fetchTickets()
	}
	return nil
}

func (m *Model) renderHookList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.nextPage, m.keys.prevPage, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.hookList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderHookDetail() string {
	if m.selectedClass == nil {
		return styles.err.Render("No class selected")
	}
	class := m.selectedClass

	title := styles.title.Render(class.Name)
	info := fmt.Sprintf("Technique: %s\nVideos: %d\nAvg views: %s\nAvg engagement: %.1f%%\n",
		class.Technique,
		class.VideoCount,
		shared.FormatCount(int64(class.AvgViews)),
		class.AvgEngagement,
	)

	var analysis string
	switch {
	case m.analyzing:
		analysis = styles.warn.Render("Analyzing...")
	case class.Analysis != nil:
		analysis = styles.ok.Render("Analysis") + "\n" + class.Analysis.Blueprint
		for _, tactic := range class.Analysis.Tactics {
			analysis += fmt.Sprintf("\n  • %s", tactic)
		}
	default:
		analysis = styles.help.Render("No analysis yet — press a to analyze")
	}

	helpKeys := []key.Binding{m.keys.analyze, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, info, analysis, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderTrendList() string {
	helpKeys := []key.Binding{m.keys.nextPage, m.keys.prevPage, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.trendList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderSupport() string {
	helpKeys := []key.Binding{m.keys.create, m.keys.refresh, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.ticketList.View(), m.help.ShortHelpView(helpKeys))
}
