package ui

import (
	"fmt"
	"strings"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type ticketCreatedMsg struct {
	ticket *models.Ticket
	err    error
}

const (
	formSubject = iota
	formCategory
	formPriority
	formMessage
	formFieldCount
)

var formLabels = [formFieldCount]string{"Subject", "Category", "Priority", "Message"}

// ticketForm holds the new-ticket entry fields on the support view.
//
// Input is validated locally with [models.NewTicketInput.Validate] before the
// POST, the same rules the web dashboard's form applies.
type ticketForm struct {
	inputs     [formFieldCount]textinput.Model
	focus      int
	submitting bool
}

func newTicketForm() *ticketForm {
	f := &ticketForm{}
	placeholders := [formFieldCount]string{
		"What's going wrong?",
		"bug_report, billing, feature_request, account, other",
		"low, medium, high, urgent",
		"Describe the problem",
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 2000
		in.Width = 64
		f.inputs[i] = in
	}
	f.inputs[formCategory].SetValue("other")
	f.inputs[formPriority].SetValue("medium")
	f.inputs[formSubject].Focus()
	return f
}

func (f *ticketForm) setFocus(i int) tea.Cmd {
	if i < 0 {
		i = formFieldCount - 1
	}
	if i >= formFieldCount {
		i = 0
	}
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *ticketForm) ticketInput() models.NewTicketInput {
	return models.NewTicketInput{
		Subject:  strings.TrimSpace(f.inputs[formSubject].Value()),
		Category: strings.TrimSpace(f.inputs[formCategory].Value()),
		Priority: strings.TrimSpace(f.inputs[formPriority].Value()),
		Message:  strings.TrimSpace(f.inputs[formMessage].Value()),
	}
}

func (m *Model) handleSupportFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.ticketForm
	if f == nil {
		m.view = SupportListView
		return m, nil
	}

	// Printable keys belong to the focused field, so only control chords
	// navigate here; plain q stays typable.
	switch {
	case msg.String() == "ctrl+c":
		return m.quit()
	case key.Matches(msg, m.keys.back):
		m.ticketForm = nil
		m.err = nil
		m.view = SupportListView
		return m, nil
	case key.Matches(msg, m.keys.submit):
		return m.submitTicket()
	case msg.String() == "tab", msg.String() == "down":
		return m, f.setFocus(f.focus + 1)
	case msg.String() == "shift+tab", msg.String() == "up":
		return m, f.setFocus(f.focus - 1)
	case msg.String() == "enter":
		if f.focus == formMessage {
			return m.submitTicket()
		}
		return m, f.setFocus(f.focus + 1)
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

func (m *Model) submitTicket() (tea.Model, tea.Cmd) {
	f := m.ticketForm
	if f == nil || f.submitting {
		return m, nil
	}

	in := f.ticketInput()
	if err := in.Validate(); err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil
	f.submitting = true
	return m, func() tea.Msg {
		ticket, err := m.client.CreateTicket(m.ctx, in)
		return ticketCreatedMsg{ticket: ticket, err: err}
	}
}

func (m *Model) renderSupportForm() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("New Support Ticket"))
	b.WriteString("\n\n")
	for i, in := range m.ticketForm.inputs {
		label := formLabels[i]
		if i == m.ticketForm.focus {
			label = styles.ok.Render(label)
		}
		fmt.Fprintf(&b, "%s\n%s\n\n", label, in.View())
	}
	if m.ticketForm.submitting {
		b.WriteString(styles.warn.Render("Submitting..."))
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.submit, m.keys.back}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}
