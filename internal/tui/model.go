package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"foodrec/internal/domain"
	"foodrec/internal/service"
)

// SessionPort is the TUI-facing subset of a recommendation session.
type SessionPort interface {
	Query(req domain.Request) (service.QueryResult, error)
	Reset()
}

type field int

const (
	fieldGoal field = iota
	fieldDiet
	fieldCategory
	fieldDescription
	fieldCount
)

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	session     SessionPort
	categories  []string
	catCursor   int
	category    textinput.Model
	description textinput.Model
	viewport    viewport.Model
	goal        int
	diet        int
	focus       field
	cards       []domain.Recommendation
	summary     string
	status      string
	width       int
	ready       bool
}

// New creates a new TUI model instance. categories feeds the category picker.
func New(session SessionPort, categories []string, summary string) Model {
	cat := textinput.New()
	cat.Prompt = "Category: "
	cat.Placeholder = "any (ctrl+n / ctrl+p to browse)"
	cat.CharLimit = 0

	desc := textinput.New()
	desc.Prompt = "Describe: "
	desc.Placeholder = "light, healthy, high protein, easy to digest"
	desc.CharLimit = 0

	vp := viewport.New(0, 0)
	return Model{
		session:     session,
		categories:  categories,
		catCursor:   -1,
		category:    cat,
		description: desc,
		viewport:    vp,
		diet:        len(domain.Diets) - 1,
		summary:     summary,
		status:      "Pick a goal and press Enter to find food.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		// account for frames around the form and result boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, fh := formBoxStyle.GetFrameSize()
		// header + summary, status line, one form line per field, 1 spacer
		reserved := 2 + 1 + int(fieldCount) + fh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCards())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			m.runQuery()
			return m, nil
		case "tab":
			return m.setFocus((m.focus + 1) % fieldCount), nil
		case "shift+tab":
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil
		case "ctrl+r":
			m.session.Reset()
			m.cards = nil
			m.status = "Session cleared."
			m.viewport.SetContent(m.renderCards())
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		case "pgup":
			m.viewport.ViewUp()
			return m, nil
		case "pgdown":
			m.viewport.ViewDown()
			return m, nil
		case "left", "right":
			step := 1
			if msg.String() == "left" {
				step = -1
			}
			switch m.focus {
			case fieldGoal:
				m.goal = (m.goal + step + len(domain.Goals)) % len(domain.Goals)
				return m, nil
			case fieldDiet:
				m.diet = (m.diet + step + len(domain.Diets)) % len(domain.Diets)
				return m, nil
			}
		case "ctrl+n", "ctrl+p":
			if m.focus == fieldCategory && len(m.categories) > 0 {
				step := 1
				if msg.String() == "ctrl+p" {
					step = -1
				}
				m.catCursor = (m.catCursor + step + len(m.categories)) % len(m.categories)
				m.category.SetValue(m.categories[m.catCursor])
				m.category.CursorEnd()
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	switch m.focus {
	case fieldCategory:
		m.category, cmd = m.category.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

func (m Model) setFocus(f field) Model {
	m.focus = f
	m.category.Blur()
	m.description.Blur()
	switch f {
	case fieldCategory:
		m.category.Focus()
	case fieldDescription:
		m.description.Focus()
	}
	return m
}

func (m *Model) runQuery() {
	req := domain.Request{
		Goal:        domain.Goals[m.goal],
		Diet:        domain.Diets[m.diet],
		Category:    strings.TrimSpace(m.category.Value()),
		Description: strings.TrimSpace(m.description.Value()),
	}
	res, err := m.session.Query(req)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.cards = res.Cards
	m.status = fmt.Sprintf("%d new, %d total matches for %s.", res.Added, len(res.Cards), req.Goal.Label())
	m.viewport.SetContent(m.renderCards())
	m.viewport.GotoTop()
}

// View renders the TUI layout and current results.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Smart Food Recommender")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	form := formBoxStyle.Render(strings.Join([]string{
		m.renderChoice(fieldGoal, "Goal", goalLabels(), m.goal),
		m.renderChoice(fieldDiet, "Diet", dietLabels(), m.diet),
		m.category.View(),
		m.description.View(),
	}, "\n"))
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + form + "\n" + results + "\n" + status
}

func (m Model) renderChoice(f field, title string, labels []string, selected int) string {
	prefix := "  "
	if m.focus == f {
		prefix = focusStyle.Render("> ")
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == selected {
			parts[i] = selectedStyle.Render("(•) " + l)
		} else {
			parts[i] = "( ) " + l
		}
	}
	return prefix + title + ": " + strings.Join(parts, "  ")
}

// renderCards lays the session cards out in two columns.
func (m Model) renderCards() string {
	if len(m.cards) == 0 {
		return "No results yet."
	}
	colWidth := max(16, (m.viewport.Width-4)/2)
	var left, right []string
	for i, c := range m.cards {
		card := cardStyle.Width(colWidth).Render(
			cardTitleStyle.Render(c.Record.Description) + "\n" +
				fmt.Sprintf("Category: %s\n", c.Record.Category) +
				distanceStyle.Render(fmt.Sprintf("#%d  distance=%.3f", i+1, c.Distance)),
		)
		if i%2 == 0 {
			left = append(left, card)
		} else {
			right = append(right, card)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		lipgloss.JoinVertical(lipgloss.Left, right...),
	)
}

func goalLabels() []string {
	out := make([]string, len(domain.Goals))
	for i, g := range domain.Goals {
		out[i] = g.Label()
	}
	return out
}

func dietLabels() []string {
	out := make([]string, len(domain.Diets))
	for i, d := range domain.Diets {
		out[i] = d.Label()
	}
	return out
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	formBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("7")).Padding(0, 1).MarginRight(1)
	cardTitleStyle = lipgloss.NewStyle().Bold(true)
	distanceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	focusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)
