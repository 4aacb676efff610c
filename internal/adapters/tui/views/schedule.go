package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"coursecraft/internal/adapters/tui/styles"
	"coursecraft/internal/application"
	"coursecraft/internal/domain"
)

// ScheduleKeyMap defines key bindings for the schedule view
type ScheduleKeyMap struct {
	Close key.Binding
}

var ScheduleKeys = ScheduleKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "S"),
		key.WithHelp("esc/q/S", "close"),
	),
}

// ScheduleModel lists scheduled lessons in date order. It subscribes to
// tree events so the listing stays current while the user rearranges the
// course in the browser.
type ScheduleModel struct {
	ViewState

	tree  *domain.Tree
	stale bool
	rows  []scheduleRow
}

type scheduleRow struct {
	lesson *domain.Lesson
	topic  string
}

// NewScheduleModel creates a new schedule view model and subscribes it to
// the event bus for the lifetime of the app.
func NewScheduleModel(tree *domain.Tree, bus *application.Bus) *ScheduleModel {
	m := &ScheduleModel{tree: tree, stale: true}
	bus.Subscribe(func(event any) {
		switch event.(type) {
		case application.NodeMoved, application.NodeAdded, application.NodeRemoved:
			m.stale = true
		}
	})
	return m
}

// Init initializes the schedule view
func (m *ScheduleModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the schedule view
func (m *ScheduleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, ScheduleKeys.Close) {
			return m, switchTo(SwitchToBrowserMsg{})
		}
	}

	return m, nil
}

// rebuild collects scheduled lessons and the title of the topic each one
// currently sits under.
func (m *ScheduleModel) rebuild() {
	m.rows = m.rows[:0]
	for _, node := range m.tree.Lessons() {
		if node.Lesson.ScheduledAt.IsZero() {
			continue
		}
		topic := ""
		if t, err := m.tree.FindByEntityID(domain.KindTopic, node.Lesson.TopicID); err == nil {
			topic = t.Title()
		}
		m.rows = append(m.rows, scheduleRow{lesson: node.Lesson, topic: topic})
	}
	sort.SliceStable(m.rows, func(i, j int) bool {
		return m.rows[i].lesson.ScheduledAt.Before(m.rows[j].lesson.ScheduledAt)
	})
	m.stale = false
}

// View renders the schedule
func (m *ScheduleModel) View() string {
	if m.stale {
		m.rebuild()
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("Schedule"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(styles.MutedText.Render("No scheduled lessons."))
		b.WriteString("\n")
	}

	for _, row := range m.rows {
		b.WriteString(styles.ScheduleTime.Render(row.lesson.ScheduledAt.Format("Mon Jan 02 15:04")))
		b.WriteString("  ")
		b.WriteString(row.lesson.Title)
		if row.lesson.DurationMin > 0 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf(" (%d min)", row.lesson.DurationMin)))
		}
		if row.topic != "" {
			b.WriteString(styles.HelpDesc.Render("  in " + row.topic))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}
