package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"coursecraft/internal/adapters/tui/styles"
	"coursecraft/internal/application"
	"coursecraft/internal/application/commands"
	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

// InputMode selects what the single-field input view does with the text.
type InputMode int

const (
	ModeAddTopic InputMode = iota
	ModeAddSubTopic
	ModeAddLesson
	ModeRename
)

// SwitchToInputMsg opens the input view. Target is the parent for the add
// modes and the node itself for rename.
type SwitchToInputMsg struct {
	Mode   InputMode
	Target *domain.Node
}

// InputKeyMap defines key bindings for the input view
type InputKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var InputKeys = InputKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// InputModel is the single-field view behind add and rename.
type InputModel struct {
	ViewState

	store  ports.CourseStore
	tree   *domain.Tree
	bus    *application.Bus
	widget ports.TreeWidget

	mode   InputMode
	target *domain.Node
	title  textinput.Model
}

// NewInputModel creates a new input view model
func NewInputModel(store ports.CourseStore, tree *domain.Tree, bus *application.Bus, widget ports.TreeWidget) *InputModel {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 120

	return &InputModel{
		store:  store,
		tree:   tree,
		bus:    bus,
		widget: widget,
		title:  title,
	}
}

// Open prepares the view for one add/rename round.
func (m *InputModel) Open(mode InputMode, target *domain.Node) {
	m.mode = mode
	m.target = target
	m.ClearMessage()
	if mode == ModeRename {
		m.title.SetValue(target.Title())
	} else {
		m.title.SetValue("")
	}
	m.title.Focus()
}

// Init initializes the input view
func (m *InputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the input view
func (m *InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, InputKeys.Cancel):
			return m, switchTo(SwitchToBrowserMsg{})
		case key.Matches(msg, InputKeys.Submit):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	return m, cmd
}

func (m *InputModel) submit() tea.Cmd {
	return func() tea.Msg {
		title := strings.TrimSpace(m.title.Value())

		var message string
		var err error
		switch m.mode {
		case ModeAddTopic:
			cmd := commands.NewAddTopicCommand(m.store, m.tree, title)
			cmd.Bus, cmd.Widget = m.bus, m.widget
			var result *commands.AddResult
			if result, err = cmd.Execute(context.Background()); err == nil {
				message = result.Message
			}
		case ModeAddSubTopic:
			cmd := commands.NewAddSubTopicCommand(m.store, m.tree, m.target.Key, title)
			cmd.Bus, cmd.Widget = m.bus, m.widget
			var result *commands.AddResult
			if result, err = cmd.Execute(context.Background()); err == nil {
				message = result.Message
			}
		case ModeAddLesson:
			cmd := commands.NewAddLessonCommand(m.store, m.tree, m.target.Key, title)
			cmd.Bus, cmd.Widget = m.bus, m.widget
			var result *commands.AddResult
			if result, err = cmd.Execute(context.Background()); err == nil {
				message = result.Message
			}
		case ModeRename:
			cmd := commands.NewRenameCommand(m.store, m.tree, m.target.Key, title)
			var result *commands.RenameResult
			if result, err = cmd.Execute(context.Background()); err == nil {
				message = result.Message
			}
		}

		if err != nil {
			return ErrMsg{err}
		}
		return SuccessMsg{message}
	}
}

// View renders the input view
func (m *InputModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(m.heading()))
	b.WriteString("\n\n")

	if m.target != nil && m.mode != ModeRename {
		b.WriteString(styles.InputLabel.Render("Under:"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s %s", m.target.Kind, m.target.Title()))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.InputLabel.Render("Title:"))
	b.WriteString("\n")
	b.WriteString(styles.InputFocused.Render(m.title.View()))
	b.WriteString("\n\n")

	if m.Message != "" {
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("%s %s  %s %s",
		styles.HelpKey.Render("enter"),
		styles.HelpDesc.Render("submit"),
		styles.HelpKey.Render("esc"),
		styles.HelpDesc.Render("cancel"),
	))

	return styles.App.Render(b.String())
}

func (m *InputModel) heading() string {
	switch m.mode {
	case ModeAddTopic:
		return "New Topic"
	case ModeAddSubTopic:
		return "New SubTopic"
	case ModeAddLesson:
		return "New Lesson"
	default:
		return "Rename"
	}
}
