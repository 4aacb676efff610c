package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"coursecraft/internal/adapters/tui/styles"
	"coursecraft/internal/application"
	"coursecraft/internal/application/commands"
	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

// SwitchToDeleteMsg opens the delete confirmation for a node.
type SwitchToDeleteMsg struct {
	Target *domain.Node
}

// DeleteKeyMap defines key bindings for the delete confirmation
type DeleteKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var DeleteKeys = DeleteKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// DeleteModel asks for confirmation before a subtree is deleted.
type DeleteModel struct {
	ViewState

	store  ports.CourseStore
	tree   *domain.Tree
	bus    *application.Bus
	widget ports.TreeWidget

	target *domain.Node
}

// NewDeleteModel creates a new delete confirmation model
func NewDeleteModel(store ports.CourseStore, tree *domain.Tree, bus *application.Bus, widget ports.TreeWidget) *DeleteModel {
	return &DeleteModel{store: store, tree: tree, bus: bus, widget: widget}
}

// SetTarget sets the node to be deleted
func (m *DeleteModel) SetTarget(node *domain.Node) {
	m.target = node
	m.ClearMessage()
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DeleteKeys.Cancel):
			return m, switchTo(SwitchToBrowserMsg{})
		case key.Matches(msg, DeleteKeys.Confirm):
			return m, m.confirm()
		}
	}

	return m, nil
}

func (m *DeleteModel) confirm() tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewDeleteNodeCommand(m.store, m.tree, m.target.Key)
		cmd.Bus, cmd.Widget = m.bus, m.widget
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return ErrMsg{err}
		}
		return SuccessMsg{result.Message}
	}
}

// View renders the delete confirmation
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete"))
	b.WriteString("\n\n")

	if m.target != nil {
		b.WriteString(styles.InputLabel.Render(fmt.Sprintf("Delete %s:", m.target.Kind)))
		b.WriteString("\n")
		b.WriteString("  " + m.target.Title())
		b.WriteString("\n\n")
		if m.target.HasChildren {
			b.WriteString(styles.ErrorMsg.Render("Everything beneath it is deleted too."))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))

	return styles.App.Render(b.String())
}
