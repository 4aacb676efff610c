package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"coursecraft/internal/adapters/tui/styles"
	"coursecraft/internal/application"
	"coursecraft/internal/application/commands"
	"coursecraft/internal/domain"
	"coursecraft/internal/gesture"
	"coursecraft/internal/ports"
)

// treeOriginY is the terminal row of the first tree line: the app padding
// plus the title and its bottom margin. Mouse coordinates are mapped
// through it.
const treeOriginY = 3

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Mark     key.Binding
	NewTopic key.Binding
	NewSub   key.Binding
	NewLess  key.Binding
	Rename   key.Binding
	Delete   key.Binding
	Yank     key.Binding
	Schedule key.Binding
	Cancel   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle/drop"),
	),
	Mark: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mark for move"),
	),
	NewTopic: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new topic"),
	),
	NewSub: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "new subtopic"),
	),
	NewLess: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "new lesson"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yank title"),
	),
	Schedule: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "schedule"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the tree browser: keyboard navigation plus mouse
// drag-and-drop through the gesture recognizer.
type BrowserModel struct {
	ViewState

	store ports.CourseStore
	tree  *domain.Tree
	bus   *application.Bus

	flat   []*domain.Node
	cursor int

	recognizer *gesture.Recognizer
	pressed    *domain.Node // node under the pointer when it went down
	dropRow    int          // row currently hovered while dragging, -1 = none

	marked *domain.Node // keyboard move source
}

// Ensure the browser can stand in as the tree widget for commands.
var _ ports.TreeWidget = (*BrowserModel)(nil)

// NewBrowserModel creates a new browser model
func NewBrowserModel(store ports.CourseStore, tree *domain.Tree, bus *application.Bus, dragThreshold float64) *BrowserModel {
	m := &BrowserModel{
		store:      store,
		tree:       tree,
		bus:        bus,
		recognizer: gesture.New(dragThreshold),
		dropRow:    -1,
	}
	m.refreshFlat()
	return m
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// AddNodes implements ports.TreeWidget
func (m *BrowserModel) AddNodes(nodes []*domain.Node, parentKey string) {
	m.refreshFlat()
}

// RemoveNodes implements ports.TreeWidget
func (m *BrowserModel) RemoveNodes(keys []string) {
	m.refreshFlat()
}

// Refresh implements ports.TreeWidget
func (m *BrowserModel) Refresh() {
	m.refreshFlat()
}

type expandedMsg struct {
	node *domain.Node
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		m.refreshFlat()
		return m, nil

	case SuccessMsg:
		m.SetMessage(msg.Message, false)
		m.refreshFlat()
		return m, nil

	case expandedMsg:
		m.refreshFlat()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *BrowserModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ClearMessage()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.Down):
		if m.cursor < len(m.flat)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.Left):
		if node := m.selectedNode(); node != nil && node.Expanded && node.Kind != domain.KindCourse {
			node.Expanded = false
			m.refreshFlat()
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.Right):
		return m, m.expand(m.selectedNode())

	case key.Matches(msg, BrowserKeys.Enter):
		node := m.selectedNode()
		if node == nil {
			return m, nil
		}
		// With a marked source, enter on a target performs the move.
		if m.marked != nil && m.marked != node {
			source := m.marked
			m.marked = nil
			return m, m.moveNode(source, node)
		}
		return m, m.toggle(node)

	case key.Matches(msg, BrowserKeys.Mark):
		if node := m.selectedNode(); node != nil && node.Kind != domain.KindCourse {
			m.marked = node
			m.SetMessage(fmt.Sprintf("Moving %s %q: select a target and press enter", node.Kind, node.Title()), false)
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.Cancel):
		m.marked = nil
		m.recognizer.Reset()
		m.pressed = nil
		m.dropRow = -1
		return m, nil

	case key.Matches(msg, BrowserKeys.NewTopic):
		return m, switchTo(SwitchToInputMsg{Mode: ModeAddTopic, Target: m.tree.Root()})

	case key.Matches(msg, BrowserKeys.NewSub):
		if node := m.selectedNode(); node != nil && node.Kind == domain.KindTopic {
			return m, switchTo(SwitchToInputMsg{Mode: ModeAddSubTopic, Target: node})
		}
		m.SetMessage("subtopics go under a topic", true)
		return m, nil

	case key.Matches(msg, BrowserKeys.NewLess):
		if node := m.selectedNode(); node != nil && (node.Kind == domain.KindTopic || node.Kind == domain.KindSubTopic) {
			return m, switchTo(SwitchToInputMsg{Mode: ModeAddLesson, Target: node})
		}
		m.SetMessage("lessons go under a topic or subtopic", true)
		return m, nil

	case key.Matches(msg, BrowserKeys.Rename):
		if node := m.selectedNode(); node != nil {
			return m, switchTo(SwitchToInputMsg{Mode: ModeRename, Target: node})
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.Delete):
		if node := m.selectedNode(); node != nil && node.Kind != domain.KindCourse {
			return m, switchTo(SwitchToDeleteMsg{Target: node})
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.Yank):
		if node := m.selectedNode(); node != nil {
			if err := clipboard.WriteAll(node.Title()); err != nil {
				m.SetMessage(err.Error(), true)
			} else {
				m.SetMessage(fmt.Sprintf("Yanked %q", node.Title()), false)
			}
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.Schedule):
		return m, switchTo(SwitchToScheduleMsg{})

	case key.Matches(msg, BrowserKeys.Help):
		return m, switchTo(SwitchToHelpMsg{})
	}

	return m, nil
}

// updateMouse routes pointer events through the gesture recognizer: a
// press that never travels far is a click (select/toggle), one that does
// is a drag, and its release drops the pressed node on the hovered row.
func (m *BrowserModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.recognizer.Down(float64(msg.X), float64(msg.Y))
		if row := m.rowAt(msg.Y); row >= 0 {
			m.cursor = row
			m.pressed = m.flat[row]
		} else {
			m.pressed = nil
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.recognizer.Move(float64(msg.X), float64(msg.Y)) == gesture.Dragging {
			m.dropRow = m.rowAt(msg.Y)
		}
		return m, nil

	case tea.MouseActionRelease:
		outcome := m.recognizer.Up()
		pressed := m.pressed
		m.pressed = nil
		m.dropRow = -1

		switch outcome {
		case gesture.Clicked:
			if pressed != nil {
				return m, m.toggle(pressed)
			}
		case gesture.Dropped:
			target := m.nodeAt(msg.Y)
			if pressed != nil && target != nil {
				return m, m.moveNode(pressed, target)
			}
		}
		return m, nil
	}

	return m, nil
}

// toggle collapses an expanded node or expands a collapsed one.
func (m *BrowserModel) toggle(node *domain.Node) tea.Cmd {
	if node.Expanded && node.Kind != domain.KindCourse {
		node.Expanded = false
		m.refreshFlat()
		return nil
	}
	return m.expand(node)
}

// expand opens a node. Topics refetch their subtree from the store so the
// view picks up server-side changes; other kinds just unfold what is
// already loaded.
func (m *BrowserModel) expand(node *domain.Node) tea.Cmd {
	if node == nil || node.Expanded {
		return nil
	}
	if node.Kind == domain.KindTopic {
		return func() tea.Msg {
			cmd := commands.NewExpandNodeCommand(m.store, m.tree, node.Key)
			cmd.Widget = m
			if _, err := cmd.Execute(context.Background()); err != nil {
				return ErrMsg{err}
			}
			return expandedMsg{node}
		}
	}
	if node.HasChildren {
		node.Expanded = true
		m.refreshFlat()
	}
	return nil
}

func (m *BrowserModel) moveNode(source, target *domain.Node) tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewMoveNodeCommand(m.store, m.tree, source.Key, target.Key)
		cmd.Bus = m.bus
		cmd.Widget = m
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return ErrMsg{err}
		}
		return SuccessMsg{result.Message}
	}
}

func (m *BrowserModel) selectedNode() *domain.Node {
	if m.cursor >= 0 && m.cursor < len(m.flat) {
		return m.flat[m.cursor]
	}
	return nil
}

// rowAt maps a terminal y coordinate to a flat row index, -1 if outside
// the tree.
func (m *BrowserModel) rowAt(y int) int {
	row := y - treeOriginY
	if row < 0 || row >= len(m.flat) {
		return -1
	}
	return row
}

func (m *BrowserModel) nodeAt(y int) *domain.Node {
	if row := m.rowAt(y); row >= 0 {
		return m.flat[row]
	}
	return nil
}

func (m *BrowserModel) refreshFlat() {
	m.flat = m.tree.Root().Flatten()
	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BrowserModel) depth(node *domain.Node) int {
	depth := 0
	for {
		parent, ok := m.tree.ParentOf(node)
		if !ok {
			return depth
		}
		node = parent
		depth++
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(m.tree.Root().Title()))
	b.WriteString("\n")

	for i, node := range m.flat {
		b.WriteString(m.renderNode(node, i))
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderNode(node *domain.Node, row int) string {
	indent := strings.Repeat("  ", m.depth(node))

	var prefix string
	switch {
	case node.Kind == domain.KindLesson:
		prefix = styles.TreeLeaf
	case node.Expanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	text := node.Title()
	if node.Kind == domain.KindLesson && !node.Lesson.ScheduledAt.IsZero() {
		text = fmt.Sprintf("%s  %s", text,
			styles.ScheduleTime.Render(node.Lesson.ScheduledAt.Format("Jan 02 15:04")))
	}

	var style lipgloss.Style
	switch {
	case row == m.cursor:
		style = styles.NodeSelected
	case node == m.marked || node == m.pressed && m.recognizer.State() == gesture.Dragging:
		style = styles.DragSource
	case row == m.dropRow:
		style = styles.DropTarget
	default:
		style = styles.KindStyle(node.Kind.String())
	}

	return indent + styles.TreeBranch.Render(prefix) + style.Render(text)
}

func (m *BrowserModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"h/l", "collapse/expand"},
		{"m", "move"},
		{"n/s/a", "new"},
		{"d", "delete"},
		{"S", "schedule"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}

func switchTo(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
