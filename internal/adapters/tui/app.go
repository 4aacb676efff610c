// Package tui is the interactive course editor: a bubbletea app with a
// tree browser (keyboard and mouse drag-and-drop), single-field input
// views for add/rename, a delete confirmation, and a schedule listing.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"coursecraft/internal/adapters/tui/views"
	"coursecraft/internal/application"
	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewInput
	ViewDelete
	ViewSchedule
	ViewHelp
)

// App is the main TUI application model
type App struct {
	state    ViewState
	browser  *views.BrowserModel
	input    *views.InputModel
	delete   *views.DeleteModel
	schedule *views.ScheduleModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp wires the views around one shared tree, store and event bus.
// dragThreshold is the pointer travel (in cells) that turns a press into
// a drag; 0 selects the default.
func NewApp(store ports.CourseStore, tree *domain.Tree, dragThreshold float64) *App {
	bus := application.NewBus()
	browser := views.NewBrowserModel(store, tree, bus, dragThreshold)

	return &App{
		state:    ViewBrowser,
		browser:  browser,
		input:    views.NewInputModel(store, tree, bus, browser),
		delete:   views.NewDeleteModel(store, tree, bus, browser),
		schedule: views.NewScheduleModel(tree, bus),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.input.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.schedule.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToInputMsg:
		a.state = ViewInput
		a.input.Open(msg.Mode, msg.Target)
		return a, a.input.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Target)
		return a, nil

	case views.SwitchToScheduleMsg:
		a.state = ViewSchedule
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	// Command outcomes land in the browser's status line.
	case views.SuccessMsg, views.ErrMsg:
		a.state = ViewBrowser
		_, cmd := a.browser.Update(msg)
		return a, cmd
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewInput:
		_, cmd = a.input.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewSchedule:
		_, cmd = a.schedule.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewInput:
		return a.input.View()
	case ViewDelete:
		return a.delete.View()
	case ViewSchedule:
		return a.schedule.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
