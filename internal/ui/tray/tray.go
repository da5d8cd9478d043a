package tray

import (
	"fyne.io/fyne/v2"

	"focustimer/internal/core/timekeeper"
	"focustimer/internal/ui/status"
)

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle      func()
	OnSkip        func()
	OnReset       func()
	OnShow        func()
	OnPreferences func()
	OnQuit        func()
}

// Icons are the tray icons for the running and stopped states.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        App
	callbacks  Callbacks
	icons      Icons
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	menu       *fyne.Menu
	running    *bool
}

// New creates a tray manager with the provided callbacks.
func New(app App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		icons:     icons,
	}

	manager.statusItem = fyne.NewMenuItem("Starting...", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnToggle))

	manager.menu = fyne.NewMenu("FocusTimer",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		fyne.NewMenuItem("Skip", invoke(&manager.callbacks.OnSkip)),
		fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
	app.SetSystemTrayMenu(manager.menu)
	return manager
}

// Update refreshes the status line, toggle label and icon. It must run on
// the fyne UI goroutine.
func (manager *Manager) Update(snapshot timekeeper.Snapshot) {
	manager.statusItem.Label = status.Line(snapshot)
	manager.toggleItem.Label = status.ToggleLabel(snapshot)
	manager.app.SetSystemTrayMenu(manager.menu)

	running := snapshot.Status == timekeeper.StatusRunning
	if manager.running != nil && *manager.running == running {
		return
	}
	manager.running = &running
	icon := manager.icons.Paused
	if running {
		icon = manager.icons.Active
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

// StatusLabel returns the current status line.
func (manager *Manager) StatusLabel() string {
	return manager.statusItem.Label
}

// ToggleLabel returns the current label of the start/pause item.
func (manager *Manager) ToggleLabel() string {
	return manager.toggleItem.Label
}

func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}
