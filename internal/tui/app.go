package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/komisi/internal/ledger"
	"github.com/sadopc/komisi/internal/log"
	"github.com/sadopc/komisi/internal/report"
	"github.com/sadopc/komisi/internal/share"
	"github.com/sadopc/komisi/internal/store"
)

// Copier puts report text on the system clipboard.
type Copier interface {
	Copy(text string) error
}

// URLOpener opens share links in the browser.
type URLOpener interface {
	Open(url string) error
}

// Options configures the app's outputs. Zero fields get defaults.
type Options struct {
	Report    report.Options
	ExportDir string
	Clipboard Copier
	Opener    URLOpener
	Log       *log.Logger

	// Notice is shown in the status bar at startup.
	Notice string
}

func (o Options) withDefaults() Options {
	if o.Report.BusinessName == "" {
		o.Report = report.DefaultOptions()
	}
	if o.ExportDir == "" {
		o.ExportDir, _ = os.UserHomeDir()
	}
	if o.Clipboard == nil {
		o.Clipboard = share.NewClipboard()
	}
	if o.Opener == nil {
		o.Opener = share.NewOpener()
	}
	if o.Log == nil {
		o.Log = log.Discard()
	}
	return o
}

// App is the root Bubble Tea model.
type App struct {
	ledger *ledger.Ledger
	store  *store.Store
	opts   Options
	width  int
	height int

	activeView   viewState
	showHelp     bool
	sharePicking bool
	shareCursor  int

	clock     clockModel
	dashboard dashboardModel
	entries   entriesModel
	weekly    weeklyModel
	filter    filterModel
	settings  settingsModel

	help        help.Model
	status      string
	statusStyle lipgloss.Style
}

func NewApp(l *ledger.Ledger, s *store.Store, opts Options) App {
	opts = opts.withDefaults()
	h := help.New()
	h.ShowAll = false

	a := App{
		ledger:      l,
		store:       s,
		opts:        opts,
		activeView:  viewDashboard,
		clock:       newClockModel(l.Clock()),
		dashboard:   newDashboardModel(l),
		entries:     newEntriesModel(l),
		weekly:      newWeeklyModel(l),
		filter:      newFilterModel(l),
		settings:    newSettingsModel(s, l, opts),
		help:        h,
		status:      opts.Notice,
		statusStyle: warningStyle,
	}
	a.refreshAll()
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("komisi"),
		tickCmd(),
	)
}

// refreshAll recomputes every view's derived data from the ledger.
func (a *App) refreshAll() {
	a.dashboard.refresh(a.clock.today)
	a.entries.refresh()
	a.entries.defaultTherapist = a.settings.defaultTherapist()
	a.weekly.refresh()
	a.filter.refresh()
	a.settings.refresh()
}

// dayChanged handles a business date rollover reported by the midnight
// watcher, the tick or a focus event.
func (a App) dayChanged(today string) (App, bool) {
	today, changed := a.clock.observe(today)
	if !changed {
		return a, false
	}
	a.opts.Log.Info("business day changed", "today", today)
	a.status = "New day: " + longDate(today)
	a.statusStyle = accentStyle
	a.refreshAll()
	return a, true
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.entries.setSize(a.width, contentHeight)
		a.weekly.setSize(a.width, contentHeight)
		a.filter.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.weekly.buildChart()
		return a, nil

	case tea.KeyMsg:
		if a.sharePicking {
			return a.updateSharePicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Share):
			a.sharePicking = true
			a.shareCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewEntries
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewWeekly
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewFilter
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, nil
		case key.Matches(msg, keys.New) && a.activeView != viewFilter && a.activeView != viewSettings:
			a.activeView = viewEntries
		}

	case tickMsg:
		a, _ = a.dayChanged(a.clock.tick())
		return a, tickCmd()

	case tea.FocusMsg:
		a.clock.now = a.ledger.Clock().Now()
		a, _ = a.dayChanged(a.ledger.Clock().Today())
		return a, nil

	case DayChanged:
		a, _ = a.dayChanged(msg.Today)
		return a, nil

	case ledgerChangedMsg:
		a.refreshAll()
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusStyle = mutedStyle
		if msg.isError {
			a.statusStyle = errorStyle
			a.opts.Log.Warn("action failed", "detail", msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.status = exportStatus(msg)
		a.statusStyle = successStyle
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewEntries:
		a.entries, cmd = a.entries.update(msg, a.clock.today)
	case viewWeekly:
		a.weekly, cmd = a.weekly.update(msg)
	case viewFilter:
		a.filter, cmd = a.filter.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewEntries:
		return a.entries.formActive
	case viewFilter:
		return a.filter.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view(a.clock)
	case viewEntries:
		content = a.entries.view()
	case viewWeekly:
		content = a.weekly.view()
	case viewFilter:
		content = a.filter.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.sharePicking {
		content = a.renderSharePicker(contentHeight)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("komisi")
	mode := mutedStyle.Render(" " + string(a.ledger.Mode()))
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(mode) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, mode, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = a.statusStyle.Render(" " + a.status)
	}

	clockInfo := highlightStyle.Render(" " + a.clock.timeString())

	left := footerStyle.Render(helpView)
	right := status + clockInfo

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
