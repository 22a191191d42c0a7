package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sadopc/komisi/internal/export"
	"github.com/sadopc/komisi/internal/ledger"
	"github.com/sadopc/komisi/internal/report"
	"github.com/sadopc/komisi/internal/share"
)

type shareAction int

const (
	shareWhatsApp shareAction = iota
	shareTelegram
	shareCopy
	shareCSV
	shareJSON
)

var shareActionNames = []string{"WhatsApp", "Telegram", "Copy to clipboard", "Export CSV", "Export JSON"}

// shareScope is the set of entries the picker acts on: the visible week on
// the weekly view, the active range on the filter view, everything otherwise.
func (a App) shareScope() (string, []ledger.LogEntry) {
	switch {
	case a.activeView == viewWeekly:
		return report.WeekLabel(a.weekly.start, a.weekly.end, a.weekly.offset), a.weekly.entries
	case a.activeView == viewFilter && a.filter.active():
		return "Filter " + a.filter.rangeLabel(), a.filter.entries
	default:
		return "All entries", a.ledger.Entries()
	}
}

func (a App) renderSharePicker(height int) string {
	scope, entries := a.shareScope()

	var rows []string
	rows = append(rows, titleStyle.Render("Share / Export"))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%s · %d treatment · %s",
		scope, len(entries), rupiah(ledger.TotalCommission(entries)))))
	rows = append(rows, "")
	for i, name := range shareActionNames {
		cursor := "  "
		style := normalItemStyle
		if i == a.shareCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+name))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: run  esc: cancel"))

	preview := strings.Split(report.Format(entries, a.clock.now, a.opts.Report), "\n")
	if room := height - len(rows) - 6; room > 0 && len(preview) > room {
		preview = append(preview[:room], "…")
	}
	rows = append(rows, "", subtitleStyle.Render(strings.Join(preview, "\n")))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateSharePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.shareCursor > 0 {
			a.shareCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.shareCursor < len(shareActionNames)-1 {
			a.shareCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.sharePicking = false
		return a, a.doShare(shareAction(a.shareCursor))
	case key.Matches(msg, keys.Back):
		a.sharePicking = false
	}
	return a, nil
}

// doShare snapshots the scope on the UI goroutine and runs the slow part
// (browser, clipboard, disk) as a command.
func (a App) doShare(action shareAction) tea.Cmd {
	_, entries := a.shareScope()
	text := report.Format(entries, a.clock.now, a.opts.Report)
	mode := a.ledger.Mode()
	today := a.clock.today
	opts := a.opts

	return func() tea.Msg {
		switch action {
		case shareWhatsApp, shareTelegram:
			ch := share.WhatsApp
			if action == shareTelegram {
				ch = share.Telegram
			}
			u, err := share.URL(ch, text)
			if err == nil {
				err = opts.Opener.Open(u)
			}
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Share error: %v", err), isError: true}
			}
			opts.Log.Info("report shared", "channel", string(ch), "entries", len(entries))
			return statusMsg{text: "Opened " + shareActionNames[action]}

		case shareCopy:
			if err := opts.Clipboard.Copy(text); err != nil {
				if errors.Is(err, share.ErrClipboardDenied) {
					return statusMsg{text: "Clipboard unavailable", isError: true}
				}
				return statusMsg{text: fmt.Sprintf("Copy error: %v", err), isError: true}
			}
			return statusMsg{text: "Report copied to clipboard"}

		case shareCSV, shareJSON:
			if len(entries) == 0 {
				return statusMsg{text: "No entries to export", isError: true}
			}
			ext, write := "csv", export.ToCSV
			if action == shareJSON {
				ext, write = "json", export.ToJSON
			}
			path := export.PathIn(opts.ExportDir, today, ext)
			if err := write(entries, mode, path); err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			var size int64
			if fi, err := os.Stat(path); err == nil {
				size = fi.Size()
			}
			opts.Log.Info("export written", "path", path, "bytes", size)
			return exportDoneMsg{path: path, size: size}
		}
		return nil
	}
}

func exportStatus(msg exportDoneMsg) string {
	return fmt.Sprintf("Exported to %s (%s)", msg.path, humanize.Bytes(uint64(msg.size)))
}
