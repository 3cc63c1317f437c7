package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ashmarty/hexview/internal/hexlog"
)

// pickerEntriesMsg carries the result of scanning a replay directory.
type pickerEntriesMsg struct {
	files []string
	err   error
}

// scanReplaysCmd lists the replay files in dir, newest-modified first.
func scanReplaysCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return pickerEntriesMsg{err: fmt.Errorf("cannot read %s: %w", dir, err)}
		}

		type candidate struct {
			path    string
			modTime int64
		}
		var found []candidate
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), hexlog.Extension) {
				continue
			}
			c := candidate{path: filepath.Join(dir, entry.Name())}
			if info, infoErr := entry.Info(); infoErr == nil {
				c.modTime = info.ModTime().UnixNano()
			}
			found = append(found, c)
		}
		sort.Slice(found, func(i, j int) bool { return found[i].modTime > found[j].modTime })

		files := make([]string, len(found))
		for i, c := range found {
			files[i] = c.path
		}
		return pickerEntriesMsg{files: files}
	}
}

// pickerModel is the in-viewer file picker overlay.
type pickerModel struct {
	dir    string
	files  []string
	cursor int
	keys   PickerKeyMap
	errMsg string
}

func newPickerModel(dir string, files []string, err error) pickerModel {
	p := pickerModel{
		dir:   dir,
		files: files,
		keys:  DefaultPickerKeyMap(),
	}
	if err != nil {
		p.errMsg = err.Error()
	}
	return p
}

// handleKey processes one key press. It reports whether the picker is
// finished and, if a file was chosen, which one.
func (p *pickerModel) handleKey(msg tea.KeyMsg) (done bool, selected string) {
	switch {
	case key.Matches(msg, p.keys.Back):
		return true, ""
	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, p.keys.Down):
		if p.cursor < len(p.files)-1 {
			p.cursor++
		}
	case key.Matches(msg, p.keys.Select):
		if len(p.files) > 0 {
			return true, p.files[p.cursor]
		}
	}
	return false, ""
}

var (
	pickerCursorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229"))
	pickerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func (p pickerModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Open replay - %s", p.dir)))
	b.WriteString("\n\n")

	switch {
	case p.errMsg != "":
		b.WriteString(errorStyle.Render(p.errMsg))
	case len(p.files) == 0:
		b.WriteString(hintStyle.Render(fmt.Sprintf("No %s files here.", hexlog.Extension)))
	default:
		var list strings.Builder
		for i, f := range p.files {
			cursor := "  "
			line := filepath.Base(f)
			if i == p.cursor {
				cursor = "> "
				line = pickerCursorStyle.Render(line)
			}
			list.WriteString(cursor + line + "\n")
		}
		b.WriteString(pickerBoxStyle.Render(strings.TrimRight(list.String(), "\n")))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/↓ move · enter open · esc back"))

	return b.String()
}
