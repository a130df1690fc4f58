package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/icco/timbre/internal/audio"
	"github.com/icco/timbre/internal/synth"
)

// browserModel manages the patch file browser state.
type browserModel struct {
	currentDir string
	files      []fileInfo
	cursor     int
	message    string
}

type fileInfo struct {
	name  string
	path  string
	isDir bool
}

func newBrowser() browserModel {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	b := browserModel{currentDir: dir}
	b.loadFiles()
	return b
}

func (b *browserModel) loadFiles() {
	b.files = []fileInfo{}

	// Add parent directory entry
	if b.currentDir != "/" {
		b.files = append(b.files, fileInfo{
			name:  "..",
			path:  filepath.Dir(b.currentDir),
			isDir: true,
		})
	}

	entries, err := os.ReadDir(b.currentDir)
	if err != nil {
		b.message = fmt.Sprintf("Error reading directory: %v", err)
		return
	}

	for _, entry := range entries {
		// Skip hidden files
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		// Include directories and patch files
		if entry.IsDir() || strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			b.files = append(b.files, fileInfo{
				name:  entry.Name(),
				path:  filepath.Join(b.currentDir, entry.Name()),
				isDir: entry.IsDir(),
			})
		}
	}

	// Reset cursor if out of bounds
	if b.cursor >= len(b.files) && len(b.files) > 0 {
		b.cursor = len(b.files) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

func (m Model) updateBrowser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := &m.browser

	switch msg.String() {
	case "q", "esc":
		m.mode = editorMode
		return m, nil
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.files)-1 {
			b.cursor++
		}
	case "enter":
		if len(b.files) == 0 {
			return m, nil
		}

		selected := b.files[b.cursor]
		if selected.isDir {
			b.currentDir = selected.path
			b.cursor = 0
			b.message = ""
			b.loadFiles()
			return m, nil
		}

		// A failed load must leave the playing patch untouched:
		// parse and validate first, replace only on success.
		timbre, err := synth.LoadFile(selected.path)
		if err != nil {
			b.message = fmt.Sprintf("Error loading patch: %v", err)
			return m, nil
		}
		m.pb.Edit(func(s *audio.State) { s.Timbre = timbre })
		m.patchPath = selected.path
		m.message = fmt.Sprintf("Loaded %s", selected.name)
		m.mode = editorMode
		m.cursorRow = hzRow
		m.cursorPoint = 0
	}

	return m, nil
}

func (m Model) viewBrowser() string {
	b := m.browser

	s := titleStyle.Render("TIMBRE - load patch") + "\n\n"
	s += fmt.Sprintf("Current Directory: %s\n\n", b.currentDir)

	if len(b.files) == 0 {
		s += "No patch files or directories found.\n"
	} else {
		for i, file := range b.files {
			cursor := " "
			if i == b.cursor {
				cursor = ">"
			}

			name := file.name
			if file.isDir {
				name = dirStyle.Render(name + "/")
			} else {
				name = patchStyle.Render(name)
			}

			if i == b.cursor {
				s += selectedStyle.Render(fmt.Sprintf("%s %s\n", cursor, name))
			} else {
				s += fmt.Sprintf("%s %s\n", cursor, name)
			}
		}
	}

	s += "\n"
	if b.message != "" {
		s += errorStyle.Render(b.message) + "\n"
	}

	s += "\n" + helpStyle.Render("↑/k: up • ↓/j: down • enter: open • q: back to editor")

	return s
}
