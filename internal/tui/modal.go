// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/autobrr/tqui/internal/panel"
)

// uploadModal is the add-torrent dialog: one or more .torrent file paths
// plus an optional category picked from the live category list.
type uploadModal struct {
	pathInput  textinput.Model
	categories []panel.Category
	catIdx     int
	err        string
	busy       bool
}

func newUploadModal() uploadModal {
	ti := textinput.New()
	ti.Placeholder = "/path/to/file.torrent, /path/to/other.torrent"
	ti.CharLimit = 1024
	ti.Width = 60
	return uploadModal{pathInput: ti}
}

func (u *uploadModal) open(categories []panel.Category) {
	u.categories = categories
	u.catIdx = 0
	u.err = ""
	u.busy = false
	u.pathInput.SetValue("")
	u.pathInput.Focus()
}

func (u *uploadModal) reset() {
	u.pathInput.SetValue("")
	u.pathInput.Blur()
	u.err = ""
	u.busy = false
}

// category returns the selected category name, empty for "(none)". The
// empty string is still sent to the backend as an explicit field.
func (u *uploadModal) category() string {
	if u.catIdx == 0 || u.catIdx > len(u.categories) {
		return ""
	}
	return u.categories[u.catIdx-1].Name
}

func (u *uploadModal) cycleCategory(delta int) {
	n := len(u.categories) + 1
	u.catIdx = (u.catIdx + delta + n) % n
}

func (u uploadModal) render(sp spinner.Model) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Upload torrents"))
	b.WriteString("\n\n")
	b.WriteString("Files:    " + u.pathInput.View())
	b.WriteString("\n")
	b.WriteString("Category: " + valueOr(u.category(), "(none)") + "  ↑/↓ change")
	b.WriteString("\n\n")

	switch {
	case u.busy:
		b.WriteString(sp.View() + " Uploading...")
	case u.err != "":
		b.WriteString(errorStyle.Render(u.err))
	default:
		b.WriteString(mutedStyle.Render("enter upload  esc close"))
	}

	return modalStyle.Render(b.String())
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Closing does not cancel an upload already in flight; the
		// result message is simply dropped into a closed dialog.
		m.modal = modalNone
		m.upload.reset()
		return m, nil

	case tea.KeyUp:
		m.upload.cycleCategory(-1)
		return m, nil

	case tea.KeyDown:
		m.upload.cycleCategory(1)
		return m, nil

	case tea.KeyEnter:
		if m.upload.busy {
			return m, nil
		}
		m.upload.err = ""
		m.upload.busy = true
		return m, tea.Batch(m.submitUpload(), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.upload.pathInput, cmd = m.upload.pathInput.Update(msg)
	return m, cmd
}

// submitUpload reads the named .torrent files and posts them with the
// chosen category. Validation and transport failures both land back in
// the dialog as an inline message.
func (m Model) submitUpload() tea.Cmd {
	raw := m.upload.pathInput.Value()
	category := m.upload.category()

	return func() tea.Msg {
		var files []panel.UploadFile
		for _, path := range strings.Split(raw, ",") {
			path = strings.TrimSpace(path)
			if path == "" {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return uploadDoneMsg{err: errors.Wrapf(err, "failed to read %s", filepath.Base(path))}
			}
			files = append(files, panel.UploadFile{Name: filepath.Base(path), Data: data})
		}
		if len(files) == 0 {
			return uploadDoneMsg{err: errors.New("no torrent files given")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		return uploadDoneMsg{err: m.client.UploadTorrents(ctx, files, category)}
	}
}

// newCategoryModal creates a category on the backend.
type newCategoryModal struct {
	nameInput textinput.Model
	pathInput textinput.Model
	focusPath bool
	err       string
	busy      bool
}

func newNewCategoryModal() newCategoryModal {
	name := textinput.New()
	name.Placeholder = "movies"
	name.CharLimit = 128
	name.Width = 40

	path := textinput.New()
	path.Placeholder = "/downloads/movies"
	path.CharLimit = 512
	path.Width = 40

	return newCategoryModal{nameInput: name, pathInput: path}
}

func (c *newCategoryModal) open() {
	c.nameInput.SetValue("")
	c.pathInput.SetValue("")
	c.err = ""
	c.busy = false
	c.focusPath = false
	c.nameInput.Focus()
	c.pathInput.Blur()
}

func (c *newCategoryModal) reset() {
	c.nameInput.Blur()
	c.pathInput.Blur()
	c.err = ""
	c.busy = false
}

func (c *newCategoryModal) toggleFocus() {
	c.focusPath = !c.focusPath
	if c.focusPath {
		c.nameInput.Blur()
		c.pathInput.Focus()
	} else {
		c.pathInput.Blur()
		c.nameInput.Focus()
	}
}

func (c newCategoryModal) render(sp spinner.Model) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New category"))
	b.WriteString("\n\n")
	b.WriteString("Name: " + c.nameInput.View())
	b.WriteString("\n")
	b.WriteString("Path: " + c.pathInput.View())
	b.WriteString("\n\n")

	switch {
	case c.busy:
		b.WriteString(sp.View() + " Creating...")
	case c.err != "":
		b.WriteString(errorStyle.Render(c.err))
	default:
		b.WriteString(mutedStyle.Render("tab switch field  enter create  esc close"))
	}

	return modalStyle.Render(b.String())
}

func (m Model) handleNewCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.modal = modalNone
		m.newCat.reset()
		return m, nil

	case tea.KeyTab:
		m.newCat.toggleFocus()
		return m, nil

	case tea.KeyEnter:
		if m.newCat.busy {
			return m, nil
		}
		name := strings.TrimSpace(m.newCat.nameInput.Value())
		if name == "" {
			m.newCat.err = "name is required"
			return m, nil
		}
		m.newCat.err = ""
		m.newCat.busy = true
		return m, tea.Batch(m.submitCategory(name, strings.TrimSpace(m.newCat.pathInput.Value())), m.spinner.Tick)
	}

	var cmd tea.Cmd
	if m.newCat.focusPath {
		m.newCat.pathInput, cmd = m.newCat.pathInput.Update(msg)
	} else {
		m.newCat.nameInput, cmd = m.newCat.nameInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitCategory(name, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return categoryCreatedMsg{name: name, err: m.client.CreateCategory(ctx, name, path)}
	}
}
