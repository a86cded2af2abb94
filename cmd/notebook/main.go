// Command notebook is the terminal frontend: a three-pane markdown notebook
// (document list, editor, live preview) over the same store and session
// controller the wasm frontend uses.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kittclouds/notebook/internal/store"
	"github.com/kittclouds/notebook/pkg/logger"
	"github.com/kittclouds/notebook/pkg/notebook"
	"github.com/kittclouds/notebook/pkg/session"
)

type Config struct {
	DBPath string `yaml:"db_path"`
	Debug  bool   `yaml:"debug"`
}

func loadConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}

	configDir := filepath.Join(home, ".config", "notebook")
	configFile := filepath.Join(configDir, "config.yaml")

	cfg := Config{
		DBPath: filepath.Join(configDir, "notebook.db"),
	}

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		// First run: write the defaults so they are discoverable.
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			return cfg, err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return cfg, err
		}
		return cfg, os.WriteFile(configFile, out, 0o644)
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", configFile, err)
	}
	return cfg, nil
}

// termRenderer adapts glamour to the session's rendering boundary: the
// terminal preview wants ANSI, not HTML.
type termRenderer struct {
	r *glamour.TermRenderer
}

func newTermRenderer() (*termRenderer, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		return nil, err
	}
	return &termRenderer{r: r}, nil
}

func (t *termRenderer) Render(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return "Start typing to see the preview..."
	}
	out, err := t.r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

// Messages the frontend sends into the bubbletea loop. Debounce timers fire
// on their own goroutines, so everything goes through Program.Send.
type (
	showDocumentMsg struct{ doc *notebook.Document }
	showPreviewMsg  struct{ rendered string }
	showListMsg     struct {
		docs     []*notebook.Document
		activeID string
	}
	clearEditorMsg struct{}
	showDeleteMsg  struct{ doc *notebook.Document }
	hideDeleteMsg  struct{}
)

// teaFrontend implements session.Frontend by forwarding into the program.
type teaFrontend struct {
	p *tea.Program
}

func (f *teaFrontend) send(msg tea.Msg) {
	if f.p != nil {
		f.p.Send(msg)
	}
}

func (f *teaFrontend) ShowDocument(doc *notebook.Document) { f.send(showDocumentMsg{doc}) }
func (f *teaFrontend) ShowPreview(rendered string)         { f.send(showPreviewMsg{rendered}) }
func (f *teaFrontend) ShowList(docs []*notebook.Document, activeID string) {
	f.send(showListMsg{docs, activeID})
}
func (f *teaFrontend) ClearEditor() { f.send(clearEditorMsg{}) }
func (f *teaFrontend) ShowDeletePrompt(doc *notebook.Document) {
	f.send(showDeleteMsg{doc})
}
func (f *teaFrontend) HideDeletePrompt() { f.send(hideDeleteMsg{}) }

// listEntry adapts a document to the bubbles list.
type listEntry struct {
	doc    *notebook.Document
	active bool
}

func (e listEntry) FilterValue() string { return e.doc.Title }

func (e listEntry) Title() string {
	if e.active {
		return "▸ " + e.doc.DisplayTitle()
	}
	return e.doc.DisplayTitle()
}

func (e listEntry) Description() string {
	return notebook.FormatDate(e.doc.UpdatedAt)
}

type focusArea int

const (
	focusList focusArea = iota
	focusTitle
	focusEditor
	focusSearch
)

var (
	paneStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedPane     = paneStyle.BorderForeground(lipgloss.Color("62"))
	statusStyle     = lipgloss.NewStyle().Faint(true)
	confirmStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2)
	confirmHotStyle = lipgloss.NewStyle().Bold(true)
)

type model struct {
	ctrl *session.Controller

	docList list.Model
	title   textinput.Model
	editor  textarea.Model
	search  textinput.Model
	preview viewport.Model

	focus      focusArea
	confirming bool
	deleteName string

	width  int
	height int
}

func newModel(ctrl *session.Controller) model {
	ti := textinput.New()
	ti.Placeholder = "Untitled"
	ti.CharLimit = 120

	si := textinput.New()
	si.Placeholder = "search notes..."
	si.CharLimit = 80

	ed := textarea.New()
	ed.Placeholder = "Write some markdown..."
	ed.ShowLineNumbers = false

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Notes"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	vp := viewport.New(0, 0)

	return model{
		ctrl:    ctrl,
		docList: l,
		title:   ti,
		editor:  ed,
		search:  si,
		preview: vp,
		focus:   focusList,
	}
}

func (m model) Init() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.Start()
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case showDocumentMsg:
		m.title.SetValue(msg.doc.Title)
		m.editor.SetValue(msg.doc.Content)
		return m, nil

	case showPreviewMsg:
		m.preview.SetContent(msg.rendered)
		return m, nil

	case showListMsg:
		items := make([]list.Item, 0, len(msg.docs))
		selected := 0
		for i, doc := range msg.docs {
			if doc.ID == msg.activeID {
				selected = i
			}
			items = append(items, listEntry{doc: doc, active: doc.ID == msg.activeID})
		}
		m.docList.SetItems(items)
		m.docList.Select(selected)
		return m, nil

	case clearEditorMsg:
		m.title.SetValue("")
		m.editor.SetValue("")
		return m, nil

	case showDeleteMsg:
		m.confirming = true
		m.deleteName = msg.doc.DisplayTitle()
		return m, nil

	case hideDeleteMsg:
		m.confirming = false
		m.deleteName = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// invoke defers a controller call to a command goroutine. The controller
// drives frontend surfaces through Program.Send, which blocks until the event
// loop drains it, so controller methods must never run inside Update itself.
func invoke(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Confirmation overlay swallows everything except its three answers.
	if m.confirming {
		switch msg.String() {
		case "enter", "y":
			return m, invoke(m.ctrl.ConfirmDelete)
		case "esc", "n":
			return m, invoke(m.ctrl.CancelDelete)
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+n":
		m.focus = focusTitle
		m.syncFocus()
		return m, invoke(func() { m.ctrl.CreateDocument() })

	case "ctrl+s":
		// Everything auto-saves; swallow the reflex.
		return m, nil

	case "tab":
		m.focus = (m.focus + 1) % 4
		m.syncFocus()
		return m, nil
	}

	switch m.focus {
	case focusList:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			if entry, ok := m.docList.SelectedItem().(listEntry); ok {
				id := entry.doc.ID
				m.focus = focusEditor
				m.syncFocus()
				return m, invoke(func() { m.ctrl.Select(id) })
			}
			return m, nil
		case "d", "delete":
			if entry, ok := m.docList.SelectedItem().(listEntry); ok {
				id := entry.doc.ID
				return m, invoke(func() { m.ctrl.RequestDelete(id) })
			}
			return m, nil
		case "/":
			m.focus = focusSearch
			m.syncFocus()
			return m, nil
		}
		var cmd tea.Cmd
		m.docList, cmd = m.docList.Update(msg)
		return m, cmd

	case focusTitle:
		if msg.String() == "esc" || msg.String() == "enter" {
			m.focus = focusEditor
			m.syncFocus()
			return m, nil
		}
		before := m.title.Value()
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		if text := m.title.Value(); text != before {
			return m, tea.Batch(cmd, invoke(func() { m.ctrl.TitleChanged(text) }))
		}
		return m, cmd

	case focusEditor:
		if msg.String() == "esc" {
			m.focus = focusList
			m.syncFocus()
			return m, nil
		}
		before := m.editor.Value()
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		if text := m.editor.Value(); text != before {
			return m, tea.Batch(cmd, invoke(func() { m.ctrl.ContentChanged(text) }))
		}
		return m, cmd

	case focusSearch:
		if msg.String() == "esc" {
			m.search.SetValue("")
			m.focus = focusList
			m.syncFocus()
			return m, invoke(func() { m.ctrl.SearchChanged("") })
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if query := m.search.Value(); query != before {
			return m, tea.Batch(cmd, invoke(func() { m.ctrl.SearchChanged(query) }))
		}
		return m, cmd
	}

	return m, nil
}

func (m *model) syncFocus() {
	m.title.Blur()
	m.editor.Blur()
	m.search.Blur()
	switch m.focus {
	case focusTitle:
		m.title.Focus()
	case focusEditor:
		m.editor.Focus()
	case focusSearch:
		m.search.Focus()
	}
}

func (m *model) layout() {
	if m.width == 0 {
		return
	}
	sidebar := m.width / 4
	if sidebar < 24 {
		sidebar = 24
	}
	content := (m.width - sidebar - 8) / 2
	body := m.height - 8

	m.docList.SetSize(sidebar, body)
	m.title.Width = content
	m.search.Width = sidebar - 4
	m.editor.SetWidth(content)
	m.editor.SetHeight(body)
	m.preview.Width = content
	m.preview.Height = body
}

func (m model) View() string {
	if m.confirming {
		prompt := fmt.Sprintf(
			"Delete %q?\n\nThis cannot be undone.\n\n%s confirm   %s cancel",
			m.deleteName,
			confirmHotStyle.Render("[enter]"),
			confirmHotStyle.Render("[esc]"),
		)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			confirmStyle.Render(prompt))
	}

	style := func(area focusArea) lipgloss.Style {
		if m.focus == area {
			return focusedPane
		}
		return paneStyle
	}

	sidebar := lipgloss.JoinVertical(lipgloss.Left,
		style(focusSearch).Render(m.search.View()),
		style(focusList).Render(m.docList.View()),
	)
	editorPane := lipgloss.JoinVertical(lipgloss.Left,
		style(focusTitle).Render(m.title.View()),
		style(focusEditor).Render(m.editor.View()),
	)
	previewPane := paneStyle.Render(m.preview.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, editorPane, previewPane)
	status := statusStyle.Render("tab focus · ctrl+n new · d delete · / search · ctrl+c quit")

	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "notebook: config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Debug)
	defer log.Sync()

	kv, err := store.NewSQLiteStoreWithDSN(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notebook: open store: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	renderer, err := newTermRenderer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "notebook: renderer: %v\n", err)
		os.Exit(1)
	}

	adapter := notebook.NewAdapter(kv, log)
	docs := notebook.NewStore(adapter, log)

	frontend := &teaFrontend{}
	ctrl := session.NewController(docs, adapter, renderer, frontend, session.DefaultConfig(), log)
	defer ctrl.Close()

	p := tea.NewProgram(newModel(ctrl), tea.WithAltScreen())
	frontend.p = p

	if _, err := p.Run(); err != nil {
		log.Error("program exited with error", zap.Error(err))
		os.Exit(1)
	}
}
