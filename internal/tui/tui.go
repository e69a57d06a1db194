// Package tui implements the read-only "inspect" explorer: a bubbletea
// program that browses a single normalized Sbom's component graph using the
// Query API (roots, deps, rdeps, transitive closure) without ever mutating
// it.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sbomdiff/sbomdiff/internal/model"
)

type viewMode int

const (
	listView viewMode = iota
	detailView
	helpView
)

// ComponentItem adapts a *model.Component for bubbles/list.
type ComponentItem struct {
	component *model.Component
}

func (i ComponentItem) Title() string {
	version := i.component.Version
	if version == "" {
		version = "(no version)"
	}
	return fmt.Sprintf("%s %s", i.component.Name, dimStyle.Render(version))
}

func (i ComponentItem) Description() string {
	var parts []string
	if i.component.Ecosystem != "" {
		parts = append(parts, "type: "+i.component.Ecosystem)
	}
	if len(i.component.Licenses) > 0 {
		parts = append(parts, "license: "+i.component.Licenses[0])
	}
	return strings.Join(parts, " | ")
}

func (i ComponentItem) FilterValue() string {
	return i.component.Name + " " + i.component.Purl + " " + strings.Join(i.component.Licenses, " ")
}

type keyMap struct {
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
	Help  key.Binding
}

var keys = keyMap{
	Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "inspect")),
	Back:  key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Model is the inspector's bubbletea model, wrapping a single normalized
// Sbom that it only ever reads from via the Query API.
type Model struct {
	sbom     *model.Sbom
	list     list.Model
	viewport viewport.Model
	mode     viewMode
	selected *model.Component
	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel builds an inspector over sbom, seeding the list with every
// component sorted by name.
func NewModel(sbom *model.Sbom) Model {
	comps := append([]*model.Component(nil), sbom.Components()...)
	sort.Slice(comps, func(i, j int) bool { return comps[i].Name < comps[j].Name })

	items := make([]list.Item, len(comps))
	for i, c := range comps {
		items[i] = ComponentItem{component: c}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = selectedStyle

	l := list.New(items, delegate, 0, 0)
	l.Title = "sbom-diff inspect"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{
		sbom: sbom,
		list: l,
		mode: listView,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 6
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case listView:
			switch {
			case key.Matches(msg, keys.Enter):
				if i, ok := m.list.SelectedItem().(ComponentItem); ok {
					m.selected = i.component
					m.mode = detailView
					m.viewport.SetContent(m.renderComponentDetail(i.component))
					m.viewport.GotoTop()
				}
			case key.Matches(msg, keys.Help):
				m.mode = helpView
				m.viewport.SetContent(renderHelp())
				m.viewport.GotoTop()
			default:
				var cmd tea.Cmd
				m.list, cmd = m.list.Update(msg)
				return m, cmd
			}

		case detailView, helpView:
			switch {
			case key.Matches(msg, keys.Back):
				m.mode = listView
			case msg.String() == "up", msg.String() == "k":
				m.viewport.ScrollUp(1)
			case msg.String() == "down", msg.String() == "j":
				m.viewport.ScrollDown(1)
			}
		}
	}
	return m, nil
}

// Run starts the inspector over sbom and blocks until the user quits.
func Run(sbom *model.Sbom) error {
	p := tea.NewProgram(NewModel(sbom), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
