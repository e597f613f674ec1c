// Package tui is the interactive list/detail browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ec2-instance-browser/internal/catalog"
	"github.com/rshade/ec2-instance-browser/internal/view"
)

// Layout defaults used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 30
	minListWidth  = 36
	chromeLines   = 6
)

// Controller is the state holder the model drives. *catalog.Browser
// satisfies it.
type Controller interface {
	Load()
	SetQuery(query string)
	Select(instanceType string)
	Snapshot() catalog.Snapshot
}

// changedMsg reports that the controller state changed. The model reads the
// state itself, so delivery order does not matter.
type changedMsg struct{}

// Model renders a searchable instance list beside the detail of the
// highlighted instance type. Moving the highlight selects the new type, which
// starts its region fetch.
type Model struct {
	ctrl   Controller
	search textinput.Model
	snap   catalog.Snapshot
	cursor int
	width  int
	height int
}

// New returns a model with the search box focused and set to query.
func New(ctrl Controller, query string) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search instance types (e.g. t2.micro, m5.large)"
	ti.Prompt = "Search: "
	ti.CharLimit = 64
	ti.SetValue(query)
	ti.Focus()

	return &Model{
		ctrl:   ctrl,
		search: ti,
		snap:   ctrl.Snapshot(),
		width:  defaultWidth,
		height: defaultHeight,
	}
}

// Init implements tea.Model. It starts the list fetch.
func (m *Model) Init() tea.Cmd {
	query := m.search.Value()
	return tea.Batch(textinput.Blink, func() tea.Msg {
		m.ctrl.SetQuery(query)
		m.ctrl.Load()
		return changedMsg{}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case changedMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			m.move(-1)
			return m, nil
		case "down", "ctrl+n":
			m.move(1)
			return m, nil
		case "pgup":
			m.move(-m.pageSize())
			return m, nil
		case "pgdown":
			m.move(m.pageSize())
			return m, nil
		case "ctrl+r":
			m.ctrl.Load()
			m.refresh()
			return m, nil
		}

		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if after := m.search.Value(); after != before {
			m.cursor = 0
			m.ctrl.SetQuery(after)
			m.refresh()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// move shifts the highlight by delta within the visible list.
func (m *Model) move(delta int) {
	m.cursor += delta
	m.refresh()
}

func (m *Model) refresh() {
	m.snap = m.ctrl.Snapshot()
	m.syncSelection()
}

// syncSelection clamps the cursor and selects the highlighted instance type
// when it differs from the current selection.
func (m *Model) syncSelection() {
	visible := m.snap.Visible()
	if len(visible) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(m.cursor, len(visible)-1))

	highlighted := visible[m.cursor].InstanceType
	if highlighted != m.snap.Selected {
		m.ctrl.Select(highlighted)
		m.snap = m.ctrl.Snapshot()
	}
}

func (m *Model) pageSize() int {
	return max(1, (m.height-chromeLines)/2)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("EC2 Instance Browser"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.body())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • pgup/pgdn page • type to search • ctrl+r reload • esc quit"))
	return b.String()
}

func (m *Model) body() string {
	switch m.snap.List.State() {
	case catalog.StatePending:
		return subtitleStyle.Render("Loading instance types...")
	case catalog.StateFailed:
		return errorStyle.Render(view.TitleLoadError) + "\n" + m.snap.List.Err().Error()
	}

	visible := m.snap.Visible()
	if len(visible) == 0 {
		title, desc := view.Empty(m.snap.Query)
		return titleStyle.Render(title) + "\n" + subtitleStyle.Render(desc)
	}

	listWidth := max(minListWidth, m.width/3)
	detailWidth := max(minListWidth, m.width-listWidth-4)
	height := max(1, m.height-chromeLines)

	list := listPane.Width(listWidth).Height(height).Render(m.renderList(visible, height))
	detail := detailPane.Width(detailWidth).Height(height).Render(m.renderDetail(visible[m.cursor]))
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

// renderList shows a window of two-line items around the cursor.
func (m *Model) renderList(visible []catalog.InstanceRecord, height int) string {
	perPage := max(1, height/2)
	start := 0
	if m.cursor >= perPage {
		start = m.cursor - perPage + 1
	}
	end := min(len(visible), start+perPage)

	var b strings.Builder
	for i := start; i < end; i++ {
		r := visible[i]
		name := normalStyle.Render("  " + r.InstanceType)
		if i == m.cursor {
			name = selectedStyle.Render("> " + r.InstanceType)
		}
		fmt.Fprintf(&b, "%s %s\n", name, priceStyle.Render(view.PriceTag(r)))
		fmt.Fprintf(&b, "    %s\n", subtitleStyle.Render(r.Subtitle()))
	}
	fmt.Fprintf(&b, "%s", subtitleStyle.Render(fmt.Sprintf("%d of %d", m.cursor+1, len(visible))))
	return b.String()
}

func (m *Model) renderDetail(r catalog.InstanceRecord) string {
	regions := m.snap.Regions
	if m.snap.Selected != r.InstanceType {
		regions = catalog.Pending[[]string]()
	}
	return view.Detail(r, regions)
}

// Run starts the browser on the terminal and blocks until the user quits or
// ctx is canceled. The browser must not have been loaded yet.
func Run(ctx context.Context, b *catalog.Browser, query string) error {
	m := New(b, query)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	// Send blocks until the event loop reads it, and Update itself triggers
	// changes, so deliver from a separate goroutine.
	b.OnChange(func(catalog.Snapshot) {
		go p.Send(changedMsg{})
	})
	_, err := p.Run()
	return err
}
