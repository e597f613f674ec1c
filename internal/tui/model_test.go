package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ec2-instance-browser/internal/catalog"
	"github.com/rshade/ec2-instance-browser/internal/view"
)

// fakeController applies every call synchronously.
type fakeController struct {
	records  catalog.Result[[]catalog.InstanceRecord]
	regions  map[string][]string
	query    string
	selected string
	selects  []string
	loads    int
}

func (f *fakeController) Load() { f.loads++ }

func (f *fakeController) SetQuery(q string) { f.query = q }

func (f *fakeController) Select(instanceType string) {
	f.selected = instanceType
	f.selects = append(f.selects, instanceType)
}

func (f *fakeController) Snapshot() catalog.Snapshot {
	snap := catalog.Snapshot{List: f.records, Query: f.query, Selected: f.selected}
	if f.selected != "" {
		snap.Regions = catalog.Succeeded(f.regions[f.selected])
	}
	return snap
}

func loaded() *fakeController {
	return &fakeController{
		records: catalog.Succeeded([]catalog.InstanceRecord{
			{InstanceType: "c5.large", VCPUs: 2, MemorySizeInGiB: 4, StorageSummary: catalog.EBSOnly},
			{InstanceType: "m5.large", VCPUs: 2, MemorySizeInGiB: 8, StorageSummary: catalog.EBSOnly},
			{InstanceType: "m5.xlarge", VCPUs: 4, MemorySizeInGiB: 16, StorageSummary: catalog.EBSOnly},
		}),
		regions: map[string][]string{
			"c5.large": {"US East (N. Virginia)"},
			"m5.large": {"EU (Frankfurt)", "US West (Oregon)"},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_LoadingAndError(t *testing.T) {
	ctrl := &fakeController{}
	m := New(ctrl, "")
	assert.Contains(t, m.View(), "Loading instance types...")

	ctrl.records = catalog.Failed[[]catalog.InstanceRecord](errors.New("Database file not found"))
	m.Update(changedMsg{})
	out := m.View()
	assert.Contains(t, out, view.TitleLoadError)
	assert.Contains(t, out, "Database file not found")
	assert.Empty(t, ctrl.selects)
}

func TestModel_SelectsHighlighted(t *testing.T) {
	ctrl := loaded()
	m := New(ctrl, "")
	m.Update(changedMsg{})

	require.Equal(t, []string{"c5.large"}, ctrl.selects)
	out := m.View()
	assert.Contains(t, out, "> c5.large")
	assert.Contains(t, out, "# c5.large")
	assert.Contains(t, out, "Available Regions (1)")

	m.Update(key("down"))
	assert.Equal(t, "m5.large", ctrl.selected)
	assert.Contains(t, m.View(), "Available Regions (2)")

	// The cursor stops at the ends of the list.
	m.Update(key("down"))
	m.Update(key("down"))
	assert.Equal(t, "m5.xlarge", ctrl.selected)
	m.Update(key("up"))
	m.Update(key("up"))
	m.Update(key("up"))
	assert.Equal(t, "c5.large", ctrl.selected)
	assert.Equal(t, []string{"c5.large", "m5.large", "m5.xlarge", "m5.large", "c5.large"}, ctrl.selects)
}

func TestModel_Search(t *testing.T) {
	ctrl := loaded()
	m := New(ctrl, "")
	m.Update(changedMsg{})

	m.Update(key("m"))
	m.Update(key("5"))
	m.Update(key("."))
	m.Update(key("x"))
	assert.Equal(t, "m5.x", ctrl.query)
	assert.Equal(t, "m5.xlarge", ctrl.selected)

	m.Update(key("z"))
	assert.Equal(t, "m5.xz", ctrl.query)
	out := m.View()
	assert.Contains(t, out, view.TitleNoInstances)
	assert.Contains(t, out, `Could not find instances matching "m5.xz".`)

	m.Update(key("backspace"))
	assert.Equal(t, "m5.x", ctrl.query)
}

func TestModel_InitialQuery(t *testing.T) {
	ctrl := loaded()
	m := New(ctrl, "m5")

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, "m5", m.search.Value())

	// Init's fetch command sets the query and starts the load.
	initFetch(t, cmd)
	assert.Equal(t, "m5", ctrl.query)
	assert.Equal(t, 1, ctrl.loads)
}

// initFetch runs the batched commands returned by Init until the fetch
// command has reported a change.
func initFetch(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if _, ok := c().(changedMsg); ok {
			return
		}
	}
	t.Fatal("fetch command not found in Init batch")
}

func TestModel_ReloadAndQuit(t *testing.T) {
	ctrl := loaded()
	m := New(ctrl, "")

	m.Update(key("ctrl+r"))
	assert.Equal(t, 1, ctrl.loads)

	_, cmd := m.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowSize(t *testing.T) {
	ctrl := loaded()
	m := New(ctrl, "")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m.Update(changedMsg{})

	assert.Equal(t, 80, m.width)
	assert.Equal(t, 7, m.pageSize())
	assert.Contains(t, m.View(), "1 of 3")
}
