package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/webgraph/pkg/config"
	"github.com/matzehuels/webgraph/pkg/events"
	"github.com/matzehuels/webgraph/pkg/layout"
	"github.com/matzehuels/webgraph/pkg/render"
	"github.com/matzehuels/webgraph/pkg/session"
	"github.com/matzehuels/webgraph/pkg/store"
)

// frameInterval paces layout transitions in the explorer.
const frameInterval = 16 * time.Millisecond

// zoomStep is the camera ratio factor of one zoom key press.
const zoomStep = 1.25

// List styles
var (
	listCursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listHighlightStyle = lipgloss.NewStyle().Foreground(colorGreen)
	listNormalStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle       = lipgloss.NewStyle().Foreground(colorDim)
	statusErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// exploreCommand creates the explore command, an interactive terminal session.
func (c *CLI) exploreCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "explore [graph.json]",
		Short: "Explore a graph interactively",
		Long: `Explore a graph interactively.

Move through the nodes to hover them and see their highlighted neighborhood.
Drop nodes, toggle edge rendering, re-run the circular layout and zoom the
camera; every edit can be undone and redone. Press ? for all key bindings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			m, err := newExploreModel(g, cfg, c)
			if err != nil {
				return err
			}
			defer m.sess.Stop()

			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "session config file (.toml or .yaml)")
	completeConfigFlag(cmd)
	return cmd
}

// =============================================================================
// Key Bindings
// =============================================================================

type exploreKeys struct {
	Up        key.Binding
	Down      key.Binding
	Drop      key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Edges     key.Binding
	Important key.Binding
	Layout    key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultExploreKeys() exploreKeys {
	return exploreKeys{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Drop:      key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "drop node")),
		Undo:      key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Redo:      key.NewBinding(key.WithKeys("r", "ctrl+y"), key.WithHelp("r", "redo")),
		Edges:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "toggle edges")),
		Important: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "important edges")),
		Layout:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "circular layout")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Drop, k.Undo, k.Redo, k.Help, k.Quit}
}

func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Drop},
		{k.Undo, k.Redo},
		{k.Edges, k.Important, k.Layout},
		{k.ZoomIn, k.ZoomOut, k.Help, k.Quit},
	}
}

// =============================================================================
// Model
// =============================================================================

// frameMsg advances a running layout transition.
type frameMsg time.Time

// exploreModel is the bubbletea model of the explore command. It owns a
// headless session and drives it with the same pointer input a browser
// renderer would deliver.
type exploreModel struct {
	sess *session.Session
	h    *render.Headless

	keys     exploreKeys
	help     help.Model
	viewport viewport.Model

	nodes     []string
	cursor    int
	status    string
	statusErr bool
}

func newExploreModel(g *store.Graph, cfg config.Config, c *CLI) (*exploreModel, error) {
	cfg.EnableHistory = true
	cfg.HighlightSubGraphOnHover = true

	sess, err := session.New(g, cfg, session.WithLogger(c.Logger))
	if err != nil {
		return nil, err
	}
	if err := sess.Start(render.HeadlessFactory); err != nil {
		return nil, err
	}

	m := &exploreModel{
		sess:     sess,
		h:        sess.Renderer().(*render.Headless),
		keys:     defaultExploreKeys(),
		help:     help.New(),
		viewport: viewport.New(60, 15),
	}
	m.reload()
	m.hoverCursor()
	return m, nil
}

func (m *exploreModel) Init() tea.Cmd {
	return nil
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case frameMsg:
		if m.sess.Tick(time.Time(msg)) {
			return m, nextFrame()
		}
		m.setStatus("Layout applied")
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m *exploreModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status, m.statusErr = "", false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.hoverCursor()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.nodes)-1 {
			m.cursor++
			m.hoverCursor()
		}
	case key.Matches(msg, m.keys.Drop):
		if node := m.current(); node != "" {
			m.h.Leave(events.Pointer{})
			m.sess.DropNodes([]string{node})
			m.reload()
			m.hoverCursor()
			m.setStatus("Dropped " + node)
		}
	case key.Matches(msg, m.keys.Undo):
		m.step("Undo", m.sess.Undo)
	case key.Matches(msg, m.keys.Redo):
		m.step("Redo", m.sess.Redo)
	case key.Matches(msg, m.keys.Edges):
		m.sess.ToggleEdgeRendering()
		m.hoverCursor()
	case key.Matches(msg, m.keys.Important):
		m.sess.ToggleJustImportantEdgeRendering()
		m.hoverCursor()
	case key.Matches(msg, m.keys.Layout):
		m.sess.SetAndApplyLayout(layout.Circular, layout.DefaultOptions())
		if m.sess.Animating() {
			return nextFrame()
		}
		m.setStatus("Layout applied")
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(1 / zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(zoomStep)
	}
	return nil
}

// step runs undo or redo and reports the outcome in the status line.
func (m *exploreModel) step(name string, fn func() (bool, error)) {
	m.h.Leave(events.Pointer{})
	ok, err := fn()
	m.reload()
	m.hoverCursor()
	switch {
	case err != nil:
		m.setError(err)
	case !ok:
		m.setStatus("Nothing to " + strings.ToLower(name))
	default:
		m.setStatus(name + " done")
	}
}

func (m *exploreModel) zoom(factor float64) {
	cam, err := m.sess.Camera()
	if err != nil {
		m.setError(err)
		return
	}
	cam.Zoom(factor)
	m.h.Refresh()
}

// reload re-reads the node list after a mutation and keeps the cursor in range.
func (m *exploreModel) reload() {
	m.nodes = m.nodes[:0]
	m.sess.Graph().ForEachNode(func(key string, _ store.Attributes) {
		m.nodes = append(m.nodes, key)
	})
	slices.Sort(m.nodes)
	m.cursor = min(m.cursor, max(len(m.nodes)-1, 0))
}

// hoverCursor moves the pointer onto the node under the cursor.
func (m *exploreModel) hoverCursor() {
	node := m.current()
	if node == "" {
		m.h.Leave(events.Pointer{})
		return
	}
	// re-enter so the highlight follows edge toggles
	m.h.Leave(events.Pointer{})
	m.h.Enter(node, events.Pointer{})
}

func (m *exploreModel) current() string {
	if m.cursor < 0 || m.cursor >= len(m.nodes) {
		return ""
	}
	return m.nodes[m.cursor]
}

func (m *exploreModel) setStatus(s string) { m.status, m.statusErr = s, false }

func (m *exploreModel) setError(err error) { m.status, m.statusErr = err.Error(), true }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// =============================================================================
// View
// =============================================================================

func (m *exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(m.summary()))
	b.WriteString("\n\n")

	m.viewport.SetContent(m.nodeList())
	m.scrollToCursor()
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.status != "" {
		style := StyleSuccess
		if m.statusErr {
			style = statusErrorStyle
		}
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *exploreModel) summary() string {
	g := m.sess.Graph()
	f := m.h.Frame()
	parts := []string{
		fmt.Sprintf("%d nodes", g.Order()),
		fmt.Sprintf("%d edges", g.Size()),
		fmt.Sprintf("%d drawn", len(f.Edges)),
		fmt.Sprintf("zoom %.2f", f.Camera.Ratio),
	}
	if hist := m.sess.History(); hist != nil {
		parts = append(parts, fmt.Sprintf("history %d/%d", hist.Boundary(), hist.Len()))
	}
	if m.sess.EdgesHidden() {
		parts = append(parts, "edges hidden")
	} else if m.sess.JustImportantEdges() {
		parts = append(parts, "important edges")
	}
	return strings.Join(parts, " · ")
}

func (m *exploreModel) nodeList() string {
	highlighted := make(map[string]bool)
	for _, k := range m.sess.HighlightedNodes() {
		highlighted[k] = true
	}
	labeled := make(map[string]bool)
	for _, k := range m.h.Frame().Labels {
		labeled[k] = true
	}

	var b strings.Builder
	for i, node := range m.nodes {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := cursor + node
		if labeled[node] {
			line += listDimStyle.Render("  label")
		}

		switch {
		case i == m.cursor:
			b.WriteString(listCursorStyle.Render(line))
		case highlighted[node]:
			b.WriteString(listHighlightStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if len(m.nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (empty graph)"))
	}
	return b.String()
}

// scrollToCursor keeps the cursor row inside the viewport.
func (m *exploreModel) scrollToCursor() {
	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}
