package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mouse-blink/treesync/internal/domain"
	m "github.com/mouse-blink/treesync/internal/model"
)

const idColumnWidth = 8

// nodeDelegate renders one tree row per line.
type nodeDelegate struct{}

func (d nodeDelegate) Height() int  { return 1 }
func (d nodeDelegate) Spacing() int { return 0 }
func (d nodeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d nodeDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	node, ok := item.(nodeItem)
	if !ok {
		return
	}

	var idStyle, textStyle lipgloss.Style

	if index == l.Index() {
		idStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true).
			Width(idColumnWidth)
		textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
	} else {
		idStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Width(idColumnWidth)
		textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	}

	marker := " "
	if node.selected {
		marker = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render("●")
	}

	width := l.Width() - idColumnWidth - 3 // marker and two spaces

	line := fmt.Sprintf("%s %s %s",
		marker,
		idStyle.Render(string(node.row.id)),
		textStyle.Render(truncateToWidth(rowText(node.row), width)),
	)
	_, _ = fmt.Fprint(w, line)
}

func rowText(row treeRow) string {
	text := strings.Repeat("  ", row.depth) + row.label
	if row.args != "" {
		text += "(" + row.args + ")"
	}

	if row.modifiers != "" {
		text += "." + row.modifiers
	}

	return text
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// designModel drives a Session from the keyboard.
type designModel struct {
	ctx         context.Context
	session     *domain.Session
	cfg         DesignConfig
	changes     <-chan m.Path
	width       int
	height      int
	nodes       list.Model
	status      string
	err         error
	confirmQuit bool
}

func newDesignModel(ctx context.Context, session *domain.Session, cfg DesignConfig) designModel {
	nodes := list.New([]list.Item{}, nodeDelegate{}, 80, 20)
	nodes.SetShowPagination(false)
	nodes.SetShowFilter(true)
	nodes.SetShowHelp(false)
	nodes.SetShowTitle(false)
	nodes.SetShowStatusBar(false)
	nodes.FilterInput.Placeholder = "Filter by element…"

	d := designModel{
		ctx:     ctx,
		session: session,
		cfg:     cfg,
		nodes:   nodes,
		width:   80,
		height:  24,
		status:  "loaded " + session.Document().Name(),
	}

	if cfg.watcher != nil {
		d.changes = cfg.watcher.Changes()
	}

	d.refresh()

	return d
}

func (d designModel) Init() tea.Cmd {
	return d.waitForChange()
}

// waitForChange blocks until the watcher reports a change or the designer
// context ends.
func (d designModel) waitForChange() tea.Cmd {
	if d.changes == nil {
		return nil
	}

	ctx, changes := d.ctx, d.changes

	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return watchClosedMsg{}
		case path, ok := <-changes:
			if !ok {
				return watchClosedMsg{}
			}

			return fileChangedMsg{path: path}
		}
	}
}

func (d designModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.nodes.SetWidth(d.width)

		return d, nil

	case tea.KeyMsg:
		return d.handleKey(msg)

	case editedMsg:
		d.err = msg.err
		if msg.err == nil {
			d.status = msg.status
		}

		d.refresh()

		return d, nil

	case fileChangedMsg:
		ctx, session := d.ctx, d.session
		reload := func() tea.Msg {
			reloaded, err := session.ReloadIfClean(ctx)
			return reloadedMsg{path: msg.path, reloaded: reloaded, err: err}
		}

		return d, tea.Batch(reload, d.waitForChange())

	case reloadedMsg:
		d.err = msg.err

		switch {
		case msg.err != nil:
		case msg.reloaded:
			d.status = "reloaded " + string(msg.path)
		case d.session.Dirty():
			d.status = "changed on disk, keeping unsaved edits"
		}

		d.refresh()

		return d, nil

	case watchClosedMsg:
		d.changes = nil
		return d, nil
	}

	var cmd tea.Cmd

	d.nodes, cmd = d.nodes.Update(msg)

	return d, cmd
}

func (d designModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if d.nodes.FilterState() == list.Filtering {
		var cmd tea.Cmd

		d.nodes, cmd = d.nodes.Update(msg)

		return d, cmd
	}

	key := msg.String()
	if key != "q" {
		d.confirmQuit = false
	}

	switch key {
	case "ctrl+c":
		return d, tea.Quit

	case "q":
		if d.session.Dirty() && !d.confirmQuit {
			d.confirmQuit = true
			d.status = "unsaved changes, press q again to quit or s to save"

			return d, nil
		}

		return d, tea.Quit

	case "enter", " ":
		d.toggleSelection()
		return d, nil

	case "esc":
		if d.session.Selection() != nil {
			_ = d.session.Select(nil)
			d.status = "selection cleared"
			d.refresh()

			return d, nil
		}

	case "tab":
		d.nextFunction()
		return d, nil

	case "u":
		return d, d.step("undo", d.session.Undo)

	case "r":
		return d, d.step("redo", d.session.Redo)

	case "s", "ctrl+s":
		session := d.session
		return d, d.run("saved "+session.Document().Name(), session.Save)

	case "x", "delete":
		if id, ok := d.target(); ok {
			session := d.session
			return d, d.run("removed "+string(id), func(ctx context.Context) error {
				return session.RemoveNode(ctx, id)
			})
		}

		return d, nil

	case "w":
		if id, ok := d.target(); ok {
			session, kind := d.session, d.cfg.wrap
			return d, d.run(fmt.Sprintf("wrapped %s in %s", id, kind), func(ctx context.Context) error {
				return session.WrapNode(ctx, id, kind)
			})
		}

		return d, nil

	case "a":
		if id, ok := d.target(); ok {
			session, kind := d.session, d.cfg.insert
			return d, d.run(fmt.Sprintf("inserted %s into %s", kind, id), func(ctx context.Context) error {
				return session.InsertElement(ctx, id, kind)
			})
		}

		return d, nil
	}

	var cmd tea.Cmd

	d.nodes, cmd = d.nodes.Update(msg)

	return d, cmd
}

// target is the selected node, or the node under the cursor when nothing is
// selected.
func (d designModel) target() (m.Identity, bool) {
	if sel := d.session.Selection(); sel != nil {
		return *sel, true
	}

	item, ok := d.nodes.SelectedItem().(nodeItem)
	if !ok {
		return "", false
	}

	return item.row.id, true
}

func (d *designModel) toggleSelection() {
	item, ok := d.nodes.SelectedItem().(nodeItem)
	if !ok {
		return
	}

	if item.selected {
		d.err = d.session.Select(nil)
		d.status = "selection cleared"
	} else {
		id := item.row.id
		d.err = d.session.Select(&id)
		d.status = "selected " + string(id) + " " + item.row.label
	}

	d.refresh()
}

func (d *designModel) nextFunction() {
	parsed := d.session.Parsed()
	if parsed.Degraded() || len(parsed.Functions) < 2 {
		return
	}

	current := d.activeFunction()
	next := parsed.Functions[0].Name

	for i, fn := range parsed.Functions {
		if fn.Name == current && i+1 < len(parsed.Functions) {
			next = parsed.Functions[i+1].Name
		}
	}

	d.err = d.session.SetActiveFunction(next)
	if d.err == nil {
		d.status = "function " + next
		d.nodes.Select(0)
	}

	d.refresh()
}

// activeFunction resolves the session's active function to a name.
func (d designModel) activeFunction() string {
	fn, ok := d.session.Parsed().Function(d.session.ActiveFunction())
	if !ok {
		return ""
	}

	return fn.Name
}

func (d designModel) run(status string, op func(context.Context) error) tea.Cmd {
	ctx := d.ctx

	return func() tea.Msg {
		if err := op(ctx); err != nil {
			return editedMsg{err: err}
		}

		return editedMsg{status: status}
	}
}

func (d designModel) step(name string, op func(context.Context) (bool, error)) tea.Cmd {
	ctx := d.ctx

	return func() tea.Msg {
		moved, err := op(ctx)
		if err != nil {
			return editedMsg{err: err}
		}

		if !moved {
			return editedMsg{status: "nothing to " + name}
		}

		return editedMsg{status: name}
	}
}

// refresh rebuilds the list from the session tree, keeping the cursor on the
// selection when there is one.
func (d *designModel) refresh() {
	sel := d.session.Selection()
	rows := treeRows(d.session.Tree())
	cursor := d.nodes.Index()

	items := make([]list.Item, 0, len(rows))
	for i, row := range rows {
		selected := sel != nil && row.id == *sel
		if selected {
			cursor = i
		}

		items = append(items, nodeItem{row: row, selected: selected})
	}

	d.nodes.SetItems(items)

	if cursor >= len(items) {
		cursor = len(items) - 1
	}

	if cursor >= 0 {
		d.nodes.Select(cursor)
	}
}

func (d designModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	doc := d.session.Document()

	name := doc.Name()
	if d.session.Dirty() {
		name += " *"
	}

	title := titleStyle.Render("treesync designer · " + name)

	function := d.activeFunction()
	if function == "" {
		function = "-"
	}

	summary := summaryStyle.Render(fmt.Sprintf(
		"Function: %s   Nodes: %s   Undo: %s   Redo: %s",
		accentStyle.Render(function),
		accentStyle.Render(fmt.Sprintf("%d", len(d.nodes.Items()))),
		accentStyle.Render(yesNo(d.session.CanUndo())),
		accentStyle.Render(yesNo(d.session.CanRedo())),
	))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(d.width)

	footer := footerStyle.Render(
		"↑/k up • ↓/j down • enter select • a add • x delete • w wrap • u undo • r redo • tab function • s save • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		d.renderTable(),
		d.renderStatus(),
		footer,
	)
}

func (d designModel) renderStatus() string {
	style := lipgloss.NewStyle().Padding(0, 0, 0, 2)

	if d.err != nil {
		return style.Foreground(lipgloss.Color("9")).Render("error: " + d.err.Error())
	}

	if parsed := d.session.Parsed(); parsed.Degraded() {
		return style.Foreground(lipgloss.Color("9")).Render(fmt.Sprintf("parse degraded: %v", parsed.Err))
	}

	return style.Foreground(lipgloss.Color("8")).Render(d.status)
}

func (d designModel) renderTable() string {
	// Screen height minus title (2), summary (2), status (1), footer (1),
	// border (2) and header (2).
	listHeight := d.height - 10
	if listHeight < 5 {
		listHeight = 5
	}

	// Window width minus margin, border and padding.
	listWidth := d.width - 6

	d.nodes.SetHeight(listHeight)
	d.nodes.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("  %-*s %s", idColumnWidth, "ID", "Element"))

	body := d.nodes.View()
	if len(d.nodes.Items()) == 0 {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("no elements")
	}

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			body,
		),
	)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
