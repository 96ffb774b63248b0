package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/treesync/internal/domain"
	m "github.com/mouse-blink/treesync/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd    *cobra.Command
	format Format
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, format Format) *SimpleUI {
	if format == "" {
		format = FormatTable
	}

	return &SimpleUI{cmd: cmd, format: format}
}

// DisplayDocuments prints one summary row per parsed document.
func (s *SimpleUI) DisplayDocuments(docs []*m.ParsedDocument) error {
	if s.format == FormatYAML {
		out := make([]yamlDocument, 0, len(docs))
		for _, doc := range docs {
			out = append(out, toYAMLDocument(doc, ""))
		}

		return s.printYAML(out)
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Functions", "Nodes", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	nodes := 0
	degraded := 0

	for _, doc := range docs {
		names := make([]string, 0, len(doc.Functions))
		for _, fn := range doc.Functions {
			names = append(names, fn.Name)
		}

		status := "ok"
		if doc.Degraded() {
			status = fmt.Sprintf("degraded: %v", doc.Err)
			degraded++
		}

		count := doc.NodeCount()
		nodes += count

		table.Append([]string{string(doc.Path), strings.Join(names, ", "), fmt.Sprintf("%d", count), status})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(docs)),
		"",
		fmt.Sprintf("%d", nodes),
		fmt.Sprintf("%d degraded", degraded),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayTree prints the element tree of one function, or of every function
// when function is empty.
func (s *SimpleUI) DisplayTree(doc *m.ParsedDocument, function string) error {
	if doc.Degraded() {
		s.printf("%s: parse degraded: %v\n", doc.Path, doc.Err)
		return nil
	}

	if function != "" {
		if _, ok := doc.Function(function); !ok {
			return m.NewSyncError(m.ErrKindNodeNotFound, "no function %q in %s", function, doc.Path)
		}
	}

	if s.format == FormatYAML {
		return s.printYAML(toYAMLDocument(doc, function))
	}

	for _, fn := range doc.Functions {
		if function != "" && fn.Name != function {
			continue
		}

		s.printf("%s %s\n", doc.Path, fn.Name)

		if fn.Root == nil {
			s.printf("  (no elements)\n")
			continue
		}

		var tableBuffer bytes.Buffer

		table := tablewriter.NewWriter(&tableBuffer)
		table.SetHeader([]string{"ID", "Element", "Arguments", "Modifiers"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetAutoWrapText(false)

		for _, row := range treeRows(fn.Root) {
			table.Append([]string{
				string(row.id),
				strings.Repeat("  ", row.depth) + row.label,
				row.args,
				row.modifiers,
			})
		}

		table.Render()
		s.printf("%s\n", tableBuffer.String())
	}

	return nil
}

// DisplayResult prints the outcome of a one-shot edit or the error.
func (s *SimpleUI) DisplayResult(outcome domain.EditOutcome, err error) error {
	if err != nil {
		s.printf("edit error: %v\n", err)
		return err
	}

	switch {
	case outcome.Written:
		s.printf("updated %s (%+d bytes)\n", outcome.Path, len(outcome.After)-len(outcome.Before))
	case outcome.After == outcome.Before:
		s.printf("no changes to %s\n", outcome.Path)
	default:
		s.printf("%s", outcome.After)
	}

	return nil
}

// DisplayHistory prints the journaled saves of path.
func (s *SimpleUI) DisplayHistory(path m.Path, entries []m.JournalEntry) error {
	if s.format == FormatYAML {
		out := make([]yamlEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, yamlEntry{
				SavedAt: e.SavedAt.Format("2006-01-02T15:04:05Z07:00"),
				Hash:    e.Hash,
				Size:    e.Size,
				Session: e.SessionID,
			})
		}

		return s.printYAML(out)
	}

	if len(entries) == 0 {
		s.printf("no saves recorded for %s\n", path)
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Saved At", "Hash", "Size", "Session"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	for i, e := range entries {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			e.SavedAt.Local().Format("2006-01-02 15:04:05"),
			shortHash(e.Hash),
			fmt.Sprintf("%d", e.Size),
			e.SessionID,
		})
	}

	table.SetFooter([]string{"", "", "", fmt.Sprintf("%d", len(entries)), "saves"})

	table.Render()
	s.printf("%s\n%s", path, tableBuffer.String())

	return nil
}

// Design needs a terminal.
func (s *SimpleUI) Design(context.Context, *domain.Session, ...DesignOption) error {
	return ErrNoTerminal
}

func (s *SimpleUI) printYAML(v any) error {
	enc := yaml.NewEncoder(s.cmd.OutOrStdout())
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}

	return enc.Close()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}

	return hash
}

// treeRow is one flattened node for listings.
type treeRow struct {
	id        m.Identity
	depth     int
	label     string
	args      string
	modifiers string
}

func treeRows(root *m.Node) []treeRow {
	var rows []treeRow

	base := 0
	if root != nil {
		base = root.ID.Depth()
	}

	m.Walk(root, func(n *m.Node) bool {
		rows = append(rows, treeRow{
			id:        n.ID,
			depth:     n.ID.Depth() - base,
			label:     nodeLabel(n),
			args:      argumentSummary(n),
			modifiers: modifierSummary(n),
		})

		return true
	})

	return rows
}

func nodeLabel(n *m.Node) string {
	if n.Kind == m.KindCustom {
		return n.Name + " (custom)"
	}

	return string(n.Kind)
}

func argumentSummary(n *m.Node) string {
	parts := make([]string, 0, len(n.Args)+len(n.Properties))

	for _, a := range n.Args {
		parts = append(parts, valueText(a.Value))
	}

	for _, p := range n.Properties {
		parts = append(parts, p.Name+" = "+valueText(p.Value))
	}

	return strings.Join(parts, ", ")
}

func modifierSummary(n *m.Node) string {
	parts := make([]string, 0, len(n.Modifiers))
	for _, mod := range n.Modifiers {
		parts = append(parts, modifierText(mod))
	}

	return strings.Join(parts, ".")
}

func modifierText(mod m.ModifierCall) string {
	args := make([]string, 0, len(mod.Arguments))

	for _, a := range mod.Arguments {
		if a.Name != "" {
			args = append(args, a.Name+" = "+valueText(a.Value))
			continue
		}

		args = append(args, valueText(a.Value))
	}

	return mod.Name + "(" + strings.Join(args, ", ") + ")"
}

func valueText(v m.PropertyValue) string {
	if v.Raw != "" {
		return v.Raw
	}

	return v.String()
}

type yamlDocument struct {
	Path      string         `yaml:"path"`
	Error     string         `yaml:"error,omitempty"`
	Functions []yamlFunction `yaml:"functions"`
}

type yamlFunction struct {
	Name string    `yaml:"name"`
	Root *yamlNode `yaml:"root,omitempty"`
}

type yamlNode struct {
	ID         string         `yaml:"id"`
	Kind       string         `yaml:"kind"`
	Name       string         `yaml:"name,omitempty"`
	Args       []string       `yaml:"args,omitempty"`
	Properties []yamlProperty `yaml:"properties,omitempty"`
	Modifiers  []string       `yaml:"modifiers,omitempty"`
	Children   []*yamlNode    `yaml:"children,omitempty"`
}

type yamlProperty struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type yamlEntry struct {
	SavedAt string `yaml:"saved_at"`
	Hash    string `yaml:"hash"`
	Size    int    `yaml:"size"`
	Session string `yaml:"session"`
}

func toYAMLDocument(doc *m.ParsedDocument, function string) yamlDocument {
	out := yamlDocument{Path: string(doc.Path), Functions: []yamlFunction{}}
	if doc.Err != nil {
		out.Error = doc.Err.Error()
	}

	for _, fn := range doc.Functions {
		if function != "" && fn.Name != function {
			continue
		}

		out.Functions = append(out.Functions, yamlFunction{Name: fn.Name, Root: toYAMLNode(fn.Root)})
	}

	return out
}

func toYAMLNode(n *m.Node) *yamlNode {
	if n == nil {
		return nil
	}

	out := &yamlNode{ID: string(n.ID), Kind: string(n.Kind)}
	if n.Kind == m.KindCustom {
		out.Name = n.Name
	}

	for _, a := range n.Args {
		out.Args = append(out.Args, valueText(a.Value))
	}

	for _, p := range n.Properties {
		out.Properties = append(out.Properties, yamlProperty{Name: p.Name, Value: valueText(p.Value)})
	}

	for _, mod := range n.Modifiers {
		out.Modifiers = append(out.Modifiers, modifierText(mod))
	}

	for _, child := range n.Children {
		out.Children = append(out.Children, toYAMLNode(child))
	}

	return out
}
