package cmd

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/treesync/internal/domain"
	m "github.com/mouse-blink/treesync/internal/model"
)

var editIDFlag string
var editFunctionFlag string
var editNameFlag string
var editValueFlag string
var editRawFlag bool
var editArgFlags []string
var editSnippetFlag string
var editKindFlag string
var editDryRunFlag bool

// editCmd represents the edit command.
var editCmd = newEditCmd()

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <file> <operation>",
		Short: "Apply one structural edit to a source file",
		Long:  editLongDescription(),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildEditRequest(domain.EditOp(args[1]))
			if err != nil {
				return err
			}

			outcome, err := workflow.Edit(cmd.Context(), m.Path(args[0]), req)

			return ui.DisplayResult(outcome, err)
		},
	}
	cmd.Flags().StringVar(&editIDFlag, "id", string(m.RootID), "identity of the target node, e.g. 0.1.2")
	cmd.Flags().StringVar(&editFunctionFlag, "function", "", "UI function to edit (default: the first one)")
	cmd.Flags().StringVar(&editNameFlag, "name", "", "property or modifier name")
	cmd.Flags().StringVar(&editValueFlag, "value", "", "property value; true/false and numbers are written as literals")
	cmd.Flags().BoolVar(&editRawFlag, "raw", false, "write --value verbatim as an expression")
	cmd.Flags().StringArrayVar(&editArgFlags, "arg", nil, "modifier argument, VALUE or NAME=VALUE (can be repeated)")
	cmd.Flags().StringVar(&editSnippetFlag, "snippet", "", "element source for add-child")
	cmd.Flags().StringVar(&editKindFlag, "kind", "", "element kind for insert and wrap")
	cmd.Flags().BoolVarP(&editDryRunFlag, "dry-run", "n", false, "print the edited text instead of writing it")

	return cmd
}

func editLongDescription() string {
	ops := make([]string, 0, len(domain.EditOps()))
	for _, op := range domain.EditOps() {
		ops = append(ops, string(op))
	}

	return `Apply one structural edit to the element tree of a source file and write the
result back. Only the affected span of the text changes.

Operations: ` + strings.Join(ops, ", ") + `

Examples:
  treesync edit Screen.kt set --id 0.1 --name text --value Hello
  treesync edit Screen.kt add-modifier --id 0 --name padding --arg 8
  treesync edit Screen.kt add-modifier --id 0 --name padding --arg horizontal=16
  treesync edit Screen.kt add-child --id 0 --snippet 'Text("New")'
  treesync edit Screen.kt wrap --id 0.1 --kind Row --dry-run`
}

func buildEditRequest(op domain.EditOp) (domain.EditRequest, error) {
	if !slices.Contains(domain.EditOps(), op) {
		return domain.EditRequest{}, fmt.Errorf("unknown operation %q", op)
	}

	id := m.Identity(editIDFlag)
	if !id.Valid() {
		return domain.EditRequest{}, fmt.Errorf("invalid node id %q", editIDFlag)
	}

	req := domain.EditRequest{
		Op:       op,
		Function: editFunctionFlag,
		ID:       id,
		Name:     editNameFlag,
		DryRun:   editDryRunFlag,
	}

	switch op {
	case domain.OpSet:
		if editNameFlag == "" {
			return req, fmt.Errorf("%s needs --name", op)
		}

		req.Value = domain.ParseLiteral(editValueFlag)
		if editRawFlag {
			req.Value = m.OpaqueValue(editValueFlag)
		}
	case domain.OpAddModifier:
		if editNameFlag == "" {
			return req, fmt.Errorf("%s needs --name", op)
		}

		for _, raw := range editArgFlags {
			req.Args = append(req.Args, parseArg(raw))
		}
	case domain.OpRemoveModifier:
		if editNameFlag == "" {
			return req, fmt.Errorf("%s needs --name", op)
		}
	case domain.OpAddChild:
		if strings.TrimSpace(editSnippetFlag) == "" {
			return req, fmt.Errorf("%s needs --snippet", op)
		}

		req.Snippet = editSnippetFlag
	case domain.OpInsert, domain.OpWrap:
		kind := m.Kind(editKindFlag)
		if !kind.IsKnown() {
			return req, fmt.Errorf("%s needs --kind, one of %s", op, kindList())
		}

		req.Kind = kind
	case domain.OpRemove:
	}

	return req, nil
}

// parseArg splits NAME=VALUE when NAME is an identifier; anything else is a
// positional value.
func parseArg(raw string) domain.Arg {
	name, value, found := strings.Cut(raw, "=")
	if !found || !isArgName(name) {
		return domain.Arg{Value: domain.ParseLiteral(raw)}
	}

	return domain.Arg{Name: name, Value: domain.ParseLiteral(value)}
}

func isArgName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}

		return false
	}

	return true
}

func kindList() string {
	kinds := make([]string, 0, len(m.Kinds()))
	for _, k := range m.Kinds() {
		kinds = append(kinds, string(k))
	}

	return strings.Join(kinds, ", ")
}

func init() {
	rootCmd.AddCommand(editCmd)
}
