package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/treesync/internal/domain"
	m "github.com/mouse-blink/treesync/internal/model"
)

func TestEditCmd_Requests(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.EditRequest
	}{
		{
			name: "set literal",
			args: []string{"set", "--id", "0.1", "--name", "text", "--value", "Hi"},
			want: domain.EditRequest{Op: domain.OpSet, ID: "0.1", Name: "text", Value: m.StringValue("Hi")},
		},
		{
			name: "set number",
			args: []string{"set", "--name", "spacing", "--value", "12"},
			want: domain.EditRequest{Op: domain.OpSet, ID: "0", Name: "spacing", Value: m.NumberValue(12)},
		},
		{
			name: "set raw expression",
			args: []string{"set", "--id", "0.0", "--name", "color", "--value", "Color.Red", "--raw"},
			want: domain.EditRequest{Op: domain.OpSet, ID: "0.0", Name: "color", Value: m.OpaqueValue("Color.Red")},
		},
		{
			name: "add modifier with arguments",
			args: []string{"add-modifier", "--name", "padding", "--arg", "8", "--arg", "horizontal=16", "--arg", "a == b"},
			want: domain.EditRequest{Op: domain.OpAddModifier, ID: "0", Name: "padding", Args: []domain.Arg{
				{Value: m.NumberValue(8)},
				{Name: "horizontal", Value: m.NumberValue(16)},
				{Value: m.StringValue("a == b")},
			}},
		},
		{
			name: "remove modifier in another function",
			args: []string{"remove-modifier", "--function", "Other", "--id", "0.2", "--name", "clip"},
			want: domain.EditRequest{Op: domain.OpRemoveModifier, Function: "Other", ID: "0.2", Name: "clip"},
		},
		{
			name: "add child dry run",
			args: []string{"add-child", "--snippet", `Text("New")`, "-n"},
			want: domain.EditRequest{Op: domain.OpAddChild, ID: "0", Snippet: `Text("New")`, DryRun: true},
		},
		{
			name: "insert",
			args: []string{"insert", "--kind", "Spacer"},
			want: domain.EditRequest{Op: domain.OpInsert, ID: "0", Kind: m.KindSpacer},
		},
		{
			name: "wrap",
			args: []string{"wrap", "--id", "0.1", "--kind", "Row"},
			want: domain.EditRequest{Op: domain.OpWrap, ID: "0.1", Kind: m.KindRow},
		},
		{
			name: "remove",
			args: []string{"remove", "--id", "0.1"},
			want: domain.EditRequest{Op: domain.OpRemove, ID: "0.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow, mockUI := withMocks(t)

			outcome := domain.EditOutcome{Path: "Screen.kt", Written: true}
			mockWorkflow.EXPECT().Edit(mock.Anything, m.Path("Screen.kt"), tt.want).Return(outcome, nil)
			mockUI.EXPECT().DisplayResult(outcome, nil).Return(nil)

			_, err := execute(newEditCmd(), append([]string{"edit", "Screen.kt"}, tt.args...)...)
			require.NoError(t, err)
		})
	}
}

func TestEditCmd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown operation", []string{"explode"}, `unknown operation "explode"`},
		{"bad id", []string{"remove", "--id", "0..1"}, `invalid node id "0..1"`},
		{"set without name", []string{"set", "--value", "1"}, "set needs --name"},
		{"add modifier without name", []string{"add-modifier"}, "add-modifier needs --name"},
		{"remove modifier without name", []string{"remove-modifier"}, "remove-modifier needs --name"},
		{"blank snippet", []string{"add-child", "--snippet", "  "}, "add-child needs --snippet"},
		{"unknown kind", []string{"wrap", "--kind", "Grid"}, "wrap needs --kind, one of"},
		{"missing kind", []string{"insert"}, "insert needs --kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withMocks(t)

			_, err := execute(newEditCmd(), append([]string{"edit", "Screen.kt"}, tt.args...)...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestEditCmd_Args(t *testing.T) {
	withMocks(t)

	_, err := execute(newEditCmd(), "edit", "Screen.kt")
	assert.Error(t, err)
}

func TestEditCmd_ReportsEditError(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	editErr := m.NewSyncError(m.ErrKindNodeNotFound, "node 0.9")
	mockWorkflow.EXPECT().Edit(mock.Anything, m.Path("Screen.kt"), mock.Anything).Return(domain.EditOutcome{}, editErr)
	mockUI.EXPECT().DisplayResult(domain.EditOutcome{}, editErr).Return(editErr)

	_, err := execute(newEditCmd(), "edit", "Screen.kt", "remove", "--id", "0.9")
	assert.ErrorIs(t, err, m.ErrNodeNotFound)
}

func TestEditCmd_EndToEnd(t *testing.T) {
	withWiring(t)

	path := writeFile(t, ".", "Greeting.kt", greeting)

	out := executeReal(t, newEditCmd(), "edit", path, "add-modifier", "--journal", "off", "--id", "0.0", "--name", "padding", "--arg", "horizontal=4", "--dry-run")
	assert.Contains(t, out, `Text(text = "Hello").padding(horizontal = 4)`)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, greeting, string(onDisk))

	out = executeReal(t, newEditCmd(), "edit", path, "wrap", "--journal", "off", "--id", "0.1", "--kind", "Box")
	assert.Contains(t, out, "updated "+path)

	onDisk, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(onDisk), "Box {")
	assert.Contains(t, string(onDisk), `Text(text = "World").padding(8)`)
}

func TestParseArg(t *testing.T) {
	assert.Equal(t, domain.Arg{Value: m.NumberValue(8)}, parseArg("8"))
	assert.Equal(t, domain.Arg{Name: "all", Value: m.BoolValue(true)}, parseArg("all=true"))
	assert.Equal(t, domain.Arg{Value: m.StringValue("1=2")}, parseArg("1=2"))
	assert.Equal(t, domain.Arg{Name: "x_2", Value: m.StringValue("")}, parseArg("x_2="))
}
