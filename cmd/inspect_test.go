package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/treesync/internal/model"
)

func TestInspectCmd_DefaultPath(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	docs := []*m.ParsedDocument{{Path: "Screen.kt"}}
	mockWorkflow.EXPECT().Inspect(mock.Anything, m.Path("./...")).Return(docs, nil)
	mockUI.EXPECT().DisplayDocuments(docs).Return(nil)

	_, err := execute(newInspectCmd(), "inspect")
	require.NoError(t, err)
}

func TestInspectCmd_MultiplePaths(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	mockWorkflow.EXPECT().Inspect(mock.Anything, m.Path("./ui/..."), m.Path("Main.kt")).Return(nil, nil)
	mockUI.EXPECT().DisplayDocuments([]*m.ParsedDocument(nil)).Return(nil)

	_, err := execute(newInspectCmd(), "inspect", "./ui/...", "Main.kt")
	require.NoError(t, err)
}

func TestInspectCmd_Tree(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	first := &m.ParsedDocument{Path: "A.kt"}
	second := &m.ParsedDocument{Path: "B.kt"}
	mockWorkflow.EXPECT().Inspect(mock.Anything, m.Path(".")).Return([]*m.ParsedDocument{first, second}, nil)
	mockUI.EXPECT().DisplayTree(first, "Screen").Return(nil).Once()
	mockUI.EXPECT().DisplayTree(second, "Screen").Return(nil).Once()

	_, err := execute(newInspectCmd(), "inspect", "-t", "--function", "Screen", ".")
	require.NoError(t, err)
}

func TestInspectCmd_TreeError(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	doc := &m.ParsedDocument{Path: "A.kt"}
	mockWorkflow.EXPECT().Inspect(mock.Anything, m.Path(".")).Return([]*m.ParsedDocument{doc, doc}, nil)
	mockUI.EXPECT().DisplayTree(doc, "Missing").Return(m.ErrNodeNotFound).Once()

	_, err := execute(newInspectCmd(), "inspect", "--tree", "--function", "Missing", ".")
	assert.ErrorIs(t, err, m.ErrNodeNotFound)
}

func TestInspectCmd_Strict(t *testing.T) {
	broken := &m.ParsedDocument{Path: "Broken.kt", Err: errors.New("unbalanced braces")}

	t.Run("fails on a degraded file", func(t *testing.T) {
		mockWorkflow, mockUI := withMocks(t)

		docs := []*m.ParsedDocument{{Path: "Ok.kt"}, broken}
		mockWorkflow.EXPECT().Inspect(mock.Anything, m.Path("./...")).Return(docs, nil)
		mockUI.EXPECT().DisplayDocuments(docs).Return(nil)

		_, err := execute(newInspectCmd(), "inspect", "--strict")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Broken.kt does not parse")
		assert.Contains(t, err.Error(), "unbalanced braces")
	})

	t.Run("lenient by default", func(t *testing.T) {
		mockWorkflow, mockUI := withMocks(t)

		docs := []*m.ParsedDocument{broken}
		mockWorkflow.EXPECT().Inspect(mock.Anything, m.Path("./...")).Return(docs, nil)
		mockUI.EXPECT().DisplayDocuments(docs).Return(nil)

		_, err := execute(newInspectCmd(), "inspect")
		assert.NoError(t, err)
	})
}

func TestInspectCmd_WorkflowError(t *testing.T) {
	mockWorkflow, _ := withMocks(t)

	mockWorkflow.EXPECT().Inspect(mock.Anything, m.Path("missing")).Return(nil, m.ErrIO)

	_, err := execute(newInspectCmd(), "inspect", "missing")
	assert.ErrorIs(t, err, m.ErrIO)
}

func TestInspectCmd_Examples(t *testing.T) {
	examples, err := filepath.Abs(filepath.Join("..", "examples"))
	require.NoError(t, err)

	withWiring(t)

	out := executeReal(t, newInspectCmd(), "inspect", "--journal", "off", examples+"/...")
	assert.Contains(t, out, "Greeting.kt")
	assert.Contains(t, out, "Profile.kt")
	assert.Contains(t, out, "TOTAL FILES 4")
	assert.Contains(t, out, "1 DEGRADED")

	out = executeReal(t, newInspectCmd(), "inspect", "--journal", "off", "--tree", filepath.Join(examples, "basic", "Greeting.kt"))
	assert.Contains(t, out, "Greeting")
	assert.Contains(t, out, "Column")
	assert.Contains(t, out, "padding(8)")
}
