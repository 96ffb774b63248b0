package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/treesync/internal/model"
)

func TestHistoryCmd(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	entries := []m.JournalEntry{
		{Path: "/src/Screen.kt", Hash: "abc", Size: 10, SavedAt: time.Unix(0, 0), SessionID: "s1"},
	}
	mockWorkflow.EXPECT().History(mock.Anything, m.Path("Screen.kt")).Return(entries, nil)
	mockUI.EXPECT().DisplayHistory(m.Path("Screen.kt"), entries).Return(nil)

	_, err := execute(newHistoryCmd(), "history", "Screen.kt")
	require.NoError(t, err)
}

func TestHistoryCmd_Error(t *testing.T) {
	mockWorkflow, _ := withMocks(t)

	mockWorkflow.EXPECT().History(mock.Anything, m.Path("Screen.kt")).Return(nil, m.ErrIO)

	_, err := execute(newHistoryCmd(), "history", "Screen.kt")
	assert.ErrorIs(t, err, m.ErrIO)
}

func TestHistoryCmd_Args(t *testing.T) {
	withMocks(t)

	_, err := execute(newHistoryCmd(), "history")
	assert.Error(t, err)

	_, err = execute(newHistoryCmd(), "history", "a.kt", "b.kt")
	assert.Error(t, err)
}
