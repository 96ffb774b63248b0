package controller

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewUI_TTYMode(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ui := NewUI(cmd, true, FormatTable)

	if _, ok := ui.(*TUI); !ok {
		t.Errorf("NewUI(true) returned %T, want *TUI", ui)
	}
}

func TestNewUI_NonTTYMode(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ui := NewUI(cmd, false, FormatTable)

	if _, ok := ui.(*SimpleUI); !ok {
		t.Errorf("NewUI(false) returned %T, want *SimpleUI", ui)
	}
}

func TestIsTTY_WithTerminal(t *testing.T) {
	// depends on how the tests are run; only checks it does not panic
	_ = IsTTY(os.Stdout)
}

func TestIsTTY_WithInvalidFile(t *testing.T) {
	file, err := os.CreateTemp("", "treesync-tty")
	if err != nil {
		t.Fatalf("CreateTemp error: %v", err)
	}
	file.Close()
	defer os.Remove(file.Name())

	if IsTTY(file) {
		t.Fatalf("IsTTY(invalid file) = true, want false")
	}
}

func TestIsTTY_WithCharDevice(t *testing.T) {
	file, err := os.Open("/dev/null")
	if err != nil {
		t.Skip("/dev/null not available")
	}
	defer file.Close()

	if !IsTTY(file) {
		t.Fatalf("IsTTY(/dev/null) = false, want true")
	}
}

func TestIsTTY_WithNonTerminal(t *testing.T) {
	var buf bytes.Buffer

	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) = true, want false")
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"": FormatTable, "table": FormatTable, "yaml": FormatYAML} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", name, got, err, want)
		}
	}

	if _, err := ParseFormat("json"); err == nil {
		t.Fatalf("ParseFormat(json) expected error")
	}
}
