// Package adapter contains the infrastructure collaborators of the designer:
// filesystem access, parsing, file watching and the save journal.
package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	m "github.com/mouse-blink/treesync/internal/model"
)

// ErrNotUTF8 is returned when a file does not hold valid UTF-8 text.
var ErrNotUTF8 = errors.New("file is not valid UTF-8")

// SourceFSAdapter abstracts the filesystem operations the designer relies
// on, so the session and workflow can be tested without touching the disk.
type SourceFSAdapter interface {
	// ListSources expands roots (files, directories, or `dir/...` for a
	// recursive scan) into the files carrying one of the extensions.
	ListSources(roots []m.Path, extensions []string) ([]m.Path, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadText loads a UTF-8 text file.
	ReadText(path m.Path) (string, error)

	// WriteText replaces the file at path with text. The replacement is
	// atomic: readers see either the old or the new content.
	WriteText(path m.Path, text string) error

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the session and workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ListSources collects source files for the provided roots, deduplicated and
// in walk order.
func (a *LocalSourceFSAdapter) ListSources(roots []m.Path, extensions []string) ([]m.Path, error) {
	if len(roots) == 0 {
		return []m.Path{}, nil
	}

	seen := make(map[string]struct{})

	var sources []m.Path

	add := func(path string) {
		if !hasExtension(path, extensions) {
			return
		}

		if _, exists := seen[path]; exists {
			return
		}

		seen[path] = struct{}{}
		sources = append(sources, m.Path(path))
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			add(rootPath)
			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				return nil
			}

			add(path)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return sources, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr {
			if !recursive || skipDir(info.Name()) {
				return filepath.SkipDir
			}
		}

		return fn(path, info, nil)
	})
}

// ReadText loads file contents from disk and checks they are UTF-8.
func (a *LocalSourceFSAdapter) ReadText(path m.Path) (string, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return "", err
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrNotUTF8)
	}

	return string(data), nil
}

// WriteText writes text to a temporary file next to path and renames it
// into place, keeping the permissions of an existing file.
func (a *LocalSourceFSAdapter) WriteText(path m.Path, text string) error {
	target := string(path)
	perm := os.FileMode(0o644)

	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := io.WriteString(tmp, text); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	return os.Rename(tmpName, target)
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// HashText returns the SHA-256 hash of text, matching HashFile for a file
// holding the same bytes.
func HashText(text string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}

func hasExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, want := range extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}

	return false
}

func skipDir(name string) bool {
	return name == ".git" || name == "build" || name == ".gradle" || name == "node_modules"
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if len(rootStr) >= 4 && rootStr[len(rootStr)-4:] == "/..." {
		return rootStr[:len(rootStr)-4], true
	}

	return rootStr, false
}
