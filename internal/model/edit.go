package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an edit or a parse was rejected.
type ErrorKind string

// Error kinds.
const (
	ErrKindNodeNotFound         ErrorKind = "node_not_found"
	ErrKindModifierNotFound     ErrorKind = "modifier_not_found"
	ErrKindUnrepresentableValue ErrorKind = "unrepresentable_value"
	ErrKindAmbiguousSpan        ErrorKind = "ambiguous_span"
	ErrKindParseDegraded        ErrorKind = "parse_degraded"
	ErrKindIO                   ErrorKind = "io_error"
	ErrKindInvalidKind          ErrorKind = "invalid_kind"
)

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrNodeNotFound         = errors.New("node not found")
	ErrModifierNotFound     = errors.New("modifier not found")
	ErrUnrepresentableValue = errors.New("value cannot be written as a literal")
	ErrAmbiguousSpan        = errors.New("source range is ambiguous")
	ErrParseDegraded        = errors.New("source could not be parsed")
	ErrIO                   = errors.New("i/o error")
	ErrInvalidKind          = errors.New("invalid element kind")
)

var sentinels = map[ErrorKind]error{
	ErrKindNodeNotFound:         ErrNodeNotFound,
	ErrKindModifierNotFound:     ErrModifierNotFound,
	ErrKindUnrepresentableValue: ErrUnrepresentableValue,
	ErrKindAmbiguousSpan:        ErrAmbiguousSpan,
	ErrKindParseDegraded:        ErrParseDegraded,
	ErrKindIO:                   ErrIO,
	ErrKindInvalidKind:          ErrInvalidKind,
}

// SyncError is the value every rejected edit is converted into.
type SyncError struct {
	Kind ErrorKind
	Msg  string
	Err  error // underlying cause, if any
}

// NewSyncError builds a SyncError with a formatted message.
func NewSyncError(kind ErrorKind, format string, args ...any) *SyncError {
	return &SyncError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *SyncError) Error() string {
	base := sentinels[e.Kind]
	if base == nil {
		base = errors.New(string(e.Kind))
	}

	if e.Msg == "" {
		return base.Error()
	}

	return fmt.Sprintf("%s: %s", base, e.Msg)
}

// Is matches the sentinel error of the same kind.
func (e *SyncError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// KindOfError extracts the ErrorKind of err, if it carries one.
func KindOfError(err error) (ErrorKind, bool) {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Kind, true
	}

	return "", false
}

// Splice describes one textual replacement: the bytes [Start, End) of the
// old text were replaced with Text.
type Splice struct {
	Start int
	End   int
	Text  string
}

// Delta is the length change caused by the splice.
func (s Splice) Delta() int {
	return len(s.Text) - (s.End - s.Start)
}

// SyncResult is the outcome of one synchronizer operation.
type SyncResult struct {
	Success bool
	Text    string     // full updated text when Success
	Splice  Splice     // the edit applied when Success
	Err     *SyncError // reason when !Success
}

// Succeeded builds a successful result.
func Succeeded(text string, splice Splice) SyncResult {
	return SyncResult{Success: true, Text: text, Splice: splice}
}

// Failed builds a failed result.
func Failed(kind ErrorKind, format string, args ...any) SyncResult {
	return SyncResult{Err: NewSyncError(kind, format, args...)}
}
