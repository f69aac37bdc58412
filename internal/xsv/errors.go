package xsv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jjtimmons/sparseq/internal/sparse"
)

var (
	// ErrIO is for a source or destination that can't be opened, read or written
	ErrIO = errors.New("io error")

	// ErrFormat is for a malformed row
	ErrFormat = errors.New("malformed row")

	// ErrArgument is for nil sequences or contigs, or IDs that can't be written
	ErrArgument = errors.New("invalid argument")

	// ErrAlphabet is for a symbol outside the parser's alphabet
	ErrAlphabet = sparse.ErrAlphabet

	// ErrRange is for an index outside a sequence's length
	ErrRange = sparse.ErrRange

	// ErrConfiguration is for invalid parser or formatter settings
	ErrConfiguration = sparse.ErrConfiguration
)

// Error is a failed parse or format. It matches its Kind and its
// underlying cause with errors.Is
type Error struct {
	// Kind is one of the Err sentinels of this package
	Kind error

	// Path is the file being read or written. Empty for streams
	Path string

	// Line is the 1-based line of the offending row, 0 if not row specific
	Line int

	// Err is the underlying cause, may be nil
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the kind and the cause for errors.Is and errors.As
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// rowError makes an Error for a specific line of the source.
// the kind is taken from err if err is already one of the sparse sentinels
func rowError(path string, line int, err error) *Error {
	kind := ErrFormat
	switch {
	case errors.Is(err, ErrAlphabet):
		kind = ErrAlphabet
	case errors.Is(err, ErrRange):
		kind = ErrRange
	}
	return &Error{Kind: kind, Path: path, Line: line, Err: err}
}
