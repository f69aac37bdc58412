package xsv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jjtimmons/sparseq/config"
	"github.com/jjtimmons/sparseq/internal/contig"
	"github.com/jjtimmons/sparseq/internal/sparse"
	log "github.com/sirupsen/logrus"
)

const (
	// Name of the formatter
	Name = "XsvSparseFormatter"

	// Description of the formatter
	Description = "Sparse Sequence formatter to character separated value file"

	// SupportedFileTypes are the file extensions the formatter writes
	SupportedFileTypes = "csv,tsv"
)

// Formatter writes sparse sequences and contigs as rows of character separated values
type Formatter struct {
	// path to the destination file, empty if writing to w
	path string

	// w is the destination stream when no path is set
	w io.Writer

	separator byte

	idPrefix byte
}

// NewFormatter creates a formatter for the file at path. Every Write call
// replaces the file, and a failed Write leaves the earlier file in place
func NewFormatter(path string, separator, idPrefix byte) (*Formatter, error) {
	if path == "" {
		return nil, &Error{Kind: ErrArgument, Err: fmt.Errorf("empty path")}
	}
	if err := checkDelimiters(separator, idPrefix); err != nil {
		return nil, err
	}
	return &Formatter{path: path, separator: separator, idPrefix: idPrefix}, nil
}

// NewWriterFormatter creates a formatter that writes rows to w
func NewWriterFormatter(w io.Writer, separator, idPrefix byte) (*Formatter, error) {
	if w == nil {
		return nil, &Error{Kind: ErrArgument, Err: fmt.Errorf("nil writer")}
	}
	if err := checkDelimiters(separator, idPrefix); err != nil {
		return nil, err
	}
	return &Formatter{w: w, separator: separator, idPrefix: idPrefix}, nil
}

// NewFormatterFromConfig creates a formatter for the file at path using the xsv settings
func NewFormatterFromConfig(path string, c *config.Config) (*Formatter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return NewFormatter(path, c.Separator(), c.IDPrefix())
}

// Name returns the formatter's name
func (f *Formatter) Name() string { return Name }

// Description returns a human readable description of the formatter
func (f *Formatter) Description() string { return Description }

// SupportedFileTypes returns the comma separated file extensions the formatter writes
func (f *Formatter) SupportedFileTypes() string { return SupportedFileTypes }

// Separator returns the field separator
func (f *Formatter) Separator() byte { return f.separator }

// SequenceIDPrefix returns the character written before each sequence ID
func (f *Formatter) SequenceIDPrefix() byte { return f.idPrefix }

// Write writes a single sequence
func (f *Formatter) Write(s *sparse.Sequence) error {
	return f.WriteAll([]*sparse.Sequence{s})
}

// WriteAll writes one row per sequence, in slice order
func (f *Formatter) WriteAll(seqs []*sparse.Sequence) error {
	for i, s := range seqs {
		if s == nil {
			return &Error{Kind: ErrArgument, Path: f.path, Err: fmt.Errorf("nil sequence at %d", i)}
		}
		if err := f.checkID(s.ID()); err != nil {
			return err
		}
	}

	return f.write(func(w *bufio.Writer) {
		for _, s := range seqs {
			f.writeSequence(w, s)
		}
	}, len(seqs))
}

// WriteContig writes the consensus row and then a row per assembled
// sequence, in contig order
func (f *Formatter) WriteContig(c *contig.Contig) error {
	if c == nil || c.Consensus == nil {
		return &Error{Kind: ErrArgument, Path: f.path, Err: fmt.Errorf("nil contig")}
	}

	seqs := make([]*sparse.Sequence, 0, len(c.Sequences)+1)
	seqs = append(seqs, c.Consensus)
	for _, a := range c.Sequences {
		seqs = append(seqs, a.Sequence)
	}
	return f.WriteAll(seqs)
}

// checkID errors out on IDs that couldn't be read back as a single field
func (f *Formatter) checkID(id string) error {
	if strings.IndexByte(id, f.separator) >= 0 || strings.ContainsAny(id, "\r\n") {
		return &Error{Kind: ErrArgument, Path: f.path, Err: fmt.Errorf("sequence ID %q contains a separator or line break", id)}
	}
	return nil
}

// writeSequence writes a single row. Write errors are kept by w and
// surface on Flush
func (f *Formatter) writeSequence(w *bufio.Writer, s *sparse.Sequence) {
	w.WriteByte(f.idPrefix)
	w.WriteString(s.ID())
	for _, it := range s.KnownItems() {
		w.WriteByte(f.separator)
		w.WriteString(strconv.Itoa(it.Index))
		w.WriteByte(f.separator)
		w.WriteByte(byte(it.Letter))
	}
	w.WriteByte('\n')
}

// write runs rows against the destination and releases it on every path.
// Files are written to a temporary file next to the destination, which
// is renamed over the destination once everything is flushed
func (f *Formatter) write(rows func(*bufio.Writer), count int) error {
	start := time.Now()
	if f.path == "" {
		w := bufio.NewWriter(f.w)
		rows(w)
		if err := w.Flush(); err != nil {
			return &Error{Kind: ErrIO, Err: err}
		}
		log.Debugf("wrote %d sequences to stream in %s", count, time.Since(start))
		return nil
	}

	// a replaced file keeps its permissions, new files are 0644
	perm := os.FileMode(0644)
	if info, err := os.Stat(f.path); err == nil {
		perm = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return &Error{Kind: ErrIO, Path: f.path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return &Error{Kind: ErrIO, Path: f.path, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		tmp.Close()
		if !committed {
			os.Remove(tmpPath)
		}
	}()
	if err := tmp.Chmod(perm); err != nil {
		return &Error{Kind: ErrIO, Path: f.path, Err: err}
	}

	w := bufio.NewWriter(tmp)
	rows(w)
	if err := w.Flush(); err != nil {
		return &Error{Kind: ErrIO, Path: f.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &Error{Kind: ErrIO, Path: f.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &Error{Kind: ErrIO, Path: f.path, Err: err}
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return &Error{Kind: ErrIO, Path: f.path, Err: err}
	}
	committed = true

	log.Debugf("wrote %d sequences to %s in %s", count, f.path, time.Since(start))
	return nil
}
