// Package xsv is for reading and writing sparse sequences as character
// separated rows, one row per sequence:
//
//	#<id>,<index_1>,<symbol_1>,<index_2>,<symbol_2>...
//
// Both the separator and the ID prefix are configurable.
package xsv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jjtimmons/sparseq/config"
	"github.com/jjtimmons/sparseq/internal/alphabet"
	"github.com/jjtimmons/sparseq/internal/contig"
	"github.com/jjtimmons/sparseq/internal/sparse"
	log "github.com/sirupsen/logrus"
)

// Parser reads sparse sequences from a file or stream
type Parser struct {
	// path to the source file, empty if reading from r
	path string

	// r is the source stream when no path is set
	r io.Reader

	alpha alphabet.Alphabet

	separator byte

	idPrefix byte

	// consensusLength overrides the length of a parsed consensus if > 0
	consensusLength int
}

// record is a row (and its continuation rows) before it is made into a Sequence
type record struct {
	id string

	// line the ID row was on
	line int

	items []sparse.IndexedItem
}

// NewParser creates a parser for the file at path
func NewParser(path string, alpha alphabet.Alphabet, separator, idPrefix byte) (*Parser, error) {
	if path == "" {
		return nil, &Error{Kind: ErrArgument, Err: fmt.Errorf("empty path")}
	}
	if err := checkParserArgs(alpha, separator, idPrefix); err != nil {
		return nil, err
	}
	return &Parser{path: path, alpha: alpha, separator: separator, idPrefix: idPrefix}, nil
}

// NewReaderParser creates a parser for a stream. The stream is consumed
// by the first call to Parse or ParseContig
func NewReaderParser(r io.Reader, alpha alphabet.Alphabet, separator, idPrefix byte) (*Parser, error) {
	if r == nil {
		return nil, &Error{Kind: ErrArgument, Err: fmt.Errorf("nil reader")}
	}
	if err := checkParserArgs(alpha, separator, idPrefix); err != nil {
		return nil, err
	}
	return &Parser{r: r, alpha: alpha, separator: separator, idPrefix: idPrefix}, nil
}

// NewParserFromConfig creates a parser for the file at path using the xsv settings
func NewParserFromConfig(path string, c *config.Config) (*Parser, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	alpha, err := c.Alphabet()
	if err != nil {
		return nil, err
	}

	p, err := NewParser(path, alpha, c.Separator(), c.IDPrefix())
	if err != nil {
		return nil, err
	}
	p.consensusLength = c.Xsv.ConsensusLength
	return p, nil
}

func checkParserArgs(alpha alphabet.Alphabet, separator, idPrefix byte) error {
	if alpha == nil {
		return &Error{Kind: ErrConfiguration, Err: fmt.Errorf("nil alphabet")}
	}
	return checkDelimiters(separator, idPrefix)
}

func checkDelimiters(separator, idPrefix byte) error {
	if separator == idPrefix {
		return &Error{Kind: ErrConfiguration, Err: fmt.Errorf("separator and ID prefix are both %q", separator)}
	}
	if separator == '\n' || separator == '\r' || idPrefix == '\n' || idPrefix == '\r' {
		return &Error{Kind: ErrConfiguration, Err: fmt.Errorf("line breaks can't delimit fields")}
	}
	return nil
}

// SetConsensusLength sets the length of the consensus made by ParseContig.
// Zero derives it from the largest index in the consensus row
func (p *Parser) SetConsensusLength(n int) error {
	if n < 0 {
		return &Error{Kind: ErrConfiguration, Err: fmt.Errorf("negative consensus length %d", n)}
	}
	p.consensusLength = n
	return nil
}

// Alphabet returns the alphabet parsed symbols are checked against
func (p *Parser) Alphabet() alphabet.Alphabet { return p.alpha }

// Separator returns the field separator
func (p *Parser) Separator() byte { return p.separator }

// SequenceIDPrefix returns the character that starts an ID field
func (p *Parser) SequenceIDPrefix() byte { return p.idPrefix }

// Parse reads every sequence in the source, in source order. An empty
// source returns no sequences and no error
func (p *Parser) Parse() ([]*sparse.Sequence, error) {
	records, err := p.read()
	if err != nil {
		return nil, err
	}

	seqs := make([]*sparse.Sequence, 0, len(records))
	for _, rec := range records {
		s, err := p.build(rec, 0)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, s)
	}
	return seqs, nil
}

// ParseContig reads the source as a single contig: the first sequence is
// the consensus and every other sequence is assembled against it, in source
// order, at the offset in its ID. A source without sequences is not an
// error: ParseContig returns a nil Contig and a nil error, so check the
// Contig before reading its Consensus
func (p *Parser) ParseContig() (*contig.Contig, error) {
	records, err := p.read()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	consensus, err := p.build(records[0], p.consensusLength)
	if err != nil {
		return nil, err
	}
	c, err := contig.New(consensus)
	if err != nil {
		return nil, err
	}

	for _, rec := range records[1:] {
		s, err := p.build(rec, 0)
		if err != nil {
			return nil, err
		}
		if err := c.Add(s, contig.Offset(s.ID()), false); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// read opens the source and splits it into records, closing the source before returning
func (p *Parser) read() (records []*record, err error) {
	start := time.Now()
	r := p.r
	if p.path != "" {
		f, err := os.Open(p.path)
		if err != nil {
			return nil, &Error{Kind: ErrIO, Path: p.path, Err: err}
		}
		defer f.Close()
		r = f
	}

	br := bufio.NewReaderSize(r, 64*1024)

	var current *record
	line := 0
	for {
		row, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, &Error{Kind: ErrIO, Path: p.path, Line: line + 1, Err: readErr}
		}
		if readErr == io.EOF && row == "" {
			break
		}
		line++

		row = strings.TrimSuffix(strings.TrimSuffix(row, "\n"), "\r")
		if strings.TrimSpace(row) != "" {
			if current, err = p.readRow(current, row, line); err != nil {
				return nil, err
			}
			if len(records) == 0 || records[len(records)-1] != current {
				records = append(records, current)
			}
		}
		if readErr == io.EOF {
			break
		}
	}

	log.Debugf("read %d sequences from %s in %s", len(records), p.source(), time.Since(start))
	return records, nil
}

// readRow reads a single non-blank row. It returns the record the row
// belongs to: a new one for an ID row, current for a continuation row
func (p *Parser) readRow(current *record, row string, line int) (*record, error) {
	fields := strings.Split(row, string(p.separator))
	pairs := fields
	if len(fields[0]) > 0 && fields[0][0] == p.idPrefix {
		current = &record{id: fields[0][1:], line: line}
		pairs = fields[1:]
	} else if current == nil {
		return nil, rowError(p.path, line, fmt.Errorf("row has no %q prefixed sequence ID and follows no sequence", p.idPrefix))
	} else {
		log.Debugf("line %d continues sequence %s", line, current.id)
	}

	if err := p.readPairs(current, pairs); err != nil {
		return nil, rowError(p.path, line, err)
	}
	return current, nil
}

// readPairs appends the (index, symbol) pairs of a row to rec
func (p *Parser) readPairs(rec *record, pairs []string) error {
	if len(pairs)%2 != 0 {
		return fmt.Errorf("sequence %s has %d fields after its ID, expected index and symbol pairs", rec.id, len(pairs))
	}

	for i := 0; i < len(pairs); i += 2 {
		index, err := parseIndex(pairs[i])
		if err != nil {
			return fmt.Errorf("sequence %s has invalid index %q", rec.id, pairs[i])
		}
		if len(pairs[i+1]) != 1 {
			return fmt.Errorf("sequence %s has symbol %q at %d, expected a single character", rec.id, pairs[i+1], index)
		}
		l := alphabet.Letter(pairs[i+1][0])
		if !p.alpha.IsValid(l) {
			return fmt.Errorf("sequence %s has %q at %d: %w", rec.id, l, index, ErrAlphabet)
		}

		// equal indexes overwrite, like Set
		if n := len(rec.items); n > 0 && rec.items[n-1].Index > index {
			return fmt.Errorf("sequence %s has index %d after %d, indexes must ascend", rec.id, index, rec.items[n-1].Index)
		}
		rec.items = append(rec.items, sparse.IndexedItem{Index: index, Letter: l})
	}
	return nil
}

// parseIndex reads an index in the form the formatter writes it: decimal
// digits without a sign or leading zeros, so rows are written back unchanged
func parseIndex(field string) (int, error) {
	if field == "" || field[0] < '0' || field[0] > '9' || (len(field) > 1 && field[0] == '0') {
		return 0, fmt.Errorf("non canonical index %q", field)
	}
	return strconv.Atoi(field)
}

// build makes a Sequence from a record. Its length is one past the largest
// index unless length is > 0, in which case it must cover every index
func (p *Parser) build(rec *record, length int) (*sparse.Sequence, error) {
	count := 0
	if n := len(rec.items); n > 0 {
		count = rec.items[n-1].Index + 1
	}
	if length > 0 {
		if length < count {
			return nil, rowError(p.path, rec.line, fmt.Errorf(
				"sequence %s has index %d beyond its length %d: %w", rec.id, count-1, length, ErrRange,
			))
		}
		count = length
	}

	s, err := sparse.New(rec.id, p.alpha, count)
	if err != nil {
		return nil, rowError(p.path, rec.line, err)
	}
	for _, it := range rec.items {
		if err := s.Set(it.Index, it.Letter); err != nil {
			return nil, rowError(p.path, rec.line, err)
		}
	}
	return s, nil
}

// source names the parser's input for logging
func (p *Parser) source() string {
	if p.path != "" {
		return p.path
	}
	return "stream"
}
