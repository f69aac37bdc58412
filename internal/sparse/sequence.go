// Package sparse is for sequences where only a few positions are known
package sparse

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jjtimmons/sparseq/internal/alphabet"
)

var (
	// ErrRange is for an index outside [0, count)
	ErrRange = errors.New("index out of range")

	// ErrAlphabet is for a symbol that isn't a member of the sequence's alphabet
	ErrAlphabet = errors.New("symbol not in alphabet")

	// ErrConfiguration is for invalid construction arguments
	ErrConfiguration = errors.New("invalid configuration")
)

// IndexedItem is a known value at a single position of a Sequence
type IndexedItem struct {
	// Index is the zero-based position in the sequence
	Index int

	// Letter is the symbol at Index
	Letter alphabet.Letter
}

// Sequence is an identified sequence of fixed length where positions
// without a known item read as the alphabet's gap symbol.
type Sequence struct {
	id string

	alpha alphabet.Alphabet

	// count is the logical length, positions 0..count-1 are addressable
	count int

	// items are the known positions, strictly ascending by Index
	items []IndexedItem
}

// New allocates an empty sparse sequence with count addressable positions
func New(id string, alpha alphabet.Alphabet, count int) (*Sequence, error) {
	if alpha == nil {
		return nil, fmt.Errorf("failed to create sequence %q, nil alphabet: %w", id, ErrConfiguration)
	}
	if count < 0 {
		return nil, fmt.Errorf("failed to create sequence %q with negative length %d: %w", id, count, ErrConfiguration)
	}
	return &Sequence{id: id, alpha: alpha, count: count}, nil
}

// ID returns the sequence's identifier
func (s *Sequence) ID() string { return s.id }

// Alphabet returns the alphabet that every known item belongs to
func (s *Sequence) Alphabet() alphabet.Alphabet { return s.alpha }

// Len returns the logical length of the sequence (known and unknown positions)
func (s *Sequence) Len() int { return s.count }

// KnownCount returns the number of known positions
func (s *Sequence) KnownCount() int { return len(s.items) }

// Set stores l at index, replacing any earlier value at that index
func (s *Sequence) Set(index int, l alphabet.Letter) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if !s.alpha.IsValid(l) {
		return fmt.Errorf("failed to set %q at %d in %s: %w", l, index, s.id, ErrAlphabet)
	}

	// appending in index order is the common case when reading a file
	n := len(s.items)
	if n == 0 || s.items[n-1].Index < index {
		s.items = append(s.items, IndexedItem{Index: index, Letter: l})
		return nil
	}

	i := s.search(index)
	if s.items[i].Index == index {
		s.items[i].Letter = l
		return nil
	}
	s.items = append(s.items, IndexedItem{})
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = IndexedItem{Index: index, Letter: l}
	return nil
}

// SetRange sets consecutive positions starting at start. Nothing is
// stored if any of the letters is out of range or not in the alphabet
func (s *Sequence) SetRange(start int, letters []alphabet.Letter) error {
	if len(letters) == 0 {
		return nil
	}
	if err := s.checkIndex(start); err != nil {
		return err
	}
	if err := s.checkIndex(start + len(letters) - 1); err != nil {
		return err
	}
	for i, l := range letters {
		if !s.alpha.IsValid(l) {
			return fmt.Errorf("failed to set %q at %d in %s: %w", l, start+i, s.id, ErrAlphabet)
		}
	}

	for i, l := range letters {
		if err := s.Set(start+i, l); err != nil {
			return err
		}
	}
	return nil
}

// At returns the letter at index, or the alphabet's gap if index isn't known
func (s *Sequence) At(index int) (alphabet.Letter, error) {
	if err := s.checkIndex(index); err != nil {
		return 0, err
	}
	if i := s.search(index); i < len(s.items) && s.items[i].Index == index {
		return s.items[i].Letter, nil
	}
	return s.alpha.Gap(), nil
}

// KnownItems returns a copy of the known items in ascending index order
func (s *Sequence) KnownItems() []IndexedItem {
	items := make([]IndexedItem, len(s.items))
	copy(items, s.items)
	return items
}

// String returns the dense form of the sequence, gaps included
func (s *Sequence) String() string {
	var b strings.Builder
	b.Grow(s.count)
	gap := byte(s.alpha.Gap())
	next := 0
	for _, it := range s.items {
		for ; next < it.Index; next++ {
			b.WriteByte(gap)
		}
		b.WriteByte(byte(it.Letter))
		next++
	}
	for ; next < s.count; next++ {
		b.WriteByte(gap)
	}
	return b.String()
}

// search returns the position in items of the first item with Index >= index
func (s *Sequence) search(index int) int {
	return sort.Search(len(s.items), func(i int) bool {
		return s.items[i].Index >= index
	})
}

func (s *Sequence) checkIndex(index int) error {
	if index < 0 || index >= s.count {
		return fmt.Errorf("index %d outside [0, %d) of %s: %w", index, s.count, s.id, ErrRange)
	}
	return nil
}
