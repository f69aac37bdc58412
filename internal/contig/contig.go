// Package contig is for assemblies of sparse sequences placed against a consensus
package contig

import (
	"fmt"

	"github.com/jjtimmons/sparseq/internal/sparse"
)

// AssembledSequence is a sequence placed at an offset and orientation
// relative to the consensus of its contig
type AssembledSequence struct {
	// Sequence is the read or fragment itself
	Sequence *sparse.Sequence

	// Position is the offset into the consensus coordinate space
	Position int

	// IsComplemented is true if the sequence aligns to the reverse strand
	IsComplemented bool
}

// Contig is a consensus sequence and the sequences assembled against it
type Contig struct {
	// Consensus is the reference sequence of the assembly
	Consensus *sparse.Sequence

	// Sequences are in the order they were added (file order when parsed)
	Sequences []AssembledSequence
}

// New creates a contig without any assembled sequences
func New(consensus *sparse.Sequence) (*Contig, error) {
	if consensus == nil {
		return nil, fmt.Errorf("failed to create contig, nil consensus: %w", sparse.ErrConfiguration)
	}
	return &Contig{Consensus: consensus}, nil
}

// Length is the length of the consensus, 0 for a contig without one
func (c *Contig) Length() int {
	if c.Consensus == nil {
		return 0
	}
	return c.Consensus.Len()
}

// Add appends a sequence to the end of the contig
func (c *Contig) Add(s *sparse.Sequence, position int, complemented bool) error {
	if s == nil {
		return fmt.Errorf("failed to add nil sequence to contig: %w", sparse.ErrConfiguration)
	}
	c.Sequences = append(c.Sequences, AssembledSequence{
		Sequence:       s,
		Position:       position,
		IsComplemented: complemented,
	})
	return nil
}

// IDs returns the IDs of the assembled sequences in contig order
func (c *Contig) IDs() []string {
	ids := make([]string, len(c.Sequences))
	for i, a := range c.Sequences {
		ids[i] = a.Sequence.ID()
	}
	return ids
}
