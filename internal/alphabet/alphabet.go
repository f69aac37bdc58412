// Package alphabet is for the symbol sets that sparse sequences are checked against
package alphabet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/biogo/biogo/alphabet"
)

// Letter is a single residue symbol
type Letter = alphabet.Letter

// Alphabet classifies bytes as valid residues and names the symbol
// used for unknown positions. Every biogo alphabet satisfies it.
type Alphabet interface {
	IsValid(Letter) bool
	Gap() Letter
}

// DNA is the default alphabet for parsing
var DNA Alphabet = alphabet.DNA

// named maps the settings-file names to biogo alphabets
var named = map[string]Alphabet{
	"dna":           alphabet.DNA,
	"dna-gapped":    alphabet.DNAgapped,
	"dna-redundant": alphabet.DNAredundant,
	"rna":           alphabet.RNA,
	"protein":       alphabet.Protein,
}

// ByName returns the alphabet registered under name. Names are
// case insensitive, ex: "DNA" and "dna" are the same alphabet
func ByName(name string) (Alphabet, error) {
	a, ok := named[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown alphabet %q, expected one of: %s", name, strings.Join(Names(), ", "))
	}
	return a, nil
}

// Names returns the sorted alphabet names ByName accepts
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
