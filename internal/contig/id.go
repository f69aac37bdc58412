package contig

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// readIDSeparator splits the fields of an assembled sequence's ID
	readIDSeparator = ";"

	// sourceSeparator joins the source names of a consensus ID
	sourceSeparator = "+"
)

// ReadID is the decomposition of an assembled sequence's ID.
// ex: "m;Chr22;16" has Marker "m", Chromosome "Chr22" and Offset 16
type ReadID struct {
	Marker     string
	Chromosome string
	Offset     int
}

// ParseReadID splits an ID of the form <marker>;<chromosome>;<offset>
func ParseReadID(id string) (ReadID, error) {
	fields := strings.Split(id, readIDSeparator)
	if len(fields) != 3 {
		return ReadID{}, fmt.Errorf("failed to parse read ID %q: expected 3 fields, found %d", id, len(fields))
	}

	offset, err := strconv.Atoi(fields[2])
	if err != nil {
		return ReadID{}, fmt.Errorf("failed to parse offset of read ID %q: %v", id, err)
	}

	return ReadID{
		Marker:     fields[0],
		Chromosome: fields[1],
		Offset:     offset,
	}, nil
}

// String joins the fields back into the ID they came from
func (r ReadID) String() string {
	return strings.Join([]string{r.Marker, r.Chromosome, strconv.Itoa(r.Offset)}, readIDSeparator)
}

// Offset returns the start offset embedded in an assembled sequence's ID,
// or 0 if the ID doesn't follow the <marker>;<chromosome>;<offset> pattern
func Offset(id string) int {
	r, err := ParseReadID(id)
	if err != nil {
		return 0
	}
	return r.Offset
}

// Sources returns the source names of a multi-source consensus ID.
// ex: "Chr22+Chr22" has the sources ["Chr22", "Chr22"]
func Sources(id string) []string {
	return strings.Split(id, sourceSeparator)
}

// IsMultiSource is true for IDs joining more than one source name
func IsMultiSource(id string) bool {
	return strings.Contains(id, sourceSeparator)
}
