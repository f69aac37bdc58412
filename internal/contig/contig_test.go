package contig

import (
	"errors"
	"testing"

	"github.com/jjtimmons/sparseq/internal/alphabet"
	"github.com/jjtimmons/sparseq/internal/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeq(t *testing.T, id string, count int) *sparse.Sequence {
	s, err := sparse.New(id, alphabet.DNA, count)
	require.NoError(t, err)
	return s
}

func TestContig_Add(t *testing.T) {
	c, err := New(newSeq(t, "Chr22+Chr22", 40))
	require.NoError(t, err)
	assert.Equal(t, 40, c.Length())
	assert.Empty(t, c.IDs())

	ids := []string{"m;Chr22;29", "m;Chr22;16", "m;Chr22;17"}
	for _, id := range ids {
		require.NoError(t, c.Add(newSeq(t, id, 5), Offset(id), false))
	}
	require.NoError(t, c.Add(newSeq(t, "other", 5), 3, true))

	// insertion order, not sorted by ID or position
	assert.Equal(t, append(ids, "other"), c.IDs())
	assert.Equal(t, 29, c.Sequences[0].Position)
	assert.Equal(t, 3, c.Sequences[3].Position)
	assert.True(t, c.Sequences[3].IsComplemented)

	err = c.Add(nil, 0, false)
	assert.True(t, errors.Is(err, sparse.ErrConfiguration))
}

func TestContig_Zero(t *testing.T) {
	var c Contig
	assert.Equal(t, 0, c.Length())
	assert.Empty(t, c.IDs())
	assert.True(t, errors.Is(c.Add(nil, 0, false), sparse.ErrConfiguration))
}

func TestNew_NilConsensus(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.Is(err, sparse.ErrConfiguration))
}

func TestParseReadID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    ReadID
		wantErr bool
	}{
		{"read", "m;Chr22;16", ReadID{"m", "Chr22", 16}, false},
		{"empty marker", ";chrX;0", ReadID{"", "chrX", 0}, false},
		{"consensus", "Chr22+Chr22+Chr22+Chr22", ReadID{}, true},
		{"too many fields", "m;Chr22;16;4", ReadID{}, true},
		{"bad offset", "m;Chr22;sixteen", ReadID{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReadID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 0, Offset(tt.id))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.id, got.String())
			assert.Equal(t, tt.want.Offset, Offset(tt.id))
		})
	}
}

func TestSources(t *testing.T) {
	assert.Equal(t, []string{"Chr22", "Chr22", "Chr22", "Chr22"}, Sources("Chr22+Chr22+Chr22+Chr22"))
	assert.True(t, IsMultiSource("Chr22+Chr21"))
	assert.False(t, IsMultiSource("m;Chr22;16"))
	assert.Equal(t, []string{"Chr22"}, Sources("Chr22"))
}
