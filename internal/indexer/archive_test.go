package indexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docsearch/internal/cache"
	"github.com/dshills/docsearch/pkg/types"
)

func TestNewArchive(t *testing.T) {
	docs := []types.Doc{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}
	a, err := NewArchive(docs, "two docs")
	require.NoError(t, err)

	assert.Equal(t, cache.ContentID("a\x00b"), a.ContentID)
	assert.Equal(t, "two docs", a.Description)
	assert.Equal(t, docs, a.Docs)
}

func TestNewArchive_ContentIDChangesWithText(t *testing.T) {
	a, err := NewArchive([]types.Doc{{ID: 1, Text: "a"}}, "")
	require.NoError(t, err)
	b, err := NewArchive([]types.Doc{{ID: 1, Text: "a "}}, "")
	require.NoError(t, err)

	assert.NotEqual(t, a.ContentID, b.ContentID)
}

func TestNewArchive_DuplicateIDs(t *testing.T) {
	_, err := NewArchive([]types.Doc{{ID: 3, Text: "a"}, {ID: 3, Text: "b"}}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDuplicateDocID)
	assert.Contains(t, err.Error(), "3")
}

func TestReadArchive(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		wantID  string
	}{
		{
			name:   "with content id",
			input:  `{"contentID":"abc","docs":[{"id":1,"text":"x"}]}`,
			wantID: "abc",
		},
		{
			name:   "computes missing content id",
			input:  `{"docs":[{"id":1,"text":"x"},{"id":2,"text":"y"}]}`,
			wantID: cache.ContentID("x\x00y"),
		},
		{
			name:    "malformed json",
			input:   `{"docs":`,
			wantErr: true,
		},
		{
			name:    "duplicate ids",
			input:   `{"docs":[{"id":1,"text":"x"},{"id":1,"text":"y"}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ReadArchive(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArchive)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, a.ContentID)
		})
	}
}
