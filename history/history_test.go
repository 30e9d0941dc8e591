package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "none.json"))
	entries, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAppendRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "history.json"))

	first := NewEntry("月が綺麗でした", "つきあかり こころにしみる あきのよる", "pattern")
	second := NewEntry("静かな夜です", "しずかなる にわをてらして つきのかげ", "llm")
	require.NoError(t, s.Append(first))
	require.NoError(t, s.Append(second))

	entries, err := s.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, "月が綺麗でした", entries[0].Input)
	assert.Equal(t, "つきあかり こころにしみる あきのよる", entries[0].Poem)
	assert.Equal(t, "pattern", entries[0].Source)
	assert.Equal(t, "llm", entries[1].Source)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.json")
	s := NewStore(path)
	require.NoError(t, s.Save([]Entry{NewEntry("感想", "歌", "pattern")}))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
}

func TestNewEntryIDsUnique(t *testing.T) {
	a := NewEntry("a", "x", "")
	b := NewEntry("b", "y", "")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
