package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateGet(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create("notes.txt", "some text", "abc")

	_, err := uuid.Parse(s.ID)
	require.NoError(t, err, "session id should be a uuid")

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, "notes.txt", got.Filename)
	assert.Equal(t, "some text", got.Text)
}

func TestStore_GetMissing(t *testing.T) {
	st := NewStore(time.Hour)
	_, err := st.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create("a.txt", "x", "h")
	assert.True(t, st.Delete(s.ID))
	assert.False(t, st.Delete(s.ID))
	_, err := st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_TTLCleanup(t *testing.T) {
	st := NewStore(50 * time.Millisecond)
	old := st.Create("old.txt", "x", "h1")

	time.Sleep(100 * time.Millisecond)

	fresh := st.Create("new.txt", "y", "h2")
	st.Cleanup()

	assert.Equal(t, 1, st.Len())
	_, err := st.Get(old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestStore_GetExpired(t *testing.T) {
	st := NewStore(20 * time.Millisecond)
	s := st.Create("a.txt", "x", "h")
	time.Sleep(50 * time.Millisecond)
	_, err := st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, st.Len())
}

func TestSession_RecordSearch(t *testing.T) {
	s := &Session{}
	for i := 1; i <= 7; i++ {
		s.RecordSearch(fmt.Sprintf("q%d", i))
	}
	assert.Equal(t, []string{"q7", "q6", "q5", "q4", "q3"}, s.RecentSearches())
}

func TestSession_RecordSearchDuplicateNotMoved(t *testing.T) {
	s := &Session{}
	s.RecordSearch("cell")
	s.RecordSearch("energy")
	s.RecordSearch("cell")
	assert.Equal(t, []string{"energy", "cell"}, s.RecentSearches())
}

func TestSession_SnapshotNonNil(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create("a.txt", "x", "h")
	snap := s.Snapshot()
	assert.NotNil(t, snap.RecentSearches)
	assert.Empty(t, snap.RecentSearches)
	assert.Equal(t, s.ID, snap.ID)
}
