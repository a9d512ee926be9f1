package convert

import (
	"testing"
	"time"

	"github.com/haierkeys/fast-note-link-service/pkg/timex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainNote struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type rowNote struct {
	ID        string
	Title     string
	CreatedAt timex.Time
	UpdatedAt *timex.Time
	Extra     int
}

func TestCopy_TimeConversions(t *testing.T) {
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	var row rowNote
	require.NoError(t, Copy(&row, &plainNote{ID: "n1", Title: "A", CreatedAt: created, UpdatedAt: &updated}))
	assert.Equal(t, "n1", row.ID)
	assert.Equal(t, "A", row.Title)
	assert.True(t, created.Equal(row.CreatedAt.Time()))
	require.NotNil(t, row.UpdatedAt)
	assert.True(t, updated.Equal(row.UpdatedAt.Time()))

	var back plainNote
	require.NoError(t, Copy(&back, &row))
	assert.True(t, created.Equal(back.CreatedAt))
	require.NotNil(t, back.UpdatedAt)
	assert.True(t, updated.Equal(*back.UpdatedAt))
}

func TestCopy_NilAndZeroUpdatedAt(t *testing.T) {
	var row rowNote
	require.NoError(t, Copy(&row, &plainNote{ID: "n1"}))
	assert.Nil(t, row.UpdatedAt)

	zero := timex.Time{}
	var back plainNote
	require.NoError(t, Copy(&back, &rowNote{ID: "n1", UpdatedAt: &zero}))
	assert.Nil(t, back.UpdatedAt)
}

func TestCopy_Slices(t *testing.T) {
	src := []*plainNote{{ID: "a"}, {ID: "b"}}
	var dst []*rowNote
	require.NoError(t, Copy(&dst, &src))
	require.Len(t, dst, 2)
	assert.Equal(t, "b", dst[1].ID)
}

func TestCopy_Error(t *testing.T) {
	assert.Error(t, Copy(nil, &plainNote{}))
	assert.Panics(t, func() { MustCopy(nil, &plainNote{}) })
}
