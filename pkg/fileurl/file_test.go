package fileurl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePathAndIsExist(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "a", "b", "db.sqlite3")

	assert.False(t, IsExist(dst))
	require.NoError(t, CreatePath(dst, os.ModePerm))

	assert.True(t, IsExist(filepath.Dir(dst)))
	assert.True(t, IsDir(filepath.Dir(dst)))
	assert.False(t, IsExist(dst))
}
