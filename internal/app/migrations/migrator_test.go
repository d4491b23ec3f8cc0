package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("migrations/001_init.sql"))
	assert.Equal(t, "010", versionOf("/abs/010_add_index_on_messages.sql"))
	assert.Equal(t, "plain.sql", versionOf("plain.sql"))
}

func TestSQLFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755))

	files, err := sqlFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "001_a.sql"),
		filepath.Join(dir, "002_b.sql"),
	}, files)
}

func TestSQLFilesMissingDirectory(t *testing.T) {
	_, err := sqlFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSchemaFileIsPresent(t *testing.T) {
	files, err := sqlFiles(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001", versionOf(files[0]))
}
