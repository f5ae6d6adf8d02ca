package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
	}

	return store, cleanup
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "orderbot.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	err = store.db.Ping()
	assert.NoError(t, err)
}

func TestNewStore_DefaultDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewStore("")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	assert.Equal(t, filepath.Join(home, ".orderbot", "data", "orderbot.db"), store.Path())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	tempDir := t.TempDir()

	nestedDir := filepath.Join(tempDir, "nested", "path", "to", "db")
	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	assert.DirExists(t, nestedDir)
	info, err := os.Stat(nestedDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewStore_Migrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	tables := []string{
		"catalog_objects",
		"catalog_archive",
		"scheduled_tasks",
		"task_results",
	}

	for _, table := range tables {
		var tableExists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&tableExists)
		require.NoError(t, err)
		assert.Equal(t, 1, tableExists, "table %s should exist", table)
	}
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	tempDir := t.TempDir()

	first, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(tempDir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_Close(t *testing.T) {
	store, _ := setupTestStore(t)

	err := store.Close()
	assert.NoError(t, err)

	err = store.db.Ping()
	assert.Error(t, err)
}

func TestStore_InterfaceGetters(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NotNil(t, store.CatalogArchive())
	assert.NotNil(t, store.SchedulerStore())
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "hello", nullString("hello"))
}

func TestBoolToInt(t *testing.T) {
	assert.Equal(t, 1, boolToInt(true))
	assert.Equal(t, 0, boolToInt(false))
}

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"003_menu_index.up.sql":   {Data: []byte("SELECT 1;")},
		"001_initial.up.sql":      {Data: []byte("SELECT 1;")},
		"001_initial.down.sql":    {Data: []byte("SELECT 1;")},
		"002_task_results.up.sql": {Data: []byte("SELECT 1;")},
		"readme.up.sql":           {Data: []byte("SELECT 1;")},
		"embed.go":                {Data: []byte("package migrations")},
	}

	pending, err := pendingMigrations(fsys, 1)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, 2, pending[0].version)
	assert.Equal(t, "002_task_results.up.sql", pending[0].name)
	assert.Equal(t, 3, pending[1].version)
}

func TestStore_SchemaVersion(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestStore_FailedMigrationKeepsVersion(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.migrate(fstest.MapFS{
		"002_broken.up.sql": {Data: []byte("CREATE TABLE half (id INTEGER); NOT VALID SQL;")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_broken.up.sql")

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}
