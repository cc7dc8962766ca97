package db

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/payout-admin/migrations"
)

func TestMigrationNames_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"002_users.sql":  {Data: []byte("SELECT 1")},
		"001_init.sql":   {Data: []byte("SELECT 1")},
		"README.md":      {Data: []byte("docs")},
		"nested/003.sql": {Data: []byte("SELECT 1")},
	}

	names, err := migrationNames(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_users.sql"}, names)
}

func TestMigrationNames_EmbeddedSchema(t *testing.T) {
	names, err := migrationNames(migrations.FS)
	require.NoError(t, err)
	assert.Contains(t, names, "001_init.sql")
}
