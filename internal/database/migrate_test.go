package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}

func TestMigrateRequiresDatabaseURL(t *testing.T) {
	assert.EqualError(t, MigrateUp(""), "DATABASE_URL is required")
	assert.EqualError(t, MigrateDown(""), "DATABASE_URL is required")
}
