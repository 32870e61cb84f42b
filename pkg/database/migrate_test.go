package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrationsOrdersByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"V10__add_index.sql":    {Data: []byte("CREATE INDEX x ON t (a);")},
		"V2__second.sql":        {Data: []byte("ALTER TABLE t ADD COLUMN b INT;\n")},
		"V1__init.sql":          {Data: []byte("CREATE TABLE t (a INT);")},
		"README.md":             {Data: []byte("ignored")},
		"V3_missing_dunder.sql": {Data: []byte("ignored too")},
	}

	migs, err := LoadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 3)

	assert.Equal(t, []int64{1, 2, 10}, []int64{migs[0].Version, migs[1].Version, migs[2].Version})
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, "ALTER TABLE t ADD COLUMN b INT;", migs[1].SQL)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoadMigrationsRejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"V1__init.sql":  {Data: []byte("SELECT 1;")},
		"V01__also.sql": {Data: []byte("SELECT 2;")},
	}

	_, err := LoadMigrations(fsys)
	assert.ErrorContains(t, err, "duplicate migration version: 1")
}

func TestLoadMigrationsRejectsEmptyFile(t *testing.T) {
	fsys := fstest.MapFS{
		"V1__init.sql": {Data: []byte("   \n")},
	}

	_, err := LoadMigrations(fsys)
	assert.ErrorContains(t, err, "empty migration file")
}

func TestMigratorRunNilDB(t *testing.T) {
	_, err := Migrator{FS: fstest.MapFS{}}.Run(context.Background(), nil)
	assert.Error(t, err)
}
