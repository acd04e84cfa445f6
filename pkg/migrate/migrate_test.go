package migrate

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/partcustody/pkg/config"
	"github.com/angelmondragon/partcustody/pkg/db"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, Validate())
}

func TestKVBlobsMigrationContainsSchema(t *testing.T) {
	data, err := embedded.ReadFile("migrations/20250813155345_create_kv_blobs_table.sql")
	require.NoError(t, err)

	content := string(data)
	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS kv_blobs",
		"blob_key   VARCHAR(128) PRIMARY KEY",
		"DROP TABLE IF EXISTS kv_blobs",
	} {
		assert.Contains(t, content, sub)
	}
}

func TestValidateFSRejectsBadFiles(t *testing.T) {
	good := "-- +goose Up\nSELECT 1;\n-- +goose Down\nSELECT 1;\n"

	cases := map[string]fstest.MapFS{
		"bad name": {
			"m/create.sql": {Data: []byte(good)},
		},
		"duplicate version": {
			"m/20250101000000_a.sql": {Data: []byte(good)},
			"m/20250101000000_b.sql": {Data: []byte(good)},
		},
		"missing down": {
			"m/20250101000000_a.sql": {Data: []byte("-- +goose Up\nSELECT 1;\n")},
		},
		"empty": {
			"m/README.md": {Data: []byte("docs")},
		},
	}
	for name, fsys := range cases {
		assert.Error(t, ValidateFS(fsys, "m"), name)
	}

	ok := fstest.MapFS{"m/20250101000000_a.sql": {Data: []byte(good)}}
	assert.NoError(t, ValidateFS(ok, "m"))
}

func TestRunAppliesMigrationsOnSQLite(t *testing.T) {
	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{Driver: "sqlite", DSN: "file:migrate_run?mode=memory&cache=shared"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQL()
	require.NoError(t, err)

	require.NoError(t, Run(ctx, sqlDB, client.Dialect(), "up"))
	assert.True(t, client.DB().Migrator().HasTable("kv_blobs"))

	require.NoError(t, MigrateToVersion(ctx, sqlDB, client.Dialect(), "0"))
	assert.False(t, client.DB().Migrator().HasTable("kv_blobs"))

	require.NoError(t, MigrateToVersion(ctx, sqlDB, client.Dialect(), "20250813155345"))
	assert.True(t, client.DB().Migrator().HasTable("kv_blobs"))
}

func TestRunRequiresDBAndDialect(t *testing.T) {
	assert.Error(t, Run(context.Background(), nil, db.DialectSQLite, "up"))
	assert.Error(t, MigrateToVersion(context.Background(), nil, "", "1"))
}
