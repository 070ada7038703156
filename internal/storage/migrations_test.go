package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMigrations_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, ApplyMigrations(ctx, store.db))
	require.NoError(t, ApplyMigrations(ctx, store.db))

	var count int
	require.NoError(t, store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_version").Scan(&count))
	assert.Equal(t, len(AllMigrations), count)
}

func TestRollbackMigration(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, RollbackMigration(ctx, store.db))
	v, err := SchemaVersion(ctx, store.db)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v.String())

	require.NoError(t, RollbackMigration(ctx, store.db))
	v, err = SchemaVersion(ctx, store.db)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0", v.String())

	assert.Error(t, RollbackMigration(ctx, store.db))

	// Re-applying restores the full schema
	require.NoError(t, ApplyMigrations(ctx, store.db))
	v, err = SchemaVersion(ctx, store.db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, v.String())
}
