package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&CachedQuery{}))
	return db
}

func TestCachedQueryTableName(t *testing.T) {
	assert.Equal(t, "cached_queries", CachedQuery{}.TableName())
}

func TestCachedQueryRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	row := CachedQuery{
		ID:        "abc123",
		QueryText: "func f(x) {}",
		NumComps:  5,
		Retries:   2,
		StopAt:    4,
		Results:   datatypes.JSON(`["func f(x int) {}"]`),
	}
	require.NoError(t, db.Create(&row).Error)

	var loaded CachedQuery
	require.NoError(t, db.First(&loaded, "id = ?", "abc123").Error)
	assert.Equal(t, row.QueryText, loaded.QueryText)
	assert.Equal(t, row.NumComps, loaded.NumComps)
	assert.JSONEq(t, `["func f(x int) {}"]`, string(loaded.Results))
}

func TestCachedQueryOverwrite(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&CachedQuery{ID: "k", Results: datatypes.JSON(`["a"]`)}).Error)
	require.NoError(t, db.Save(&CachedQuery{ID: "k", Results: datatypes.JSON(`["b"]`)}).Error)

	var loaded CachedQuery
	require.NoError(t, db.First(&loaded, "id = ?", "k").Error)
	assert.JSONEq(t, `["b"]`, string(loaded.Results))
}
