package db

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/oxhq/holeweave/models"
)

func TestConnect(t *testing.T) {
	tests := []struct {
		name          string
		dsn           string
		debug         bool
		expectedError bool
		errorContains string
	}{
		{
			name:          "successful connection with memory database",
			dsn:           ":memory:",
			expectedError: false,
		},
		{
			name:          "successful connection with debug enabled",
			dsn:           ":memory:",
			debug:         true,
			expectedError: false,
		},
		{
			name:          "successful connection with file database",
			dsn:           "/tmp/test_holeweave.db",
			expectedError: false,
		},
		{
			name:          "connection with nested directory creation",
			dsn:           "/tmp/nested/path/test_holeweave.db",
			expectedError: false,
		},
		{
			name:          "connection with URL DSN (Turso)",
			dsn:           "libsql://127.0.0.1:19999",
			expectedError: true,
			errorContains: "failed to connect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !isURL(tt.dsn) && tt.dsn != ":memory:" {
				defer func() {
					if !tt.expectedError {
						os.Remove(tt.dsn)
						os.Remove(filepath.Dir(tt.dsn))
					}
				}()
			}

			database, err := Connect(tt.dsn, tt.debug)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, database)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, database)

			sqlDB, err := database.DB()
			require.NoError(t, err)
			require.NoError(t, sqlDB.Ping())

			assert.True(t, database.Migrator().HasTable(&models.CachedQuery{}))
			testBasicOperations(t, database)

			sqlDB.Close()
		})
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		name     string
		dsn      string
		expected bool
	}{
		{name: "HTTP URL", dsn: "http://example.com", expected: true},
		{name: "HTTPS URL", dsn: "https://example.com", expected: true},
		{name: "libsql URL", dsn: "libsql://test.turso.io", expected: true},
		{name: "file path", dsn: "/path/to/database.db", expected: false},
		{name: "relative file path", dsn: "database.db", expected: false},
		{name: "memory database", dsn: ":memory:", expected: false},
		{name: "empty string", dsn: "", expected: false},
		{name: "short string", dsn: "http", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isURL(tt.dsn))
		})
	}
}

func TestMigrate(t *testing.T) {
	database, err := Connect(":memory:", false)
	require.NoError(t, err)
	defer func() {
		sqlDB, _ := database.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}()

	database.Migrator().DropTable(&models.CachedQuery{})
	require.NoError(t, Migrate(database))
	assert.True(t, database.Migrator().HasTable(&models.CachedQuery{}))
}

// testBasicOperations performs basic CRUD operations to verify database
// functionality.
func testBasicOperations(t *testing.T, database *gorm.DB) {
	t.Helper()

	row := &models.CachedQuery{
		ID:        "test-query-123",
		QueryText: "func f(x) {}",
		NumComps:  3,
		Retries:   1,
		StopAt:    2,
		Results:   datatypes.JSON(`["func f(x int) {}"]`),
	}
	require.NoError(t, database.Create(row).Error)

	var loaded models.CachedQuery
	require.NoError(t, database.Where("id = ?", row.ID).First(&loaded).Error)
	assert.Equal(t, row.QueryText, loaded.QueryText)
}

func TestConnectDirectoryCreation(t *testing.T) {
	tempDir := "/tmp/holeweave_test_" + fmt.Sprintf("%d", os.Getpid())
	dbPath := filepath.Join(tempDir, "nested", "deep", "test.db")

	defer os.RemoveAll(tempDir)

	database, err := Connect(dbPath, false)
	require.NoError(t, err)
	require.NotNil(t, database)

	defer func() {
		sqlDB, _ := database.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}()

	assert.DirExists(t, filepath.Dir(dbPath))

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}
