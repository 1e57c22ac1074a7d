package database

import (
	"testing"

	"buffet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := Open(DriverSQLite, ":memory:", false, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []interface{}{&models.Category{}, &models.Food{}, &models.Meal{}} {
		assert.True(t, db.HasTable(table))
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever", false, zap.NewNop())
	assert.EqualError(t, err, `unsupported database driver "mysql"`)
}
