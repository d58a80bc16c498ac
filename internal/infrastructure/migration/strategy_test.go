package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/shared/logger"
)

func TestVersions_EmbeddedScriptsAreOrdered(t *testing.T) {
	versions, err := Versions()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, versions)
}

func TestAutoMigrateStrategy(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	s := ForDialect("sqlite", logger.NewNopLogger())
	assert.Equal(t, "gorm_auto_migrate", s.GetName())
	require.NoError(t, s.Migrate(db))

	for _, table := range []string{"permissions", "roles", "role_permissions", "users", "user_roles", "files", "sample_products", "pools", "donations"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestForDialect_DefaultsToGoose(t *testing.T) {
	assert.Equal(t, "goose", ForDialect("mysql", logger.NewNopLogger()).GetName())
}
