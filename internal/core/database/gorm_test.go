package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSQLiteDSN(t *testing.T) {
	assert.Equal(t,
		"./users.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		normalizeSQLiteDSN(""))
	assert.Equal(t,
		"file:app.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		normalizeSQLiteDSN("file:app.db?mode=rwc"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(0)", normalizeSQLiteDSN("x.db?_pragma=foreign_keys(0)"))
}

func TestNormalizeMySQLDSN(t *testing.T) {
	assert.Equal(t, "u:p@tcp(db:3306)/kind", normalizeMySQLDSN("u:p@tcp(db:3306)/kind", "", ""))
	assert.Equal(t,
		"root:secret@tcp(db:3306)/kind?charset=utf8mb4&parseTime=true",
		normalizeMySQLDSN("jdbc:mysql://db:3306/kind", "root", "secret"))
	assert.Equal(t,
		"app:pw@tcp(db:3306)/kind?charset=latin1&parseTime=true",
		normalizeMySQLDSN("mysql://app:pw@db:3306/kind?charset=latin1", "", ""))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewGorm_SQLiteMigrate(t *testing.T) {
	db, err := NewGorm(Opts{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "m.db"), LogLevel: "silent"})
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	require.NoError(t, Migrate(db))
	for _, table := range []string{"users", "donations", "volunteer_hours", "user_causes"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}
