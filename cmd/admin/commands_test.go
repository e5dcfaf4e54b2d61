package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kind-link-bridge/internal/core/database"
	"kind-link-bridge/internal/domain"
	"kind-link-bridge/internal/repo"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := execute(&out, append([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, args...))
	return out.String(), err
}

func seed(t *testing.T, dsn string) int64 {
	t.Helper()
	db, err := database.NewGorm(database.Opts{Driver: "sqlite", DSN: dsn, LogLevel: "silent"})
	require.NoError(t, err)
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	u := &domain.User{Username: "ana", Email: "ana@x.com", PasswordHash: "secret-hash"}
	require.NoError(t, repo.NewUserRepo(db).Create(ctx, u))
	acts := repo.NewActivityRepo(db)
	_, err = acts.InsertDonation(ctx, u.ID, 500, time.Now())
	require.NoError(t, err)
	_, err = acts.InsertVolunteerHours(ctx, u.ID, 3, time.Now())
	require.NoError(t, err)
	_, err = acts.InsertCauseSupport(ctx, u.ID, "Environment")
	require.NoError(t, err)
	return u.ID
}

func TestAdminCommands(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "admin.db")
	t.Setenv("APP_DB_DRIVER", "sqlite")
	t.Setenv("APP_DB_DSN", dsn)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "migrated\n", out)

	id := seed(t, dsn)

	out, err = run(t, "users", "--limit", "10")
	require.NoError(t, err)
	assert.NotContains(t, out, "secret-hash")
	var page struct {
		Total int64 `json:"total"`
		Items []struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, id, page.Items[0].ID)

	out, err = run(t, "dashboard", strconv.FormatInt(id, 10))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"user":{"username":"ana","email":"ana@x.com"},"total_donations":500,"total_hours":3,"causes":["Environment"]}`,
		out)

	_, err = run(t, "dashboard", "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = run(t, "dashboard", "abc")
	assert.Error(t, err)
}
