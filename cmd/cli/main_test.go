package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akeren/teamup-site/config"
	"github.com/akeren/teamup-site/internal/auth"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand(log.NewLoggerWithJSONOutput())
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "s3cret\n", "hash-password")
	require.NoError(t, err)

	verifier, err := auth.NewPasswordVerifier(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.NoError(t, verifier.Verify("s3cret"))
	assert.ErrorIs(t, verifier.Verify("other"), auth.ErrIncorrectPassword)
}

func TestHashPassword_EmptyInput(t *testing.T) {
	_, err := run(t, "", "hash-password")
	assert.Error(t, err)
}

func TestMigrateThenList(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", config.DriverSQLite)
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("MIGRATIONS_DIR", "")

	_, err := run(t, "", "migrate")
	require.NoError(t, err)

	logger := log.NewLoggerWithJSONOutput()
	db, err := config.NewDatabase(logger, config.NewDBConfig())
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.WaitlistEntry{Email: "first@example.com"}).Error)
	require.NoError(t, db.Create(&models.WaitlistEntry{Email: "second@example.com", Sent: true}).Error)
	config.CloseDatabase(db, logger)

	out, err := run(t, "", "list", "waitlist")
	require.NoError(t, err)
	assert.Contains(t, out, "first@example.com")
	assert.Contains(t, out, "second@example.com")

	out, err = run(t, "", "list", "waitlist", "--filter", "sent")
	require.NoError(t, err)
	assert.NotContains(t, out, "first@example.com")
	assert.Contains(t, out, "second@example.com")

	out, err = run(t, "", "list", "ambassador")
	require.NoError(t, err)
	assert.Contains(t, out, "SCHOOL")
}

func TestList_RejectsUnknownForm(t *testing.T) {
	_, err := run(t, "", "list", "newsletter")
	assert.Error(t, err)
}
