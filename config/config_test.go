package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gophersat", cfg.Scheduler.Solver)
	assert.Equal(t, 30*time.Second, cfg.Scheduler.TimeBudget())
	assert.False(t, cfg.Scheduler.EnforceSubjectMatch)
	assert.Equal(t, "2025-2026", cfg.Scheduler.AcademicYear)
	assert.Equal(t, 1, cfg.Scheduler.Semester)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	payload := `
scheduler:
  solver: dpll
  time_budget_seconds: 5
  enforce_subject_match: true
store:
  driver: postgres
  postgres:
    host: db.internal
    port: 5433
    name: timetable
    user: scheduler
    password: secret
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(file, []byte(payload), 0666))

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, "dpll", cfg.Scheduler.Solver)
	assert.Equal(t, 5*time.Second, cfg.Scheduler.TimeBudget())
	assert.True(t, cfg.Scheduler.EnforceSubjectMatch)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t,
		"host=db.internal port=5433 user=scheduler password=secret dbname=timetable sslmode=disable",
		cfg.Store.Postgres.DSN())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
