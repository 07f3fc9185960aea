package config

import (
	"errors"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

// isolate runs the test from an empty directory with no overriding env vars.
func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	for _, key := range []string{"ENV", "PORT", "CSV_DELIMITER", "GRAPH_BUILDER", "COLORER", "IGNORE_COURSES", "INCLUDE_COURSES"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, ',', cfg.Input.DelimiterRune())
	assert.Equal(t, "daybucket", cfg.Optimizer.Builder)
	assert.Equal(t, "greedy", cfg.Optimizer.Colorer)
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	isolate(t)

	flags := Flags("test")
	require.NoError(t, flags.Parse([]string{"-d", ";", "--colorer", "DSatur", "--ignore", "CS101, ,MA201"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, ';', cfg.Input.DelimiterRune())
	assert.Equal(t, "dsatur", cfg.Optimizer.Colorer)
	assert.Equal(t, []string{"CS101", "MA201"}, cfg.Optimizer.Ignore)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	isolate(t)

	flags := Flags("test")
	require.NoError(t, flags.Parse([]string{"--builder", "random"}))

	cfg, err := Load(flags)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidConfig))

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_CONFIG", appErr.Code)

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
