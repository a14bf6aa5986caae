package appconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"co2dash.ds4003.org/internal/emissions"
)

func writePresets(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultPresets(t *testing.T) {
	p := DefaultPresets()
	assert.Equal(t, []string{"Algeria", "United Kingdom"}, p.Defaults.Countries)
	assert.Equal(t, "oil", p.Defaults.Metric)
	assert.Equal(t, 2010, p.Defaults.YearFrom)
	assert.Equal(t, 2020, p.Defaults.YearTo)
	assert.Equal(t, 8, p.MarkStep)
	assert.NoError(t, p.Validate())
}

func TestLoadPresets(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		p, err := LoadPresets("")
		require.NoError(t, err)
		assert.Equal(t, DefaultPresets(), p)
	})

	t.Run("file overlays defaults", func(t *testing.T) {
		path := writePresets(t, `
title: Emissions
defaults:
  countries: [France]
  metric: coal
  year_from: 2000
  year_to: 2005
`)
		p, err := LoadPresets(path)
		require.NoError(t, err)
		assert.Equal(t, "Emissions", p.Title)
		assert.Equal(t, []string{"France"}, p.Defaults.Countries)
		assert.Equal(t, "coal", p.Defaults.Metric)
		assert.Equal(t, 2000, p.Defaults.YearFrom)
		assert.Equal(t, DefaultPresets().Description, p.Description)
		assert.Equal(t, 8, p.MarkStep)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPresets(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadPresets(writePresets(t, "defaults: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("inconsistent values", func(t *testing.T) {
		_, err := LoadPresets(writePresets(t, "mark_step: 0\ndefaults:\n  year_from: 2020\n  year_to: 2010\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mark_step")
		assert.Contains(t, err.Error(), "year_from")
	})
}

func TestValidateDefaults(t *testing.T) {
	table, err := emissions.Load("../../testdata/emissions.csv", emissions.LoadOptions{})
	require.NoError(t, err)

	assert.Empty(t, ValidateDefaults(DefaultPresets(), table))

	p := DefaultPresets()
	p.Defaults.Countries = []string{"Algeria", "Atlantis"}
	p.Defaults.Metric = "uranium"
	p.Defaults.YearFrom = 1990

	problems := ValidateDefaults(p, table)
	require.Len(t, problems, 3)
	assert.Contains(t, problems[0], "Atlantis")
	assert.Contains(t, problems[1], "uranium")
	assert.Contains(t, problems[2], "1990")
}
