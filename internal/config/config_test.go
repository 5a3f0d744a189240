package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 2014, cfg.PreferredYear)
	assert.Zero(t, cfg.FetchTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	err := cfg.applyEnv(envOf(map[string]string{
		"LIFEEXP_ADDR":          ":9000",
		"LIFEEXP_DATA":          "/tmp/life.csv",
		"LIFEEXP_YEAR":          "2010",
		"LIFEEXP_FETCH_TIMEOUT": "30s",
		"LIFEEXP_DEBUG":         "true",
		"LIFEEXP_WORLD":         "  ",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "/tmp/life.csv", cfg.DataSource)
	assert.Equal(t, 2010, cfg.PreferredYear)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.Debug)
	// Blank values do not override.
	assert.Equal(t, Defaults().WorldSource, cfg.WorldSource)
}

func TestApplyEnvInvalid(t *testing.T) {
	for _, key := range []string{"LIFEEXP_YEAR", "LIFEEXP_FETCH_TIMEOUT", "LIFEEXP_RATE", "LIFEEXP_DEBUG"} {
		cfg := Defaults()
		assert.Error(t, cfg.applyEnv(envOf(map[string]string{key: "not-a-value"})), key)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("LIFEEXP_YEAR", "2005")
	t.Setenv("LIFEEXP_ADDR", ":7000")

	cfg, err := Load([]string{"-year", "2012", "-data", "life.csv"})
	require.NoError(t, err)
	assert.Equal(t, 2012, cfg.PreferredYear)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "life.csv", cfg.DataSource)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.FetchTimeout = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.DataSource = ""
	assert.Error(t, cfg.Validate())
}
