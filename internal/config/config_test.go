package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg, err := Load(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.NumComps)
	assert.Equal(t, 5, cfg.Retries)
	assert.Equal(t, 4, cfg.StopAt)
	assert.True(t, cfg.Fallback)
}

func TestLoadFlagOverridesDefault(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg, err := Load(fs, []string{"--num-comps=3", "--stop-at=8", "--fallback=false"})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.NumComps)
	assert.Equal(t, 8, cfg.StopAt)
	assert.False(t, cfg.Fallback)
}

func TestLoadEnvOverridesDefault(t *testing.T) {
	t.Setenv("HOLEWEAVE_NUM_COMPS", "7")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg, err := Load(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.NumComps)
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	t.Setenv("HOLEWEAVE_NUM_COMPS", "7")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg, err := Load(fs, []string{"--num-comps=9"})
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.NumComps)
}
