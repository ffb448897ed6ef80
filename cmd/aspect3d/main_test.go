package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsolutizeSurvivesChdir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	fs := flag.NewFlagSet("aspect3d", flag.ContinueOnError)
	config := fs.String("config", "aspect3d.toml", "")
	scene := fs.String("scene", "", "")
	other := fs.String("other", "", "")
	require.NoError(t, fs.Parse([]string{"-scene", "levels/one.yaml", "-other", "rel.txt"}))

	require.NoError(t, absolutize(fs, "config", "scene"))
	assert.Equal(t, filepath.Join(wd, "levels", "one.yaml"), *scene)
	assert.Equal(t, "aspect3d.toml", *config, "defaults stay relative to the executable")
	assert.Equal(t, "rel.txt", *other)

	t.Chdir(t.TempDir())
	assert.True(t, filepath.IsAbs(*scene))
	assert.Equal(t, filepath.Join(wd, "levels", "one.yaml"), *scene)
}

func TestAbsolutizeExplicitConfig(t *testing.T) {
	fs := flag.NewFlagSet("aspect3d", flag.ContinueOnError)
	config := fs.String("config", "aspect3d.toml", "")
	scene := fs.String("scene", "", "")
	require.NoError(t, fs.Parse([]string{"-config", "my.toml"}))

	require.NoError(t, absolutize(fs, "config", "scene"))
	assert.True(t, filepath.IsAbs(*config))
	assert.Equal(t, "my.toml", filepath.Base(*config))
	assert.Empty(t, *scene)
}
