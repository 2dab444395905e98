package openft

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	fname := writeFile(t, dir, "openft.yaml", []byte(`
plugins: ~/freetrain/plugins
mapWidth: 50
workers: 0
`))

	cfg, err := LoadConfig(fname)
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "freetrain/plugins"), cfg.PluginRoot)
	assert.Equal(t, uint(50), cfg.MapWidth)
	assert.Equal(t, uint(200), cfg.MapHeight)
	assert.Equal(t, "res/GroundSeasonal.png", cfg.GroundTexture)
	assert.Equal(t, 4, cfg.GroundVariants)
	assert.Equal(t, 1, cfg.Workers)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.NotNil(t, err)

	bad := writeFile(t, dir, "bad.yaml", []byte("mapWidth: [1, 2"))
	_, err = LoadConfig(bad)
	assert.NotNil(t, err)
}
