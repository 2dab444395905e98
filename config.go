package openft

import (
	"io/ioutil"

	"github.com/go-yaml/yaml"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// Config includes settings for loading plugins & building a TileMap
type Config struct {
	// directory holding one sub directory per plugin package
	PluginRoot string `yaml:"plugins"`

	// in tiles
	MapWidth  uint `yaml:"mapWidth"`
	MapHeight uint `yaml:"mapHeight"`

	// atlas of ground tiles, laid out left to right one TileWidth apart
	GroundTexture  string `yaml:"groundTexture"`
	GroundVariants int    `yaml:"groundVariants"`

	// max number of packages parsed at once
	Workers int `yaml:"workers"`
}

// DefaultConfig returns a config with default settings.
func DefaultConfig() *Config {
	return &Config{
		PluginRoot:     "./plugin",
		MapWidth:       200,
		MapHeight:      200,
		GroundTexture:  "res/GroundSeasonal.png",
		GroundVariants: 4,
		Workers:        4,
	}
}

// LoadConfig reads a YAML config from disk. Unset fields keep their
// defaults and paths beginning with ~ are expanded.
func LoadConfig(fname string) (*Config, error) {
	cfg := DefaultConfig()

	path, err := homedir.Expand(fname)
	if err != nil {
		return nil, err
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}

	return cfg, cfg.expand()
}

// expand resolves ~ in any configured paths
func (c *Config) expand() error {
	var err error
	c.PluginRoot, err = homedir.Expand(c.PluginRoot)
	if err != nil {
		return err
	}
	c.GroundTexture, err = homedir.Expand(c.GroundTexture)
	if err != nil {
		return err
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return nil
}
