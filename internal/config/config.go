// Package config reads the optional INI config file.
package config

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

// Config mirrors the INI sections. Zero values mean "use the default".
type Config struct {
	Filter struct {
		MinLength      int  `gcfg:"min-length"`
		MaxLength      int  `gcfg:"max-length"`
		ExtraClean     bool `gcfg:"extra-clean"`
		RequireChinese bool `gcfg:"require-chinese"`
		NFKC           bool `gcfg:"nfkc"`
	}
	Pool struct {
		Workers int `gcfg:"workers"`
	}
	BOS struct {
		Endpoint  string `gcfg:"endpoint"`
		Bucket    string `gcfg:"bucket"`
		Prefix    string `gcfg:"prefix"`
		AccessKey string `gcfg:"access-key"`
		SecretKey string `gcfg:"secret-key"`
	}
}

// Default returns the config used when no file is given.
func Default() Config {
	var cfg Config
	cfg.Filter.MinLength = 5
	cfg.Filter.MaxLength = 200
	cfg.Filter.ExtraClean = true
	cfg.Pool.Workers = 16
	return cfg
}

// Load reads the INI file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := gcfg.ReadFileInto(&cfg, path); err != nil {
		return cfg, fmt.Errorf("read config %v: %w", path, err)
	}
	return cfg, nil
}
