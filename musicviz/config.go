package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// IO
	Input  string `yaml:"-"`
	OutDir string `yaml:"-"`
	Report string `yaml:"-"` // txt|md

	// sweep grid
	Methods     []string `yaml:"methods"`
	Formats     []string `yaml:"formats"`
	Noises      []string `yaml:"noises"`
	Compressors []string `yaml:"compressors"`
	Dataset     string   `yaml:"-"` // youtube|small|both

	// genres
	GenreFile string `yaml:"-"`

	// optimal selection
	MinAccuracy float64 `yaml:"-"`

	// rendering
	Annotate bool `yaml:"-"`
}

func defaultConfig() *Config {
	return &Config{
		Input:       "../results",
		OutDir:      "sweep_results",
		Report:      "txt",
		Methods:     []string{"maxfreq", "spectral"},
		Formats:     []string{"text", "binary"},
		Noises:      []string{"clean", "brown", "pink", "white"},
		Compressors: []string{"gzip", "bzip2", "lzma", "zstd"},
		Dataset:     "both",
		GenreFile:   "songs_genre.csv",
		MinAccuracy: 50,
		Annotate:    true,
	}
}

// loadConfigFile overlays the sweep grid lists from a YAML file onto cfg.
// Absent keys keep their defaults.
func (cfg *Config) loadConfigFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, cfg)
}
