package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig holds optional defaults loaded from a YAML file. Flags win over
// the file; prompts fill whatever is still missing.
type fileConfig struct {
	Mode        string `yaml:"mode"`
	Container   string `yaml:"container"`
	Format      string `yaml:"format"`
	Bitrate     string `yaml:"bitrate"`
	Resolution  string `yaml:"resolution"`
	Destination string `yaml:"destination"`
}

// loadFileConfig reads the defaults file. An explicitly passed path must
// exist; the default location is allowed to be absent.
func loadFileConfig(path string, explicit bool) (fileConfig, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fileConfig{}, nil
		}
		path = filepath.Join(home, ".chapsplit.yaml")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}
