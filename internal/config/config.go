// Package config holds the process-wide tunables: default channel
// capacity, max call-stack depth, GOMAXPROCS override, and task
// thread-stack size. Values load from an optional YAML file (unmarshaled
// with yaml.v2 and wrapped with github.com/pkg/errors) with flag
// overrides on top, and go-homedir resolves a path under the user's
// home directory.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Config is the full set of process tunables. Zero values mean
// "unset"; Defaults() fills them in before any YAML/flag override is
// applied.
type Config struct {
	DefaultChannelCapacity int `yaml:"default_channel_capacity"`
	MaxCallDepth           int `yaml:"max_call_depth"`
	GOMAXPROCS             int `yaml:"gomaxprocs"`
	TaskStackSizeKB        int `yaml:"task_stack_size_kb"`
}

// Defaults returns the built-in tunables used when no config file or
// flag overrides anything.
func Defaults() *Config {
	return &Config{
		DefaultChannelCapacity: 0,
		MaxCallDepth:           4096,
		GOMAXPROCS:             0, // 0 means "leave runtime.GOMAXPROCS untouched"
		TaskStackSizeKB:        0, // 0 means "use the Go runtime's default goroutine stack"
	}
}

// Load reads path (expanding a leading ~ via go-homedir) and overlays
// it onto Defaults(). A missing file is not an error — it just yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to expand config path")
	}
	data, err := ioutil.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "failed to read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	return cfg, nil
}

// DefaultPath returns ~/.hemlock/config.yaml, the conventional
// location the CLI looks at when --config is not given.
func DefaultPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hemlock", "config.yaml")
}
