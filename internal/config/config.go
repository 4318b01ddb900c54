// Package config merges the optional YAML config file with command-line
// flags. Flags set on the command line win over the file; the file wins
// over flag defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/erraggy/openapi-glue/internal/fileutil"
	"github.com/erraggy/openapi-glue/internal/logging"
	"github.com/erraggy/openapi-glue/oaserrors"
	"github.com/erraggy/openapi-glue/params"
)

// DefaultFile is read from the working directory when --config is not given.
const DefaultFile = ".openapi-glue.yaml"

// FlagConfig is the flag naming the config file.
const FlagConfig = "config"

var logFormats = []string{logging.FormatText, logging.FormatJSON}

// Config is the merged configuration of one invocation.
type Config struct {
	params.Options `koanf:",squash"`

	Verbose   bool   `koanf:"verbose"`
	LogFormat string `koanf:"log-format"`

	// File is the config file that was read, empty if none.
	File string `koanf:"-"`
}

// Load merges the config file and the flags in fs. The file is the one
// named by --config, or DefaultFile in cwd if it exists. A file named
// explicitly must exist.
func Load(flags *pflag.FlagSet, cwd string) (*Config, error) {
	k := koanf.New(".")

	path, explicit, err := configPath(flags, cwd)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, &oaserrors.UsageError{
				Option:  FlagConfig,
				Value:   path,
				Message: fmt.Sprintf("reading config file %s: %v", path, err),
			}
		}
	} else if explicit {
		return nil, &oaserrors.UsageError{Option: FlagConfig, Message: "empty config file path"}
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("config: loading flags: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, &oaserrors.UsageError{
			Option:  FlagConfig,
			Value:   path,
			Message: fmt.Sprintf("invalid configuration: %v", err),
		}
	}
	cfg.File = path
	// The type flag has a default, so the key is only empty when a user
	// supplied an empty value; params.Resolve refuses that.
	cfg.TypeGiven = k.Exists("type")
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !slices.Contains(logFormats, c.LogFormat) {
		return &oaserrors.UsageError{
			Option:  "log-format",
			Value:   c.LogFormat,
			Message: fmt.Sprintf("Unknown log format: %s (valid formats: %v)", c.LogFormat, logFormats),
		}
	}
	return nil
}

// configPath returns the config file to read and whether it was named
// explicitly.
func configPath(flags *pflag.FlagSet, cwd string) (string, bool, error) {
	if f := flags.Lookup(FlagConfig); f != nil && f.Changed {
		path := f.Value.String()
		if path == "" {
			return "", true, nil
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		return path, true, nil
	}

	path := filepath.Join(cwd, DefaultFile)
	isDir, err := fileutil.IsDir(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("config: %w", err)
	case isDir:
		return "", false, nil
	}
	return path, false, nil
}
