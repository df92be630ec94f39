// Package config loads pagegen settings from defaults, an optional YAML file
// and PAGEGEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/itsmostafa/pagegen/internal/literal"
	"github.com/itsmostafa/pagegen/internal/section"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "pagegen.yaml"

// EnvPrefix prefixes environment overrides, e.g. PAGEGEN_HEADER_FILE.
const EnvPrefix = "PAGEGEN"

// ErrNoMarkers is returned when the marker list is empty.
var ErrNoMarkers = errors.New("at least one marker kind is required")

// Config holds generator settings.
type Config struct {
	Markers      []string      `mapstructure:"markers"`
	HeaderFile   string        `mapstructure:"header_file"`
	SourceFile   string        `mapstructure:"source_file"`
	Variable     string        `mapstructure:"variable"`
	RecordType   string        `mapstructure:"record_type"`
	Indent       int           `mapstructure:"indent"`
	MaxDepth     int           `mapstructure:"max_depth"`
	MatchTimeout time.Duration `mapstructure:"match_timeout"`
	OutputDir    string        `mapstructure:"output_dir"`
	WrapPlain    bool          `mapstructure:"wrap_plain"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	decl := literal.DefaultDeclaration()
	return &Config{
		Markers:    append([]string(nil), section.DefaultKinds...),
		HeaderFile: decl.HeaderFile,
		SourceFile: "page.cc",
		Variable:   decl.Variable,
		RecordType: decl.RecordType,
		Indent:     literal.DefaultIndent,
		MaxDepth:   section.DefaultMaxDepth,
		OutputDir:  ".",
	}
}

// Load reads configuration. An empty path means DefaultFile, which may be
// absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("markers", def.Markers)
	v.SetDefault("header_file", def.HeaderFile)
	v.SetDefault("source_file", def.SourceFile)
	v.SetDefault("variable", def.Variable)
	v.SetDefault("record_type", def.RecordType)
	v.SetDefault("indent", def.Indent)
	v.SetDefault("max_depth", def.MaxDepth)
	v.SetDefault("match_timeout", def.MatchTimeout)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("wrap_plain", def.WrapPlain)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if _, err := os.Stat(path); err == nil || explicit {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the settings can drive a build.
func (c *Config) Validate() error {
	if len(c.Markers) == 0 {
		return ErrNoMarkers
	}
	for i, m := range c.Markers {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("marker %d is blank", i)
		}
	}
	if c.HeaderFile == "" || c.SourceFile == "" {
		return errors.New("header_file and source_file must be set")
	}
	if c.HeaderFile == c.SourceFile {
		return fmt.Errorf("header_file and source_file are both %q", c.HeaderFile)
	}
	if c.Variable == "" || c.RecordType == "" {
		return errors.New("variable and record_type must be set")
	}
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Indent)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}

// Builder returns a section builder for these settings.
func (c *Config) Builder() *section.Builder {
	b := section.NewBuilder(c.Markers)
	b.MaxDepth = c.MaxDepth
	b.Timeout = c.MatchTimeout
	b.WrapPlain = c.WrapPlain
	return b
}

// Serializer returns a C++ serializer for these settings.
func (c *Config) Serializer() *literal.Serializer {
	s := literal.NewSerializer()
	s.Indent = c.Indent
	return s
}

// Declaration returns the names used in the generated files.
func (c *Config) Declaration() literal.Declaration {
	return literal.Declaration{
		HeaderFile: c.HeaderFile,
		RecordType: c.RecordType,
		Variable:   c.Variable,
	}
}
