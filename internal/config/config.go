package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/accio/internal/errors"
	"github.com/mcncl/accio/internal/models"
)

// Config represents the complete configuration for accio
type Config struct {
	Output  OutputConfig           `yaml:"output"`
	Search  SearchConfig           `yaml:"search"`
	Queries map[string]QueryConfig `yaml:"queries"`
	Dev     DevConfig              `yaml:"dev"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	Format string `yaml:"format"` // json, pretty or yaml
	Indent int    `yaml:"indent"`
}

// SearchConfig holds defaults for search requests
type SearchConfig struct {
	Flatten    bool     `yaml:"flatten"`
	Projection []string `yaml:"projection"`
	Transform  string   `yaml:"transform"`
	MaxResults int      `yaml:"max_results"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// QueryConfig is a stored request. Unset fields fall back to the Search
// defaults.
type QueryConfig struct {
	Select     []string `yaml:"select"`
	Mode       string   `yaml:"mode"`
	Where      Where    `yaml:"where"`
	Projection []string `yaml:"projection"`
	Flatten    *bool    `yaml:"flatten"`
	Transform  string   `yaml:"transform"`
	MaxResults int      `yaml:"max_results"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "json",
			Indent: 2,
		},
		Search: SearchConfig{
			Transform: "none",
		},
		Queries: make(map[string]QueryConfig),
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration on top of the defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("failed to parse config file", err)
	}
	if cfg.Queries == nil {
		cfg.Queries = make(map[string]QueryConfig)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !validFormat(c.Output.Format) {
		return errors.NewConfigError(fmt.Sprintf("unknown output format '%s'", c.Output.Format), nil)
	}
	if c.Output.Indent < 0 {
		return errors.NewConfigError("indent must not be negative", nil)
	}
	for name, q := range c.Queries {
		if q.Mode != "" && !models.Mode(q.Mode).Valid() {
			return errors.NewConfigError(fmt.Sprintf("query '%s'", name), fmt.Errorf("%w: %s", errors.ErrUnknownMode, q.Mode))
		}
	}
	return nil
}

func validFormat(format string) bool {
	switch format {
	case "json", "pretty", "yaml":
		return true
	}
	return false
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".accio.yml", ".accio.yaml", "accio.yml", "accio.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// QueryNames returns the stored query names in sorted order.
func (c *Config) QueryNames() []string {
	names := make([]string, 0, len(c.Queries))
	for name := range c.Queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Request resolves the stored query called name against the search
// defaults.
func (c *Config) Request(name string) (models.Request, error) {
	q, ok := c.Queries[name]
	if !ok {
		return models.Request{}, errors.NewConfigError(fmt.Sprintf("query '%s'", name), errors.ErrQueryNotFound)
	}
	return c.resolve(q), nil
}

// DefaultRequest returns a request carrying only the search defaults.
func (c *Config) DefaultRequest() models.Request {
	return c.resolve(QueryConfig{})
}

// LoadQueryFile reads a single stored query from its own YAML file and
// resolves it against the search defaults.
func (c *Config) LoadQueryFile(path string) (models.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Request{}, errors.NewConfigError(fmt.Sprintf("failed to read query file '%s'", path), err)
	}
	var q QueryConfig
	if err := yaml.Unmarshal(data, &q); err != nil {
		return models.Request{}, errors.NewConfigError(fmt.Sprintf("failed to parse query file '%s'", path), err)
	}
	if q.Mode != "" && !models.Mode(q.Mode).Valid() {
		return models.Request{}, errors.NewConfigError(fmt.Sprintf("query file '%s'", path), fmt.Errorf("%w: %s", errors.ErrUnknownMode, q.Mode))
	}
	return c.resolve(q), nil
}

func (c *Config) resolve(q QueryConfig) models.Request {
	req := models.Request{
		Mode:       models.ModeGet,
		Where:      q.Where.Spec(),
		Projection: c.Search.Projection,
		Flatten:    c.Search.Flatten,
		Transform:  c.Search.Transform,
		MaxResults: c.Search.MaxResults,
	}
	for _, s := range q.Select {
		req.Steps = append(req.Steps, models.ParseStep(s))
	}
	if q.Mode != "" {
		req.Mode = models.Mode(q.Mode)
	} else if len(req.Where) > 0 {
		req.Mode = models.ModeFind
	}
	if q.Projection != nil {
		req.Projection = q.Projection
	}
	if q.Flatten != nil {
		req.Flatten = *q.Flatten
	}
	if q.Transform != "" {
		req.Transform = q.Transform
	}
	if q.MaxResults > 0 {
		req.MaxResults = q.MaxResults
	}
	return req
}

// Overrides carries the command-line values that take precedence over the
// configuration file. Zero values leave the file's setting alone.
type Overrides struct {
	Format     string
	Transform  string
	Projection []string
	Flatten    bool
	Debug      bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Format != "" {
		if !validFormat(cli.Format) {
			return nil, errors.NewConfigError(fmt.Sprintf("unknown output format '%s'", cli.Format), nil)
		}
		cfg.Output.Format = cli.Format
	}
	if cli.Transform != "" {
		cfg.Search.Transform = cli.Transform
	}
	if len(cli.Projection) > 0 {
		cfg.Search.Projection = cli.Projection
	}
	// Boolean flags can only switch a setting on.
	cfg.Search.Flatten = cfg.Search.Flatten || cli.Flatten
	cfg.Dev.Debug = cfg.Dev.Debug || cli.Debug

	return cfg, nil
}
