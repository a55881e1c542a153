package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName = "ddexcheck.yaml"
	EnvFileName    = ".env"
	EnvPrefix      = "DDEXCHECK_"
)

type StoreConfig struct {
	DSN string `yaml:"dsn"`
}

// ProjectConfig is one configuration layer. Pointer and zero-value fields
// are unset and leave lower layers in place when layers are merged.
type ProjectConfig struct {
	SchemaDir     string      `yaml:"schema_dir"`
	SchemaPath    string      `yaml:"schema_path"`
	Strict        *bool       `yaml:"strict"`
	BusinessRules *bool       `yaml:"business_rules"`
	SkipSchema    *bool       `yaml:"skip_schema"`
	Workers       int         `yaml:"workers"`
	Output        string      `yaml:"output"`
	Pattern       string      `yaml:"pattern"`
	Recursive     *bool       `yaml:"recursive"`
	Store         StoreConfig `yaml:"store"`
	MetricsFile   string      `yaml:"metrics_file"`
	LogFormat     string      `yaml:"log_format"`
}

// Load reads ddexcheck.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ddex.ErrInvalidConfig, configPath, err)
	}
	return &cfg, nil
}

// LoadOptional is Load that treats a missing file as an empty layer.
func LoadOptional(dir string) (ProjectConfig, error) {
	cfg, err := Load(dir)
	if errors.Is(err, ErrConfigNotFound) {
		return ProjectConfig{}, nil
	}
	if err != nil {
		return ProjectConfig{}, err
	}
	return *cfg, nil
}

// LoadEnvFile loads dir/.env into the process environment. Variables that
// are already set win. A missing file is not an error.
func LoadEnvFile(dir string) error {
	path := filepath.Join(dir, EnvFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ddex.ErrInvalidConfig, path, err)
	}
	return nil
}

// FromEnv builds a layer from DDEXCHECK_* variables.
func FromEnv(getenv func(string) string) (ProjectConfig, error) {
	var cfg ProjectConfig
	get := func(name string) string { return strings.TrimSpace(getenv(EnvPrefix + name)) }

	cfg.SchemaDir = get("SCHEMA_DIR")
	cfg.SchemaPath = get("SCHEMA_PATH")
	cfg.Output = get("OUTPUT")
	cfg.Pattern = get("PATTERN")
	cfg.Store.DSN = get("STORE_DSN")
	cfg.MetricsFile = get("METRICS_FILE")
	cfg.LogFormat = get("LOG_FORMAT")

	bools := []struct {
		name string
		dst  **bool
	}{
		{"STRICT", &cfg.Strict},
		{"BUSINESS_RULES", &cfg.BusinessRules},
		{"SKIP_SCHEMA", &cfg.SkipSchema},
		{"RECURSIVE", &cfg.Recursive},
	}
	for _, b := range bools {
		raw := get(b.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return ProjectConfig{}, fmt.Errorf("%w: %s%s=%q is not a boolean", ddex.ErrInvalidConfig, EnvPrefix, b.name, raw)
		}
		*b.dst = &v
	}

	if raw := get("WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return ProjectConfig{}, fmt.Errorf("%w: %sWORKERS=%q is not an integer", ddex.ErrInvalidConfig, EnvPrefix, raw)
		}
		cfg.Workers = n
	}
	return cfg, nil
}

// Merge overlays layers from lowest to highest precedence.
func Merge(layers ...ProjectConfig) ProjectConfig {
	var out ProjectConfig
	for _, l := range layers {
		setString(&out.SchemaDir, l.SchemaDir)
		setString(&out.SchemaPath, l.SchemaPath)
		setString(&out.Output, l.Output)
		setString(&out.Pattern, l.Pattern)
		setString(&out.Store.DSN, l.Store.DSN)
		setString(&out.MetricsFile, l.MetricsFile)
		setString(&out.LogFormat, l.LogFormat)
		setBool(&out.Strict, l.Strict)
		setBool(&out.BusinessRules, l.BusinessRules)
		setBool(&out.SkipSchema, l.SkipSchema)
		setBool(&out.Recursive, l.Recursive)
		if l.Workers != 0 {
			out.Workers = l.Workers
		}
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst **bool, v *bool) {
	if v != nil {
		*dst = v
	}
}

// Settings is the fully resolved configuration of one command.
type Settings struct {
	Options     ddex.Options
	Output      string
	Pattern     string
	Recursive   bool
	StoreDSN    string
	MetricsFile string
	LogFormat   string
}

// Resolve merges file, env and flag layers (flags > env > file > defaults)
// and validates the result.
func Resolve(file, env, flags ProjectConfig) (Settings, error) {
	m := Merge(file, env, flags)

	s := Settings{
		Options:     ddex.DefaultOptions(),
		Output:      "text",
		Pattern:     ddex.DefaultPattern,
		StoreDSN:    m.Store.DSN,
		MetricsFile: m.MetricsFile,
		LogFormat:   "text",
	}
	setString(&s.Options.SchemaDir, m.SchemaDir)
	setString(&s.Options.SchemaPath, m.SchemaPath)
	setString(&s.Output, m.Output)
	setString(&s.Pattern, m.Pattern)
	setString(&s.LogFormat, m.LogFormat)
	if m.Strict != nil {
		s.Options.Strict = *m.Strict
	}
	if m.BusinessRules != nil {
		s.Options.BusinessRules = *m.BusinessRules
	}
	if m.SkipSchema != nil {
		s.Options.SkipSchema = *m.SkipSchema
	}
	if m.Recursive != nil {
		s.Recursive = *m.Recursive
	}
	if m.Workers != 0 {
		s.Options.Workers = m.Workers
	}

	if err := s.Options.Validate(); err != nil {
		return Settings{}, err
	}
	if _, err := filepath.Match(s.Pattern, ""); err != nil {
		return Settings{}, fmt.Errorf("%w: invalid pattern %q: %v", ddex.ErrInvalidConfig, s.Pattern, err)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return Settings{}, fmt.Errorf("%w: log format must be text or json, got %q", ddex.ErrInvalidConfig, s.LogFormat)
	}
	return s, nil
}

// Bool returns a pointer to v, for building flag layers.
func Bool(v bool) *bool { return &v }
