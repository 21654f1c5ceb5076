// Package config loads run settings from defaults, an optional YAML file, a
// .env file, the environment and command-line overrides, in increasing order
// of precedence.
package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"repodoc/pkg/errors"
	"repodoc/pkg/render"
)

// Config is the full set of run settings.
type Config struct {
	InputPath       string   `koanf:"input_path"`
	OutputPath      string   `koanf:"output_path"`
	OutputFormat    string   `koanf:"output_format"`
	NumChunks       int      `koanf:"num_chunks"`
	ProjectTypes    []string `koanf:"project_type"`
	ProfilesDir     string   `koanf:"profiles_dir"`
	TreePathType    string   `koanf:"tree_path_type"`
	TreeDisplayRoot string   `koanf:"tree_display_root"`
	MaxFileSizeKB   int      `koanf:"max_file_size_kb"`
	SkipBinary      bool     `koanf:"skip_binary"`
	Parallel        bool     `koanf:"parallel"`
	MaxWorkers      int      `koanf:"max_workers"`
	GitDepth        int      `koanf:"git_depth"`
	TempDir         string   `koanf:"temp_dir"`
	Debug           bool     `koanf:"debug"`
}

// Keys lists every configuration key. Environment variables are the
// upper-cased keys.
var Keys = []string{
	"input_path",
	"output_path",
	"output_format",
	"num_chunks",
	"project_type",
	"profiles_dir",
	"tree_path_type",
	"tree_display_root",
	"max_file_size_kb",
	"skip_binary",
	"parallel",
	"max_workers",
	"git_depth",
	"temp_dir",
	"debug",
}

// Defaults returns the built-in settings.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"input_path":        "inputs",
		"output_path":       "outputs/output",
		"output_format":     string(render.FormatPDF),
		"num_chunks":        1,
		"project_type":      "default",
		"profiles_dir":      "config",
		"tree_path_type":    "relative",
		"tree_display_root": "",
		"max_file_size_kb":  0,
		"skip_binary":       true,
		"parallel":          false,
		"max_workers":       0,
		"git_depth":         1,
		"temp_dir":          "",
		"debug":             false,
	}
}

// LoadOptions selects the optional layers.
type LoadOptions struct {
	File      string                 // YAML config file; empty skips the layer.
	EnvFile   string                 // .env file; empty means ".env" if present.
	Overrides map[string]interface{} // Highest precedence, typically changed CLI flags.
}

// Load builds and validates a Config.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config file %s", opts.File)
		}
	}

	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to unmarshal configuration")
	}

	cfg.ProjectTypes = trimAll(cfg.ProjectTypes)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later in the run.
func (c *Config) Validate() error {
	if _, err := render.ParseFormat(c.OutputFormat); err != nil {
		return err
	}
	if c.NumChunks < 1 {
		return errors.Newf(errors.ErrConfigValid, "num_chunks must be at least 1, got %d", c.NumChunks)
	}
	switch c.TreePathType {
	case "relative", "absolute":
	default:
		return errors.Newf(errors.ErrConfigValid, "tree_path_type must be 'relative' or 'absolute', got %q", c.TreePathType)
	}
	if len(c.ProjectTypes) == 0 {
		return errors.New(errors.ErrConfigValid, "project_type must name at least one profile")
	}
	if strings.TrimSpace(c.InputPath) == "" {
		return errors.New(errors.ErrConfigValid, "input_path is empty")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return errors.New(errors.ErrConfigValid, "output_path is empty")
	}
	if c.MaxFileSizeKB < 0 || c.MaxWorkers < 0 || c.GitDepth < 0 {
		return errors.New(errors.ErrConfigValid, "max_file_size_kb, max_workers and git_depth must not be negative")
	}
	return nil
}

// Format returns the validated output format.
func (c *Config) Format() render.Format {
	f, _ := render.ParseFormat(c.OutputFormat)
	return f
}

var knownKeys = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Keys))
	for _, k := range Keys {
		m[k] = struct{}{}
	}
	return m
}()

// envKey maps an environment variable to its config key. Unknown variables
// map to "" and are ignored by the provider.
func envKey(name string) string {
	key := strings.ToLower(name)
	if _, ok := knownKeys[key]; !ok {
		return ""
	}
	return key
}

// loadEnvFile applies a .env file without overriding variables that are
// already set. A missing default file is not an error.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to read env file %s", path)
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to parse env file %s", path)
	}
	return nil
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
