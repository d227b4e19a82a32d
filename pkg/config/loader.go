package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/logging"
	"github.com/arthur-debert/snortamv/pkg/paths"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the configuration
const EnvPrefix = "SNORTAMV_"

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile is an explicit configuration file. It must exist when set.
	// When empty, the XDG config file is read if present.
	ConfigFile string

	// Overrides are flattened keys (e.g. "rules.root") applied last
	Overrides map[string]interface{}
}

// Load resolves the configuration from all sources
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	k, err := loadKoanf(opts)
	if err != nil {
		return nil, err
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := postProcessConfig(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", cfg.Rules.Root).
		Str("format", cfg.Output.Format).
		Bool("unique_sids", cfg.Rules.UniqueSIDs).
		Msg("Configuration loaded")

	return &cfg, nil
}

// Default returns the configuration made of the embedded defaults only
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal defaults")
	}
	return &cfg, nil
}

func loadKoanf(opts LoadOptions) (*koanf.Koanf, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	configPath := opts.ConfigFile
	explicit := configPath != ""
	if !explicit {
		configPath = paths.ConfigFilePath()
	}
	configPath = paths.ExpandHome(configPath)

	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configPath).
				WithDetail("path", configPath)
		}
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", configPath).
			WithDetail("path", configPath)
	}

	// 3. Environment, SNORTAMV_RULES_UNIQUE_SIDS -> rules.unique_sids
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return k, nil
}

// envKey maps an environment variable to a configuration key. Only the first
// underscore separates section from key, so multi-word keys survive.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func postProcessConfig(cfg *Config) error {
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if cfg.Output.Format == "" {
		cfg.Output.Format = "auto"
	}
	if cfg.Rules.Extension != "" && !strings.HasPrefix(cfg.Rules.Extension, ".") {
		cfg.Rules.Extension = "." + cfg.Rules.Extension
	}
	cfg.Rules.Root = paths.ExpandHome(cfg.Rules.Root)
	cfg.Logging.File = paths.ExpandHome(cfg.Logging.File)

	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(err, errors.ErrConfigInvalid, "invalid configuration")
	}
	return nil
}
