package config

import (
	"github.com/arthur-debert/snortamv/pkg/paths"
)

// Config is the fully resolved configuration
type Config struct {
	Rules   Rules   `koanf:"rules" toml:"rules" validate:"required"`
	Author  Author  `koanf:"author" toml:"author"`
	Backup  Backup  `koanf:"backup" toml:"backup"`
	Output  Output  `koanf:"output" toml:"output"`
	Logging Logging `koanf:"logging" toml:"logging"`
}

// Rules configures the rule tree
type Rules struct {
	Root        string `koanf:"root" toml:"root"`
	Extension   string `koanf:"extension" toml:"extension" validate:"required,startswith=."`
	RulesetFile string `koanf:"ruleset_file" toml:"ruleset_file" validate:"required,excludesall=/\\"`
	LocalFile   string `koanf:"local_file" toml:"local_file" validate:"required,excludesall=/\\"`
	UniqueSIDs  bool   `koanf:"unique_sids" toml:"unique_sids"`
}

// Author holds fallbacks for directive fields left empty by the caller
type Author struct {
	Source          string `koanf:"source" toml:"source"`
	SourcePort      string `koanf:"source_port" toml:"source_port"`
	Destination     string `koanf:"destination" toml:"destination"`
	DestinationPort string `koanf:"destination_port" toml:"destination_port"`
	Rev             string `koanf:"rev" toml:"rev"`
}

// Backup configures archive creation
type Backup struct {
	CompressionLevel int `koanf:"compression_level" toml:"compression_level" validate:"oneof=-1 1 2 3 4 5 6 7 8 9"`
}

// Output configures result rendering
type Output struct {
	Format string `koanf:"format" toml:"format" validate:"oneof=auto term text json yaml xml"`
}

// Logging configures the log file
type Logging struct {
	File string `koanf:"file" toml:"file"`
}

// Layout builds the rule tree layout described by the configuration
func (c *Config) Layout() (*paths.Layout, error) {
	return paths.New(c.Rules.Root,
		paths.WithExtension(c.Rules.Extension),
		paths.WithRulesetFile(c.Rules.RulesetFile),
		paths.WithLocalFile(c.Rules.LocalFile),
	)
}
