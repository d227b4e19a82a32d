package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/snortamv/pkg/errors"
)

// Environment variable names
const (
	// EnvRulesRoot is the primary environment variable for the rule tree location
	EnvRulesRoot = "SNORTAMV_RULES_ROOT"

	// EnvConfigDir overrides the XDG config directory for snortamv
	EnvConfigDir = "SNORTAMV_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files. The state directory names are part of the
// on-disk format and are not configurable.
const (
	// AppDirName is the directory name for snortamv-specific files
	AppDirName = "snortamv"

	// RulesDirName is the default rule tree directory under the data home
	RulesDirName = "rules"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// DefaultExtension is the extension rule files carry
	DefaultExtension = ".rules"

	// DefaultRulesetFile is the generated artifact name
	DefaultRulesetFile = "snort.rules"

	// DefaultLocalFile is the quick-start file at the tree root
	DefaultLocalFile = "local.rules"

	// BackupPrefix and BackupSuffix frame the archive timestamp
	BackupPrefix = "rules_"
	BackupSuffix = ".tar.gz"

	// BackupTimeFormat renders the second-resolution archive timestamp
	BackupTimeFormat = "20060102_150405"
)

// State is one of the directories of the rule tree
type State string

const (
	StateSource    State = "source"
	StateEnabled   State = "enabled"
	StateDisabled  State = "disabled"
	StateGenerated State = "generated"
	StateBackups   State = "backups"
)

// AllStates lists every directory of the tree in creation order
var AllStates = []State{StateSource, StateEnabled, StateDisabled, StateGenerated, StateBackups}

// LifecycleStates are the states a named rule file moves through
var LifecycleStates = []State{StateSource, StateEnabled, StateDisabled}

// Valid reports whether s names a directory of the tree
func (s State) Valid() bool {
	for _, known := range AllStates {
		if s == known {
			return true
		}
	}
	return false
}

// ParseState converts user input into a State
func ParseState(s string) (State, error) {
	state := State(strings.ToLower(strings.TrimSpace(s)))
	if !state.Valid() {
		return "", errors.Newf(errors.ErrInvalidInput, "unknown rule state %q", s).
			WithDetail("state", s)
	}
	return state, nil
}

// Layout resolves every location of the rule tree from one root
type Layout struct {
	root         string
	extension    string
	rulesetFile  string
	localFile    string
	usedFallback bool
}

// Option customizes a Layout
type Option func(*Layout)

// WithExtension sets the rule file extension
func WithExtension(ext string) Option {
	return func(l *Layout) {
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		l.extension = ext
	}
}

// WithRulesetFile sets the generated artifact name
func WithRulesetFile(name string) Option {
	return func(l *Layout) {
		if name != "" {
			l.rulesetFile = name
		}
	}
}

// WithLocalFile sets the quick-start file name
func WithLocalFile(name string) Option {
	return func(l *Layout) {
		if name != "" {
			l.localFile = name
		}
	}
}

// New creates a Layout rooted at root.
// If root is empty, it is taken from SNORTAMV_RULES_ROOT or the XDG data home.
func New(root string, opts ...Option) (*Layout, error) {
	l := &Layout{
		extension:   DefaultExtension,
		rulesetFile: DefaultRulesetFile,
		localFile:   DefaultLocalFile,
	}

	if root == "" {
		root, l.usedFallback = findRulesRoot()
	}
	root = expandHome(root)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for rules root %s", root)
	}
	l.root = absRoot

	for _, opt := range opts {
		opt(l)
	}

	for _, name := range []string{l.rulesetFile, l.localFile} {
		if err := ValidateRuleName(name); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// findRulesRoot determines the rule tree root using the following priority:
// 1. SNORTAMV_RULES_ROOT environment variable (if set)
// 2. $XDG_DATA_HOME/snortamv/rules
//
// The second return value is true when the XDG default was used.
func findRulesRoot() (string, bool) {
	if root := os.Getenv(EnvRulesRoot); root != "" {
		return root, false
	}
	return filepath.Join(xdg.DataHome, AppDirName, RulesDirName), true
}

// Root returns the rule tree root
func (l *Layout) Root() string { return l.root }

// UsedFallback reports whether the root came from the XDG default
func (l *Layout) UsedFallback() bool { return l.usedFallback }

// Extension returns the rule file extension, including the dot
func (l *Layout) Extension() string { return l.extension }

// RulesetFile returns the generated artifact name
func (l *Layout) RulesetFile() string { return l.rulesetFile }

// LocalFile returns the quick-start file name
func (l *Layout) LocalFile() string { return l.localFile }

// Dir returns the directory holding files in state
func (l *Layout) Dir(state State) string {
	return filepath.Join(l.root, string(state))
}

// Dirs returns every state directory of the tree
func (l *Layout) Dirs() []string {
	dirs := make([]string, 0, len(AllStates))
	for _, s := range AllStates {
		dirs = append(dirs, l.Dir(s))
	}
	return dirs
}

// RulePath returns the location of name in state.
// The name must already have passed ValidateRuleName.
func (l *Layout) RulePath(state State, name string) string {
	return filepath.Join(l.Dir(state), name)
}

// RulesetPath returns the generated artifact location
func (l *Layout) RulesetPath() string {
	return filepath.Join(l.Dir(StateGenerated), l.rulesetFile)
}

// LocalPath returns the quick-start file location
func (l *Layout) LocalPath() string {
	return filepath.Join(l.root, l.localFile)
}

// BackupName returns the archive file name for a formatted timestamp
func BackupName(timestamp string) string {
	return BackupPrefix + timestamp + BackupSuffix
}

// HasExtension reports whether name carries the layout's rule extension
func (l *Layout) HasExtension(name string) bool {
	return strings.HasSuffix(name, l.extension) && len(name) > len(l.extension)
}

// IsInTree returns true if path is located inside the rule tree
func (l *Layout) IsInTree(path string) (bool, error) {
	normalized, err := NormalizePath(path)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(l.root, normalized)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

// ConfigDir returns the configuration directory
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the default user configuration file location
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// ValidateRuleName ensures a rule file name is safe to join under a state directory.
// Names must:
// - Not be empty
// - Not contain path separators
// - Not be reserved names (. or ..)
// - Not contain control characters
func ValidateRuleName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidRuleName, "rule name cannot be empty")
	}

	if strings.ContainsAny(name, `/\`) {
		return errors.New(errors.ErrInvalidRuleName, "rule name cannot contain path separators").
			WithDetail("name", name)
	}

	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidRuleName, "rule name cannot be '.' or '..'").
			WithDetail("name", name)
	}

	for _, r := range name {
		if r < 32 || r == 127 {
			return errors.New(errors.ErrInvalidRuleName, "rule name contains control characters").
				WithDetail("name", name)
		}
	}

	return nil
}

// NormalizePath expands home, makes the path absolute and cleans it
func NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}
	if strings.Contains(path, "\x00") {
		return "", errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	path = expandHome(path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for %s", path)
	}

	return filepath.Clean(abs), nil
}

// ExpandHome expands ~ to the user's home directory
func ExpandHome(path string) string {
	return expandHome(path)
}

// expandHome expands ~ to the user's home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir := os.Getenv(EnvHome)
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return path
		}
	}

	if path == "~" {
		return homeDir
	}

	if len(path) > 1 && path[1] == '/' {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}
