package types

import (
	"time"

	"github.com/arthur-debert/snortamv/pkg/directive"
)

// Result is implemented by every command result
type Result interface {
	ResultName() string
}

// LocalFileStatus describes the quick-start file
type LocalFileStatus struct {
	Path       string `json:"path" yaml:"path"`
	Exists     bool   `json:"exists" yaml:"exists"`
	Directives int    `json:"directives" yaml:"directives"`
}

// ListResult holds the sorted contents of every state
type ListResult struct {
	Root     string          `json:"root" yaml:"root"`
	Source   []string        `json:"source" yaml:"source"`
	Enabled  []string        `json:"enabled" yaml:"enabled"`
	Disabled []string        `json:"disabled" yaml:"disabled"`
	Backups  []string        `json:"backups" yaml:"backups"`
	Local    LocalFileStatus `json:"local" yaml:"local"`
}

// ResultName implements Result
func (r *ListResult) ResultName() string { return "list" }

// AddResult describes an appended directive
type AddResult struct {
	Target  string `json:"target" yaml:"target"`
	Line    string `json:"line" yaml:"line"`
	Created bool   `json:"created" yaml:"created"`
	DryRun  bool   `json:"dry_run" yaml:"dry_run"`
}

// ResultName implements Result
func (r *AddResult) ResultName() string { return "add" }

// TransitionResult describes an enable or disable
type TransitionResult struct {
	Command string `json:"command" yaml:"command"`
	Rule    string `json:"rule" yaml:"rule"`
	From    string `json:"from" yaml:"from"`
	To      string `json:"to" yaml:"to"`
	Action  string `json:"action" yaml:"action"`
	Source  string `json:"source" yaml:"source"`
	Target  string `json:"target" yaml:"target"`
	DryRun  bool   `json:"dry_run" yaml:"dry_run"`
}

// ResultName implements Result
func (r *TransitionResult) ResultName() string { return r.Command }

// BuildResult describes a ruleset build
type BuildResult struct {
	Output     string   `json:"output" yaml:"output"`
	Files      []string `json:"files" yaml:"files"`
	Directives int      `json:"directives" yaml:"directives"`
	Bytes      int      `json:"bytes" yaml:"bytes"`
	Checksum   string   `json:"checksum" yaml:"checksum"`
	DryRun     bool     `json:"dry_run" yaml:"dry_run"`
}

// ResultName implements Result
func (r *BuildResult) ResultName() string { return "build" }

// BackupResult describes an archive
type BackupResult struct {
	Path      string    `json:"path" yaml:"path"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Files     int       `json:"files" yaml:"files"`
	Bytes     int64     `json:"bytes" yaml:"bytes"`
	Checksum  string    `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	DryRun    bool      `json:"dry_run" yaml:"dry_run"`
}

// ResultName implements Result
func (r *BackupResult) ResultName() string { return "backup" }

// SetupResult describes tree initialisation
type SetupResult struct {
	Root         string   `json:"root" yaml:"root"`
	Directories  []string `json:"directories" yaml:"directories"`
	LocalFile    string   `json:"local_file" yaml:"local_file"`
	LocalExisted bool     `json:"local_existed" yaml:"local_existed"`
	DryRun       bool     `json:"dry_run" yaml:"dry_run"`
}

// ResultName implements Result
func (r *SetupResult) ResultName() string { return "setup" }

// FileReport is the validation outcome of one rule file
type FileReport struct {
	State      string                 `json:"state" yaml:"state"`
	Name       string                 `json:"name" yaml:"name"`
	Directives int                    `json:"directives" yaml:"directives"`
	Issues     []directive.ParseIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// ValidateResult is the outcome of checking the whole tree
type ValidateResult struct {
	Root      string                  `json:"root" yaml:"root"`
	Local     LocalFileStatus         `json:"local" yaml:"local"`
	Files     []FileReport            `json:"files" yaml:"files"`
	Conflicts []directive.SIDConflict `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Problems  []string                `json:"problems,omitempty" yaml:"problems,omitempty"`
	Valid     bool                    `json:"valid" yaml:"valid"`
}

// ResultName implements Result
func (r *ValidateResult) ResultName() string { return "validate" }

// MessageResult carries a plain message, e.g. a generated config
type MessageResult struct {
	Name    string `json:"-" yaml:"-"`
	Message string `json:"message" yaml:"message"`
}

// ResultName implements Result
func (r *MessageResult) ResultName() string {
	if r.Name == "" {
		return "message"
	}
	return r.Name
}

// GenConfigResult holds generated configuration content
type GenConfigResult struct {
	Content      string   `json:"content" yaml:"content"`
	Effective    bool     `json:"effective" yaml:"effective"`
	FilesWritten []string `json:"files_written" yaml:"files_written"`
	DryRun       bool     `json:"dry_run" yaml:"dry_run"`
}

// ResultName implements Result
func (r *GenConfigResult) ResultName() string { return "genconfig" }
