// Package testutil provides utilities for testing snortamv components.
//
// Key components:
//   - TestEnvironment: a rule tree on an in-memory or temporary filesystem
//   - RuleTree: declarative description of files to seed per state
//   - Snapshot: full content capture of a tree for before/after comparisons
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated when the code under test shells out to the real filesystem
//   - All test data should be defined inline, not in external files
package testutil
