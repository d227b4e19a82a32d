// Package commands provides the high-level operations behind the CLI.
//
// Each command takes an options struct carrying the resolved configuration,
// the filesystem and the dry-run flag, wires the rule tree components
// together and returns a result from pkg/types for the renderers.
//
//   - Add       - append a directive to the quick-start or a source file
//   - List      - rule names per state, backups and the quick-start file
//   - Enable    - copy a source file into enabled
//   - Disable   - move an enabled file into disabled
//   - Build     - compile the enabled set into the generated ruleset
//   - Backup    - archive the rule tree
//   - Setup     - create the tree and the quick-start file
//   - Validate  - parse the tree and report problems
//   - GenConfig - print or write a configuration file
package commands
