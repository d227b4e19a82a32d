// Package paths provides centralized path handling for snortamv.
//
// The rule tree lives under a single root directory. Every component receives
// a Layout built once from configuration instead of reaching for hard-coded
// directory names, which keeps tests free to point the tree at a temporary
// directory or an in-memory filesystem.
//
// # Environment Variables
//
//   - SNORTAMV_RULES_ROOT: location of the rule tree
//     (default: $XDG_DATA_HOME/snortamv/rules)
//   - SNORTAMV_CONFIG_DIR: override the configuration directory
//     (default: $XDG_CONFIG_HOME/snortamv)
//
// # Rule Tree Structure
//
//	<root>/
//	  local.rules          quick-start file
//	  source/*.rules       authored, canonical copies
//	  enabled/*.rules      copies selected for the ruleset
//	  disabled/*.rules     files moved out of enabled
//	  generated/snort.rules
//	  backups/rules_<YYYYMMDD_HHMMSS>.tar.gz
//
// # Usage
//
//	layout, err := paths.New("", paths.WithExtension(".rules"))
//	if err != nil {
//	    return err
//	}
//	enabled := layout.Dir(paths.StateEnabled)
package paths
