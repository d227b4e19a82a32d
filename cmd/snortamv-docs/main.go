// Command snortamv-docs generates the release artifacts derived from the CLI:
// man pages and shell completion scripts.
//
//	snortamv-docs man [DIR]
//	snortamv-docs completion <bash|zsh|fish|powershell>
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/snortamv/cmd/snortamv"
	"github.com/arthur-debert/snortamv/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const usage = "Usage: %s man [DIR] | completion <bash|zsh|fish|powershell>\n"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		os.Exit(1)
	}

	rootCmd := snortamv.NewRootCmd()

	var err error
	switch os.Args[1] {
	case "man":
		dir := ""
		if len(os.Args) > 2 {
			dir = os.Args[2]
		}
		err = genMan(rootCmd, dir, os.Stdout)
	case "completion":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, usage, os.Args[0])
			os.Exit(1)
		}
		err = genCompletion(rootCmd, os.Args[2], os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

// genMan writes one page per command into dir, or the root page to w when dir is empty
func genMan(rootCmd *cobra.Command, dir string, w io.Writer) error {
	header := &doc.GenManHeader{
		Title:   "SNORTAMV",
		Section: "1",
		Source:  "snortamv " + version.Version,
		Manual:  "snortamv manual",
	}
	if dir == "" {
		return doc.GenMan(rootCmd, header, w)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return doc.GenManTree(rootCmd, header, dir)
}

func genCompletion(rootCmd *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	}
	return fmt.Errorf("unknown shell %q, supported: bash, zsh, fish, powershell", shell)
}
