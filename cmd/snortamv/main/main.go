package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/snortamv/cmd/snortamv"
	"github.com/arthur-debert/snortamv/pkg/style"
)

func main() {
	rootCmd := snortamv.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
