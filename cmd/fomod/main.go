package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/fomod/internal/cli"
	"github.com/arthur-debert/fomod/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := style.NewRenderer(style.DetectFormat(os.Stderr))
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		os.Exit(1)
	}
}
