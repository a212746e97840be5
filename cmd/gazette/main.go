// Package main is the gazette command line tool. It runs the article
// generator and page renderer locally and manages the database schema.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gazette",
		Short: "Family Gazette article generator",
		Long: `gazette turns a photo and a short idea into a family newspaper article.

The generate and render commands run entirely offline. The migrate command
applies the API server's database schema using the same environment
configuration as the server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(),
		newRenderCmd(),
		newLayoutsCmd(),
		newMigrateCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
