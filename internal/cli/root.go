// Package cli implements the docstruct command line tool, an offline
// front end to the same extraction and structure pipeline the server runs.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:   "docstruct",
	Short: "Build hierarchical outlines from documents",
	Long: `docstruct extracts text from documents (PDF, DOCX, Markdown, HTML,
images, plain text) and rebuilds their heading hierarchy into a
chapter/section/subsection outline with classified content blocks.`,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("docstruct %s\n", version))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
