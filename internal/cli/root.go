package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version reported by --version. Call before Execute.
func SetVersion(v string) { version = v }

// Execute builds the command tree and runs it with os-level streams.
func Execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	root := NewRootCommand(stderr)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand returns the mdscale root command; logs go to logw.
func NewRootCommand(logw io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "mdscale",
		Short: "Classical multidimensional scaling of dissimilarity matrices",
		Long: `mdscale projects an N×N dissimilarity matrix into low-dimensional
coordinates with classical (Torgerson) multidimensional scaling.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logw, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.AddCommand(newProjectCmd())

	return root
}
