// Package commands implements the CLI commands for the forge shader build tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/vgfx/forge/internal/app"
	"github.com/vgfx/forge/internal/build"
)

// CLI represents the command line interface for forge.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	Clean(ctx context.Context, manifestPath string) error
	Watch(ctx context.Context, opts app.BuildOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "forge",
		Short:         "Build shader sources into GL3 and Metal targets",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.NoArgs,
		// Running forge with no subcommand builds everything.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Build(cmd.Context(), buildOptions(cmd))
		},
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("manifest", "m", "shaders.yaml", "Path to the shader manifest")
	rootCmd.PersistentFlags().IntP("jobs", "j", 0, "Maximum parallel tool invocations (0 = NumCPU)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Force rebuild, bypassing staleness checks")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func buildOptions(cmd *cobra.Command) app.BuildOptions {
	manifest, _ := cmd.Flags().GetString("manifest")
	jobs, _ := cmd.Flags().GetInt("jobs")
	force, _ := cmd.Flags().GetBool("force")
	return app.BuildOptions{
		Manifest: manifest,
		Jobs:     jobs,
		Force:    force,
	}
}
