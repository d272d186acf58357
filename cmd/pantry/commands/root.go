// Package commands implements the CLI commands for pantry.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pantry/internal/adapters/config"
	"go.trai.ch/pantry/internal/adapters/lockfile"
	"go.trai.ch/pantry/internal/app"
	"go.trai.ch/pantry/internal/build"
	"go.trai.ch/pantry/internal/core/domain"
)

// CLI represents the command line interface for pantry.
type CLI struct {
	app       Application
	logFormat LogFormatter
	rootCmd   *cobra.Command

	policyPath string
	lockPath   string
	jsonLogs   bool
}

// Application represents the application logic interface.
type Application interface {
	Lock(ctx context.Context, policyPath, lockPath string) (*domain.PolicyfileLock, error)
	Validate(ctx context.Context, policyPath, lockPath string) (*app.ValidationResult, error)
	Check(ctx context.Context, lockPath, name, version string, deps []domain.DependencyRequest) error
	Identify(ctx context.Context, path string) (*domain.Identifiers, error)
}

// LogFormatter switches the log output between pretty and JSON lines.
type LogFormatter interface {
	SetJSON(enable bool)
}

// Option configures a CLI.
type Option func(*CLI)

// WithLogFormatter lets --json-logs switch the format of f.
func WithLogFormatter(f LogFormatter) Option {
	return func(c *CLI) {
		c.logFormat = f
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pantry",
		Short:         "Lock and validate cookbook dependencies of a policy",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.policyPath, "policy", "p", config.DefaultPolicyName, "Path to the policy file")
	flags.StringVarP(&c.lockPath, "lockfile", "l", lockfile.DefaultName, "Path to the lock file")
	flags.BoolVar(&c.jsonLogs, "json-logs", false, "Write logs as JSON lines")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.jsonLogs && c.logFormat != nil {
			c.logFormat.SetJSON(true)
		}
	}

	rootCmd.AddCommand(c.newLockCmd())
	rootCmd.AddCommand(c.newValidateCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newIdentifyCmd())
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
