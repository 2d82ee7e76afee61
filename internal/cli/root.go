package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/security-mcp/check-http-exec/internal/check"
	"github.com/security-mcp/check-http-exec/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const commandName = "check_http_exec"

// Execute runs the check with the process arguments and returns the exit code
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run parses args, performs the check and returns the exit code. The check
// message goes to stdout; usage and configuration errors go to stderr and
// map to UNKNOWN.
func Run(args []string, stdout, stderr io.Writer) int {
	exitCode := int(check.OK)

	rootCmd := newRootCmd(stdout, stderr, &exitCode)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return int(check.Unknown)
	}

	return exitCode
}

// newRootCmd builds the single command of the plugin. A fresh command is
// built per run so no flag state leaks between runs.
func newRootCmd(stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   commandName,
		Short: "Simple Nagios plugin of a remote HTTP executor",
		Long: `check_http_exec sends one GET request to a remote executor and expects a JSON
body of the form {"code": <0-255>, "description": "<text>"}.

The description is printed and the code becomes the exit status. Any failure
to obtain a result prints "failed to get result from the server: <reason>"
and exits with 3 (UNKNOWN).`,
		Example: `  check_http_exec -H monitor.example.com -u /check -q cmd=check_load
  check_http_exec --ssl -H monitor.example.com -p 8443 -q "filter=a&b" -t 5`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger := createLogger(stderr, cfg.LogLevel)

			outcome, err := runCheck(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			fmt.Fprintln(stdout, outcome.Message)
			*exitCode = outcome.ExitCode
			return nil
		},
	}

	config.RegisterFlags(rootCmd.Flags())

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s version %s\ncommit: %s\nbuilt: %s\n", commandName, Version, GitCommit, BuildDate))

	return rootCmd
}

func userAgent() string {
	return commandName + "/" + Version
}
