package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// Execute runs the command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

type flags struct {
	configFile string
	dryRun     bool
	propagate  bool
	debug      bool
	timeout    time.Duration
}

func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "contactsync <github-handle> <freshdesk-subdomain>",
		Short: "Create or update a Freshdesk contact from a GitHub user",
		Long: `contactsync looks up a GitHub user, searches the Freshdesk account for a
contact with the same email and creates the contact or updates the existing one.

GITHUB_TOKEN and FRESHDESK_TOKEN must be set (a .env file is read if present).`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], args[1], f)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "optional YAML config file")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "look everything up but do not write to Freshdesk")
	cmd.Flags().BoolVar(&f.propagate, "propagate", false, "update existing contacts with the GitHub name and email")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "enable debug logging")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "HTTP timeout per request (default 10s)")

	return cmd
}
