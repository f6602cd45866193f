// Userdeck browses and deletes users of a jsonplaceholder-compatible API.
//
// Running without arguments launches the interactive list and detail
// screens. The subcommands do the same operations one shot at a time.
//
// Usage:
//
//	userdeck [command] [flags]
//
// See 'userdeck --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/urls"
	"github.com/muurk/userdeck/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "userdeck",
	Short: "Browse and manage users of a REST users API",
	Long: `Browse, inspect and delete the users of a jsonplaceholder-compatible API.

If no command is specified, the interactive screens launch automatically.
Point --api at 'userdeck-fakeapi serve' for a local API whose deletions stick.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Skip config loading; a broken config must not hide the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "userdeck %s (commit: %s)\n", version.Version, version.Commit)
		fmt.Fprintln(cmd.OutOrStdout(), urls.ProjectHome)
	},
}
