// Userdeck-fakeapi serves a local, stateful copy of the users API.
//
// It answers the same routes as jsonplaceholder, but deletions are
// applied, and failures and latency can be injected to exercise the
// error and loading states of userdeck.
//
// Usage:
//
//	userdeck-fakeapi serve [flags]
//
// See 'userdeck-fakeapi serve --help' for available options.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/userdeck/internal/fakeapi"
	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "userdeck-fakeapi",
	Short: "Local users API for userdeck",
	Long: `A local stand-in for the public users API.

Serves GET /users, GET /users/:id and DELETE /users/:id from an in-memory
store seeded with sample users. Point userdeck at it with
--api http://localhost:8089.`,
	Version: version.Version,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	addr        string
	seedPath    string
	logLevel    string
	failDeletes bool
	latency     time.Duration
	advertise   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fake API",
	Long: `Start the fake users API.

Deletions change the in-memory store until the process exits. Use
--fail-deletes to make every DELETE answer 500 and --latency to slow every
response down.`,
	Example: `  # Listen on :8089 with the built-in sample users
  userdeck-fakeapi serve

  # Exercise the delete failure path
  userdeck-fakeapi serve --fail-deletes

  # Slow responses so the loading states are visible
  userdeck-fakeapi serve --latency 1s --log-level debug

  # Let 'userdeck discover' find it on the LAN
  userdeck-fakeapi serve --advertise devbox

  # Custom data
  userdeck-fakeapi serve --seed ./users.json --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", fakeapi.DefaultAddr, "Listen address")
	serveCmd.Flags().StringVar(&seedPath, "seed", "", "JSON array of users (default: built-in sample)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&failDeletes, "fail-deletes", false, "Answer every DELETE with 500")
	serveCmd.Flags().DurationVar(&latency, "latency", 0, "Delay every response (e.g. 250ms)")
	serveCmd.Flags().StringVar(&advertise, "advertise", "", "Announce over mDNS under this instance name")
}

func runServe(cmd *cobra.Command, args []string) error {
	if latency < 0 {
		return fmt.Errorf("--latency must not be negative")
	}

	if err := logging.Initialize(logLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	srv, err := fakeapi.New(&fakeapi.Config{
		Addr:     addr,
		SeedPath: seedPath,
		Options: fakeapi.Options{
			FailDeletes: failDeletes,
			Latency:     latency,
		},
		Advertise: advertise,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("userdeck-fakeapi %s (commit: %s)\n", version.Version, version.Commit)
	},
}
