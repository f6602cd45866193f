package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/config"
	"github.com/muurk/userdeck/internal/discovery"
	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/ui"
)

var (
	discoverWait time.Duration
	discoverSave bool
)

// scan is swapped out in tests; multicast is not available everywhere.
var scan = discovery.Discover

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find local users APIs over mDNS",
	Long: `Browse the local network for userdeck-fakeapi instances started with
--advertise and print their base URLs.

With --save the first instance found becomes the API base URL in the
settings file.`,
	Example: `  userdeck discover
  userdeck discover --wait 5s --save`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = logging.InitializeFromEnv()
		return nil
	},
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().DurationVar(&discoverWait, "wait", discovery.DefaultScanTimeout, "How long to listen for answers")
	discoverCmd.Flags().BoolVar(&discoverSave, "save", false, "Store the first result as the API base URL")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if discoverWait <= 0 {
		return fmt.Errorf("--wait must be positive")
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintPleaseWait(fmt.Sprintf("Browsing for %s for %s", discovery.ServiceType, discoverWait), "")

	services, err := scan(cmd.Context(), discoverWait)
	if err != nil {
		printer.PrintError("Discovery failed", err, []string{
			"Multicast DNS may be blocked on this network or interface",
			"Pass the address directly with --api instead",
		})
		return errors.New("discover failed")
	}

	if len(services) == 0 {
		printer.PrintWarning("No users API found",
			ui.Field{Key: "Hint", Value: "start one with 'userdeck-fakeapi serve --advertise <name>'"},
		)
		return nil
	}

	details := make([]ui.Field, 0, len(services))
	for _, svc := range services {
		logging.Debug("Discovered service",
			zap.String("instance", svc.Instance),
			zap.String("host", svc.Hostname),
			zap.String("url", svc.BaseURL()),
		)
		value := svc.BaseURL()
		if v := svc.GetMetadata("version"); v != "" {
			value += " (" + v + ")"
		}
		details = append(details, ui.Field{Key: svc.Instance, Value: value})
	}
	printer.PrintSuccess(fmt.Sprintf("Found %d users API(s)", len(services)), details...)

	if discoverSave {
		return saveBaseURL(printer, services[0])
	}
	return nil
}

func saveBaseURL(printer *ui.Printer, svc *discovery.Service) error {
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}
	if settings.API == nil {
		settings.API = &config.APISettings{}
	}
	settings.API.BaseURL = svc.BaseURL()

	if err := settings.Save(settingsPath); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	printer.PrintSuccess("Settings updated", ui.Field{Key: "API", Value: settings.API.BaseURL})
	return nil
}
