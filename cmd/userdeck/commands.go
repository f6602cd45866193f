package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/config"
	"github.com/muurk/userdeck/internal/controller"
	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/messages"
	"github.com/muurk/userdeck/internal/tui"
	"github.com/muurk/userdeck/internal/ui"
	"github.com/muurk/userdeck/internal/users"
)

// Persistent flags
var (
	apiBaseURL   string
	locale       string
	timeout      time.Duration
	settingsPath string
	noAltScreen  bool
)

// Command flags
var (
	listFormat string
	showFormat string
	assumeYes  bool
	forceInit  bool
)

// Resolved by setup for every command
var (
	cfg     *config.Config
	client  *users.Client
	catalog *messages.Catalog
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "API base URL (default from config, then "+config.Default().APIBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "Message locale, e.g. en or pt-BR")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (e.g. 5s)")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "Settings file (default is the user config dir)")
	rootCmd.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "Render inline instead of in the alternate screen")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(discoverCmd)
}

// setup loads the configuration, applies flag overrides and builds the
// gateway and message catalog.
func setup(cmd *cobra.Command, args []string) error {
	// Silent unless USERDECK_LOG_LEVEL is set; a bad level keeps logging off.
	_ = logging.InitializeFromEnv()

	loaded, err := config.Load(config.LoadOptions{SettingsPath: settingsPath})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("api") {
		loaded.APIBaseURL = apiBaseURL
	}
	if flags.Changed("locale") {
		loaded.Locale = locale
	}
	if flags.Changed("timeout") {
		loaded.APITimeout = timeout
	}
	if flags.Changed("no-alt-screen") {
		loaded.AltScreen = !noAltScreen
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	catalog, err = messages.New(loaded.Locale)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	cfg = loaded
	client = users.NewClient(cfg.APIBaseURL, cfg.APITimeout)

	logging.Debug("Command configured",
		zap.String("command", cmd.Name()),
		zap.String("api", cfg.APIBaseURL),
		zap.String("locale", catalog.Locale().String()),
	)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(cmd.Context(), tui.Options{
		Gateway:    client,
		Messages:   catalog,
		APIBaseURL: cfg.APIBaseURL,
		AltScreen:  cfg.AltScreen,
	})
}

// listCmd prints every user
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Long: `Fetch and print the user collection.

The table shows id, name, username, email and company in server order.`,
	Example: `  # Table output (default)
  userdeck list

  # JSON for scripting
  userdeck list --format json

  # Against the local fake API
  userdeck list --api http://localhost:8089`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format (table, json)")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	gateway := newTap(client)
	ctrl := controller.NewListController(ctx, controller.Deps{Gateway: gateway, Messages: catalog})
	defer ctrl.Close()

	switch st := ctrl.Load(ctx).(type) {
	case controller.Loaded[[]users.User]:
		return printUsers(cmd, st.Value)
	case controller.Failed:
		printer := ui.NewPrinter(cmd.ErrOrStderr())
		printer.PrintError(st.Message, gateway.Err(), users.TroubleshootingHints(gateway.Err()))
		return errors.New("list failed")
	default:
		return fmt.Errorf("unexpected state %s", controller.StateName(st))
	}
}

func printUsers(cmd *cobra.Command, list []users.User) error {
	out := cmd.OutOrStdout()
	switch listFormat {
	case "json":
		return writeJSON(cmd, list)
	case "table":
		fmt.Fprintln(out, users.FormatTable(list))
		fmt.Fprintln(out, catalog.Count(messages.UsersCount, len(list)))
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table or json)", listFormat)
	}
}

// showCmd prints one user
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one user",
	Long: `Fetch a single user by id and print every field.

An id that is not a positive integer, or that the server does not know,
is reported as not found.`,
	Example: `  userdeck show 1
  userdeck show 1 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "detailed", "Output format (detailed, json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	if showFormat != "detailed" && showFormat != "json" {
		return fmt.Errorf("unknown format %q (want detailed or json)", showFormat)
	}

	ctx := cmd.Context()
	printer := ui.NewPrinter(cmd.ErrOrStderr())
	gateway := newTap(client)
	ctrl := controller.NewDetailController(ctx, args[0], controller.Deps{
		Gateway:  gateway,
		Notifier: ui.NewNotifier(printer),
		Messages: catalog,
	})
	defer ctrl.Close()

	switch st := ctrl.Load(ctx).(type) {
	case controller.Loaded[users.User]:
		if showFormat == "json" {
			return writeJSON(cmd, st.Value)
		}
		fmt.Fprintln(cmd.OutOrStdout(), st.Value.FormatDetailed())
		return nil
	case controller.NotFound:
		cause := gateway.Err()
		if cause == nil {
			cause = fmt.Errorf("invalid user id %q", args[0])
		}
		printer.PrintError(st.Message, cause, users.TroubleshootingHints(cause))
		return fmt.Errorf("show %s failed", args[0])
	default:
		return fmt.Errorf("unexpected state %s", controller.StateName(st))
	}
}

// deleteCmd deletes one user after confirmation
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Long: `Delete a user by id.

This command will:
  1. Fetch the user so the prompt can name them
  2. Ask for confirmation (skipped with --yes)
  3. Send the DELETE request

The public jsonplaceholder service accepts deletions without applying
them; use 'userdeck-fakeapi serve' to see them stick.`,
	Example: `  userdeck delete 2
  userdeck delete 2 --yes --api http://localhost:8089`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
}

// stepConfirmer reports the confirmation step around a real prompt.
type stepConfirmer struct {
	controller.Confirmer
	onStep ui.StepCallback
}

func (c stepConfirmer) Confirm(ctx context.Context, p controller.Prompt) (controller.Choice, error) {
	choice, err := c.Confirmer.Confirm(ctx, p)
	if err == nil && choice == controller.ChoiceConfirm {
		c.onStep(2, ui.StepComplete, "")
	} else {
		c.onStep(2, ui.StepSkipped, "declined")
	}
	return choice, err
}

func runDelete(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	prompter := ui.NewPrompter(cmd.InOrStdin(), out)
	prompter.AssumeYes = assumeYes

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "Delete user",
		Command: "userdeck delete " + args[0],
		Params: []ui.Field{
			{Key: "API", Value: cfg.APIBaseURL},
			{Key: "User", Value: args[0]},
		},
		StepNames:       []string{"Fetch user", "Confirm", "Delete"},
		Troubleshooting: users.TroubleshootingHints,
		Output:          out,
	})

	// The runner prints the failure box.
	err := runner.Run(cmd.Context(), func(ctx context.Context, onStep ui.StepCallback) ([]ui.Field, error) {
		gateway := newTap(client)
		gateway.onDelete = func(int) { onStep(3, ui.StepRunning, "") }

		ctrl := controller.NewDetailController(ctx, args[0], controller.Deps{
			Gateway:   gateway,
			Confirmer: stepConfirmer{Confirmer: prompter, onStep: onStep},
			Messages:  catalog,
		})
		defer ctrl.Close()

		onStep(1, ui.StepRunning, "")
		if _, ok := ctrl.Load(ctx).(controller.Loaded[users.User]); !ok {
			onStep(1, ui.StepFailed, "")
			if err := gateway.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("invalid user id %q", args[0])
		}
		u, _ := ctrl.User()
		onStep(1, ui.StepComplete, u.Label())

		outcome := ctrl.RequestDelete(ctx)
		details := []ui.Field{
			{Key: "User", Value: u.Summary()},
			{Key: "ID", Value: strconv.Itoa(u.ID)},
		}
		switch outcome {
		case controller.DeleteSucceeded:
			onStep(3, ui.StepComplete, "")
			return details, nil
		case controller.DeleteCancelled:
			onStep(3, ui.StepSkipped, "")
			return details, ui.ErrCancelled
		case controller.DeleteFailed:
			onStep(3, ui.StepFailed, "")
			return nil, gateway.Err()
		default:
			return nil, fmt.Errorf("delete %s", outcome)
		}
	})
	if err != nil {
		return fmt.Errorf("delete %s failed", args[0])
	}
	return nil
}

// configCmd manages the settings file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
	// Only logging; 'config init' must work when the file is broken.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = logging.InitializeFromEnv()
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefaultSettings(settingsPath, forceInit)
		if errors.Is(err, config.ErrSettingsExist) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err != nil {
			return err
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Settings written", ui.Field{Key: "Path", Value: path})
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd, args); err != nil {
			return err
		}

		path := settingsPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}

		ui.NewPrinter(cmd.OutOrStdout()).PrintHeader("Configuration", "userdeck config show",
			ui.Field{Key: "Settings", Value: path},
			ui.Field{Key: "API", Value: cfg.APIBaseURL},
			ui.Field{Key: "Timeout", Value: cfg.APITimeout.String()},
			ui.Field{Key: "Locale", Value: catalog.Locale().String()},
			ui.Field{Key: "Alt screen", Value: strconv.FormatBool(cfg.AltScreen)},
			ui.Field{Key: "Sources", Value: fmt.Sprint(cfg.Sources)},
		)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
