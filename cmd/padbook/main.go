package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pluqqy/padbook/cmd/commands"
	"github.com/pluqqy/padbook/internal/cli"
	"github.com/pluqqy/padbook/pkg/files"
	"github.com/pluqqy/padbook/pkg/models"
	"github.com/pluqqy/padbook/pkg/nativedialog"
	"github.com/pluqqy/padbook/pkg/tui"
	"github.com/pluqqy/padbook/pkg/workflow"
)

// Version is set during build with -ldflags
var version = "dev"

// DebugEnv enables logging to DebugLogFile when set
const (
	DebugEnv     = "PADBOOK_DEBUG"
	DebugLogFile = "padbook-debug.log"
)

var (
	configPath  string
	quiet       bool
	noColor     bool
	skipConfirm bool
)

var rootCmd = &cobra.Command{
	Use:   "padbook [file]",
	Short: "Minimal plain-text editor for the terminal",
	Long: `Padbook is a minimal plain-text editor: one window, one document, a File menu
with Open, Save, Save As and Exit, and a prompt before unsaved changes are lost.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(quiet, noColor, skipConfirm)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Padbook",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Padbook version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default: <user config dir>/padbook/settings.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "plain text output without symbols")
	rootCmd.PersistentFlags().BoolVarP(&skipConfirm, "yes", "y", false, "answer yes to command-line prompts")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewConfigCommand(&configPath))
}

func run(args []string) error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := files.ReadSettings(configPath)
	if err != nil {
		return startupFailure(nil, err)
	}

	var opts []tui.Option
	if len(args) == 1 {
		opts = append(opts, tui.WithInitialFile(args[0]))
	}
	if settings.Dialogs.Native {
		opts = append(opts, tui.WithNativeDialogs(nativedialog.New(workflow.AppTitle, settings.Editor.TextExtension)))
	}

	app, err := tui.NewApp(settings, opts...)
	if err != nil {
		return startupFailure(settings, err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}

	return nil
}

// startupFailure shows err in a modal error dialog and returns it once the
// dialog is dismissed.
func startupFailure(settings *models.Settings, err error) error {
	log.Printf("startup failure: %v", err)

	if settings != nil && settings.Dialogs.Native {
		nativedialog.ShowFatal(workflow.AppTitle, err)
		return err
	}

	if dialogErr := tui.RunFatal(err); dialogErr != nil {
		log.Printf("error dialog: %v", dialogErr)
	}
	return err
}

// setupLogging sends the standard logger to a file when debugging and
// discards it otherwise, since the terminal belongs to the UI.
func setupLogging() (func(), error) {
	if os.Getenv(DebugEnv) == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := tea.LogToFile(DebugLogFile, "padbook")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return func() { f.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
