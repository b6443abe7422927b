package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/leighmacdonald/dota-tui/internal/config"
	"github.com/leighmacdonald/dota-tui/internal/recorder"
	"github.com/leighmacdonald/dota-tui/internal/store"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	configDir      string
	replayFile     string
	endpointURL    string
	rootCmd        = &cobra.Command{
		Use:   "dota-tui",
		Short: "Dota 2 spectator dashboard",
		Long:  `dota-tui - A live terminal dashboard for Dota 2 game state integration feeds`,
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about dota-tui",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}

	exportCmd = &cobra.Command{
		Use:   "export <file>",
		Short: "Export recorded snapshots",
		Long:  "Write every recorded snapshot to a JSON lines file that can be played back with --replay",
		Args:  cobra.ExactArgs(1),
		RunE:  export,
	}
)

var errApp = errors.New("application error")

func main() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", filepath.Dir(config.Path(config.DefaultConfigName)),
		"Config directory")
	rootCmd.Flags().StringVar(&replayFile, "replay", "", "Play back a recorded JSON lines file instead of connecting")
	rootCmd.Flags().StringVar(&endpointURL, "endpoint", "", "Override the configured websocket endpoint")
	rootCmd.AddCommand(versionCmd, exportCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("dota-tui - Dota 2 Terminal UI\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)     //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)      //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)        //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion) //nolint:forbidigo
}

func export(cmd *cobra.Command, args []string) error {
	database, errDB := store.Open(cmd.Context(), config.Path(config.DefaultDBName), true)
	if errDB != nil {
		return errors.Join(errDB, errApp)
	}

	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}()

	output, errCreate := os.Create(args[0])
	if errCreate != nil {
		return errors.Join(errCreate, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close export file", slog.String("error", err.Error()))
		}
	}(output)

	count, errExport := recorder.Export(cmd.Context(), store.New(database), output)
	if errExport != nil {
		return errors.Join(errExport, errApp)
	}

	fmt.Printf("Exported %d snapshots to %s\n", count, args[0]) //nolint:forbidigo

	return nil
}

// run is the main entry point of dota-tui.
func run(cmd *cobra.Command, _ []string) error {
	// If PROFILE is set, it will be used as the output file path for the profiler.
	if len(os.Getenv("PROFILE")) > 0 {
		f, err := os.Create(os.Getenv("PROFILE"))
		if err != nil {
			return errors.Join(err, errApp)
		}

		if errStart := pprof.StartCPUProfile(f); errStart != nil {
			return errors.Join(errStart, errApp)
		}
		defer pprof.StopCPUProfile()
	}

	// Make sure our config home exists.
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return errors.Join(err, errApp)
	}

	configUpdates := make(chan config.Config)
	configLoader := config.NewLoader(configUpdates, configDir)

	userConfig, errConfig := configLoader.Read()
	if errConfig != nil {
		return errors.Join(errApp, errConfig)
	}

	if endpointURL != "" {
		if err := config.ValidateEndpoint(endpointURL); err != nil {
			return errors.Join(err, errApp)
		}
	}

	// Setup file based logger. The console belongs to the ui.
	logFile, errLogger := config.LoggerInit(config.DefaultLogName, slog.LevelDebug)
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}(logFile)

	slog.Info("Starting dota-tui", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()))

	app, errApplication := NewApp(cmd.Context(), userConfig, configLoader, configUpdates,
		AppOpts{ReplayPath: replayFile, Endpoint: endpointURL})
	if errApplication != nil {
		return errors.Join(errApplication, errApp)
	}

	defer app.Close()

	if err := app.Run(cmd.Context()); err != nil {
		return errors.Join(err, errApp)
	}

	return nil
}
