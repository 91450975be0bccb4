package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dsablic/licenseid/internal/config"
	"github.com/dsablic/licenseid/internal/engine"
)

var version = "dev"

// errNotFound marks a lookup miss that was already reported to the user.
var errNotFound = errors.New("not found")

type app struct {
	configPath string
	snapshot   string
	verbose    bool
	cfg        config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(&app{}).ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errNotFound) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "licenseid",
		Short:         "Identify open-source licenses in free-form text",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "Path to the YAML config file")
	root.PersistentFlags().StringVar(&a.snapshot, "snapshot", "", "Corpus snapshot to load instead of the embedded licenses")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(a.newIdentifyCmd())
	root.AddCommand(a.newNormalizeCmd())
	root.AddCommand(a.newLicensesCmd())
	root.AddCommand(a.newScanCmd())
	root.AddCommand(a.newCorpusCmd())
	root.AddCommand(a.newServeCmd())
	root.AddCommand(a.newConfigCmd())
	return root
}

func (a *app) setup() error {
	a.setupLogging()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.snapshot != "" {
		cfg.Snapshot = a.snapshot
	}
	a.cfg = cfg
	slog.Debug("config loaded", "path", a.configPath, "snapshot", cfg.Snapshot, "threshold", cfg.Threshold)
	return nil
}

func (a *app) setupLogging() {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// engine loads the corpus. A configured snapshot that cannot be read is
// fatal; there is no fallback to the embedded licenses.
func (a *app) engine() (*engine.Engine, error) {
	if a.cfg.Snapshot != "" {
		return engine.Open(a.cfg.Snapshot)
	}
	return engine.Default()
}

// readInput returns the contents of the file named by args, or stdin when
// no file is given and stdin is not a terminal.
func readInput(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no input: pass a file or pipe text on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
