package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"todoapp/internal/config"
	"todoapp/internal/logs"
	"todoapp/internal/tasks/seed"
	"todoapp/internal/tasks/store"
	"todoapp/internal/tui"
)

type rootOptions struct {
	configPath string
	seedFile   string
	filter     string
	undoWindow string
	logDir     string
}

func (o *rootOptions) flags() config.CLIFlags {
	return config.CLIFlags{
		ConfigPath: o.configPath,
		SeedFile:   o.seedFile,
		Filter:     o.filter,
		UndoWindow: o.undoWindow,
		LogDir:     o.logDir,
	}
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}

// NewRootCmd builds the todoapp command tree. Without a subcommand it
// launches the interactive TUI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "todoapp",
		Short: "Keyboard-driven todo list with undoable delete",
		Long: `todoapp shows a filterable todo list in the terminal. Deleted tasks can be
restored for a few seconds before the deletion becomes permanent.
Tasks live in memory only; a seed file (YAML or Markdown checklist)
can pre-populate the list at startup.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file path (default ~/.config/todoapp/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.seedFile, "seed", "", "Seed file to pre-populate tasks (.yaml, .yml, .md)")
	rootCmd.PersistentFlags().StringVar(&opts.filter, "filter", "", "Initial filter: all, pending, done")
	rootCmd.PersistentFlags().StringVar(&opts.undoWindow, "undo-window", "", "How long a deleted task can be restored (e.g. 5s)")
	rootCmd.PersistentFlags().StringVar(&opts.logDir, "log-dir", "", "Directory for debug.log (logging is off when empty)")

	rootCmd.AddCommand(listCmd(opts))

	return rootCmd
}

// seedStore creates a store with the configured filter, filled from the
// seed file when one is set
func seedStore(cfg config.Config) (*store.Store, int, error) {
	s := store.New()
	s.SetFilter(cfg.Filter())

	if cfg.SeedFile == "" {
		return s, 0, nil
	}
	tasks, err := seed.Load(cfg.SeedFile, time.Now())
	if err != nil {
		return nil, 0, err
	}
	n := seed.Populate(s, tasks)
	logs.Logger.Printf("seeded %d tasks from %s", n, cfg.SeedFile)
	return s, n, nil
}

func runTUI(opts *rootOptions) error {
	cfg, err := config.Load(opts.flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.LogDir != "" {
		if err := logs.Initialize(cfg.LogDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
		}
		defer logs.Close()
	}

	s, n, err := seedStore(cfg)
	if err != nil {
		return err
	}

	app, err := tui.NewAppModel(cfg, s)
	if err != nil {
		return err
	}
	if cfg.SeedFile != "" {
		app = app.WithStatus(fmt.Sprintf("Loaded %d tasks from %s", n, filepath.Base(cfg.SeedFile)))
	}

	logs.Logger.Println("Starting app in TUI mode")
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
