package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"todoapp/internal/tasks/data"
	"todoapp/internal/tasks/undo"
)

const (
	DefaultConfigFileName = "config.toml"
	appDirName            = "todoapp"
)

var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidWindow = errors.New("invalid undo window")
)

// Keymap binds actions to key names as reported by bubbletea
type Keymap struct {
	Quit          string `toml:"quit"`
	Help          string `toml:"help"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Add           string `toml:"add"`
	Toggle        string `toml:"toggle"`
	Delete        string `toml:"delete"`
	Undo          string `toml:"undo"`
	CycleFilter   string `toml:"cycle_filter"`
	FilterAll     string `toml:"filter_all"`
	FilterPending string `toml:"filter_pending"`
	FilterDone    string `toml:"filter_done"`
	Search        string `toml:"search"`
	Confirm       string `toml:"confirm"`
	Cancel        string `toml:"cancel"`
}

// Config holds the unified application configuration
type Config struct {
	DefaultFilter string `toml:"default_filter"`
	UndoWindow    string `toml:"undo_window"`
	SeedFile      string `toml:"seed_file"`
	LogDir        string `toml:"log_dir"`
	Keys          Keymap `toml:"keys"`
}

// CLIFlags holds parsed CLI flags. Empty fields leave lower-priority
// values in place.
type CLIFlags struct {
	ConfigPath string
	SeedFile   string
	Filter     string
	UndoWindow string
	LogDir     string
}

// Load builds the configuration with priority: CLI flags > env vars >
// config file > defaults. A missing file at the default location is
// created with default values; a missing file passed explicitly is an error.
func Load(flags CLIFlags) (Config, error) {
	cfg := Default()

	path := flags.ConfigPath
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		if err := EnsureFile(defaultPath); err != nil {
			return cfg, err
		}
		path = defaultPath
	}
	if err := mergeFile(&cfg, path); err != nil {
		return cfg, err
	}

	// Priority 2: Environment variables override config file
	if v := os.Getenv("TODOAPP_SEED"); v != "" {
		cfg.SeedFile = v
	}
	if v := os.Getenv("TODOAPP_FILTER"); v != "" {
		cfg.DefaultFilter = v
	}
	if v := os.Getenv("TODOAPP_UNDO_WINDOW"); v != "" {
		cfg.UndoWindow = v
	}
	if v := os.Getenv("TODOAPP_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}

	// Priority 1: CLI flags override everything
	if flags.SeedFile != "" {
		cfg.SeedFile = flags.SeedFile
	}
	if flags.Filter != "" {
		cfg.DefaultFilter = flags.Filter
	}
	if flags.UndoWindow != "" {
		cfg.UndoWindow = flags.UndoWindow
	}
	if flags.LogDir != "" {
		cfg.LogDir = flags.LogDir
	}

	cfg.SeedFile = expandPath(cfg.SeedFile)
	cfg.LogDir = expandPath(cfg.LogDir)
	cfg.Keys = cfg.Keys.withDefaults()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		DefaultFilter: string(data.FilterAll),
		UndoWindow:    undo.DefaultWindow.String(),
		Keys:          DefaultKeymap(),
	}
}

// DefaultKeymap returns the built-in key bindings
func DefaultKeymap() Keymap {
	return Keymap{
		Quit:          "q",
		Help:          "?",
		Up:            "k",
		Down:          "j",
		Add:           "n",
		Toggle:        " ",
		Delete:        "d",
		Undo:          "u",
		CycleFilter:   "f",
		FilterAll:     "1",
		FilterPending: "2",
		FilterDone:    "3",
		Search:        "/",
		Confirm:       "enter",
		Cancel:        "esc",
	}
}

// Validate checks the filter and undo window values
func (c Config) Validate() error {
	if !c.Filter().Valid() {
		return fmt.Errorf("%w: %q (want all, pending or done)", ErrInvalidFilter, c.DefaultFilter)
	}
	if _, err := c.UndoDuration(); err != nil {
		return err
	}
	return nil
}

// Filter returns the configured initial filter
func (c Config) Filter() data.Filter {
	return data.ParseFilter(c.DefaultFilter)
}

// UndoDuration parses the undo window
func (c Config) UndoDuration() (time.Duration, error) {
	if strings.TrimSpace(c.UndoWindow) == "" {
		return undo.DefaultWindow, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(c.UndoWindow))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidWindow, d)
	}
	return d, nil
}

func (k Keymap) withDefaults() Keymap {
	d := DefaultKeymap()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&k.Quit, d.Quit)
	fill(&k.Help, d.Help)
	fill(&k.Up, d.Up)
	fill(&k.Down, d.Down)
	fill(&k.Add, d.Add)
	fill(&k.Toggle, d.Toggle)
	fill(&k.Delete, d.Delete)
	fill(&k.Undo, d.Undo)
	fill(&k.CycleFilter, d.CycleFilter)
	fill(&k.FilterAll, d.FilterAll)
	fill(&k.FilterPending, d.FilterPending)
	fill(&k.FilterDone, d.FilterDone)
	fill(&k.Search, d.Search)
	fill(&k.Confirm, d.Confirm)
	fill(&k.Cancel, d.Cancel)
	return k
}

// DefaultPath returns the path to the configuration file
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appDirName, DefaultConfigFileName), nil
}

// EnsureFile creates the config file with defaults if it doesn't exist
func EnsureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return write(path, Default())
}

func mergeFile(cfg *Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func write(path string, cfg Config) error {
	content, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
