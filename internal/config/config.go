// Package config loads ttydeck settings from TOML files and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Theme   ThemeConfig   `toml:"theme"`
	Layout  LayoutConfig  `toml:"layout"`
	Logging LoggingConfig `toml:"logging"`
}

type ThemeConfig struct {
	// Highlight is a chroma style name.
	Highlight string `toml:"highlight"`
	// Markdown is a glamour style name, or "auto".
	Markdown string `toml:"markdown"`
}

type LayoutConfig struct {
	CodeMargin     int    `toml:"code_margin"`
	BlockMargin    int    `toml:"block_margin"`
	TabWidth       int    `toml:"tab_width"`
	OverflowMarker string `toml:"overflow_marker"`
	TopPadding     int    `toml:"top_padding"`
	ProgressBar    bool   `toml:"progress_bar"`
	TOCSidebar     bool   `toml:"toc_sidebar"`
	TOCWidth       int    `toml:"toc_width"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
	JSON  bool   `toml:"json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theme: ThemeConfig{
			Highlight: "monokai",
			Markdown:  "auto",
		},
		Layout: LayoutConfig{
			CodeMargin:     4,
			BlockMargin:    4,
			TabWidth:       4,
			OverflowMarker: "…",
			TopPadding:     1,
			ProgressBar:    true,
			TOCWidth:       28,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Theme.Highlight == "":
		return fmt.Errorf("%w: theme.highlight is empty", ErrInvalidConfig)
	case c.Theme.Markdown == "":
		return fmt.Errorf("%w: theme.markdown is empty", ErrInvalidConfig)
	case c.Layout.CodeMargin < 0 || c.Layout.BlockMargin < 0 || c.Layout.TopPadding < 0:
		return fmt.Errorf("%w: layout margins must not be negative", ErrInvalidConfig)
	case c.Layout.TabWidth < 1 || c.Layout.TabWidth > 16:
		return fmt.Errorf("%w: layout.tab_width must be between 1 and 16, got %d", ErrInvalidConfig, c.Layout.TabWidth)
	case c.Layout.TOCWidth < 10:
		return fmt.Errorf("%w: layout.toc_width must be at least 10, got %d", ErrInvalidConfig, c.Layout.TOCWidth)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}

// WriteTOML encodes c in the format Load reads.
func (c Config) WriteTOML(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "  "
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Loader layers configuration files over the defaults.
type Loader struct {
	globalPath string
	localName  string
	getenv     func(string) string
}

// NewLoader reads the global file from ~/.config/ttydeck/config.toml and the
// local file ttydeck.toml next to the deck.
func NewLoader() *Loader {
	homeDir, _ := os.UserHomeDir()
	return &Loader{
		globalPath: filepath.Join(homeDir, ".config", "ttydeck", "config.toml"),
		localName:  "ttydeck.toml",
		getenv:     os.Getenv,
	}
}

func (l *Loader) GlobalPath() string { return l.globalPath }

// LocalPath returns the local config file for a deck at deckPath, which may
// be a file or a slides directory.
func (l *Loader) LocalPath(deckPath string) string {
	dir := deckPath
	if info, err := os.Stat(deckPath); err != nil || !info.IsDir() {
		dir = filepath.Dir(deckPath)
	}
	return filepath.Join(dir, l.localName)
}

// Load returns the effective configuration. An explicit path replaces the
// global and local files and must exist. Later layers only override the keys
// they set; environment variables are applied last.
func (l *Loader) Load(deckPath, explicit string) (Config, error) {
	cfg := Default()

	if explicit != "" {
		if err := decodeFile(explicit, &cfg); err != nil {
			return Config{}, err
		}
	} else {
		for _, path := range []string{l.globalPath, l.LocalPath(deckPath)} {
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				continue // optional
			}
			if err := decodeFile(path, &cfg); err != nil {
				return Config{}, err
			}
		}
	}

	l.applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *Config) {
	if v := l.getenv("TTYDECK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := l.getenv("TTYDECK_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := l.getenv("TTYDECK_THEME"); v != "" {
		cfg.Theme.Highlight = v
	}
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) // #nosec G304 - path is from controlled sources (global/local/flag)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("parsing TOML from %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}
	return nil
}
