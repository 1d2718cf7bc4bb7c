package main

import (
	"fmt"
	"io"
	"log/slog"

	"ttydeck/internal/config"
	"ttydeck/internal/deck"
	"ttydeck/internal/highlight"
	"ttydeck/internal/logging"
	"ttydeck/internal/render"
	"ttydeck/internal/source"
)

// session is everything a command needs once the deck is loaded.
type session struct {
	path   string
	cfg    config.Config
	deck   *deck.Deck
	log    *slog.Logger
	closer io.Closer
}

func loadConfig(g *globalFlags, path string) (config.Config, error) {
	cfg, err := config.NewLoader().Load(path, g.config)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	if g.theme != "" {
		cfg.Theme.Highlight = g.theme
	}
	if g.logFile != "" {
		cfg.Logging.File = g.logFile
	}
	return cfg, nil
}

func openSession(g *globalFlags, path string) (*session, error) {
	cfg, err := loadConfig(g, path)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(logging.Options{
		Level: cfg.Logging.Level,
		File:  cfg.Logging.File,
		JSON:  cfg.Logging.JSON,
	})
	if err != nil {
		return nil, err
	}

	d, err := source.Load(path)
	if err != nil {
		logger.Error("loading deck failed", slog.String("path", path), slog.Any("error", err))
		_ = closer.Close()
		return nil, err
	}
	logger.Info("deck loaded",
		slog.String("path", path),
		slog.String("title", d.Title()),
		slog.Int("slides", d.TotalSlideCount()),
		slog.Int("sections", len(d.TOCEntries())),
	)

	return &session{path: path, cfg: cfg, deck: d, log: logger, closer: closer}, nil
}

func (s *session) Close() error { return s.closer.Close() }

func (s *session) renderer() *render.Renderer {
	return render.New(s.deck, highlight.NewChroma(s.cfg.Theme.Highlight), renderOptions(s.cfg), s.log)
}

func renderOptions(cfg config.Config) render.Options {
	return render.Options{
		CodeMargin:     cfg.Layout.CodeMargin,
		BlockMargin:    cfg.Layout.BlockMargin,
		TabWidth:       cfg.Layout.TabWidth,
		TopPadding:     cfg.Layout.TopPadding,
		OverflowMarker: cfg.Layout.OverflowMarker,
		MarkdownStyle:  cfg.Theme.Markdown,
	}
}
