package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/five82/retroai/internal/ai"
	"github.com/five82/retroai/internal/archive"
	"github.com/five82/retroai/internal/config"
	"github.com/five82/retroai/internal/logging"
	"github.com/five82/retroai/internal/prefs"
	"github.com/five82/retroai/internal/session"
	"github.com/five82/retroai/internal/ui"
)

// Options configure the retroai application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/retroai/prefs.toml
	Model      string // overrides the configured model when set
	Debug      bool

	In  io.Reader // nil uses os.Stdin
	Out io.Writer // nil uses os.Stdout
}

// Run boots retroai and drives the session until the user quits, input ends
// or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if model := strings.TrimSpace(opts.Model); model != "" {
		cfg.Model = model
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Debug: opts.Debug})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Close() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	catalog, err := archive.NewClient(archive.Options{
		SearchURL:   cfg.SearchURL,
		MetadataURL: cfg.MetadataURL,
	})
	if err != nil {
		return fmt.Errorf("init archive client: %w", err)
	}

	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	renderer := ui.NewRenderer(userPrefs.Theme, 0)
	console := ui.NewConsole(in, out, renderer)
	defer func() { _ = console.Close() }()

	dispatcher := ai.NewDispatcher(ai.Options{
		Binary:  cfg.OllamaBin,
		Model:   cfg.Model,
		Display: console.Stream(),
		Logger:  logger.Logger,
	})

	logger.Info().
		Str("model", dispatcher.Model()).
		Str("theme", renderer.ThemeName()).
		Bool("interactive", console.Interactive()).
		Msg("retroai starting")

	if done, err := boot(ctx, console, renderer); done || err != nil {
		return err
	}

	loop := session.New(session.Options{
		Catalog:  catalog,
		AI:       dispatcher,
		Console:  console,
		Renderer: renderer,
		Rows:     cfg.Rows,
		SaveTheme: func(name string) error {
			return prefs.Save(opts.PrefsPath, prefs.Prefs{Theme: name})
		},
		Logger: logger.Logger,
	})

	err = loop.Run(ctx)
	snap := loop.Session().Snapshot()
	logger.Info().
		Int("questions", len(snap.AIMemory)).
		Str("last_query", snap.LastQuery).
		Msg("retroai exiting")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// boot shows the startup screen. done is true when input ended before the
// session started.
func boot(ctx context.Context, console *ui.Console, renderer *ui.Renderer) (done bool, err error) {
	console.Clear()
	console.Show(renderer.Boot())
	if err := console.Pause(ctx, ""); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, ui.ErrAborted) || ctx.Err() != nil {
			return true, nil
		}
		return true, fmt.Errorf("read input: %w", err)
	}
	return false, nil
}
