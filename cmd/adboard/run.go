package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/adboard"
	"github.com/phanxgames/adboard/internal/catalog"
	"github.com/phanxgames/adboard/internal/config"
	"github.com/phanxgames/adboard/internal/sfx"
	"github.com/phanxgames/adboard/internal/watch"
)

type runOptions struct {
	catalog     string
	script      string
	screenshots string
	noWatch     bool
	mute        bool
	exit        bool
}

func (o *runOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.catalog, "catalog", "", "Ad catalog YAML (overrides layout.catalog)")
	f.StringVar(&o.script, "script", "", "JSON test script to drive the board")
	f.StringVar(&o.screenshots, "screenshots", "", "Directory for script screenshots")
	f.BoolVar(&o.noWatch, "no-watch", false, "Do not reload physics when the config file changes")
	f.BoolVar(&o.mute, "mute", false, "Disable sound effects")
	f.BoolVar(&o.exit, "exit", false, "Close the window when the test script finishes")
}

func runCmd(flags *globalFlags) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the board window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportErr(cmd, runBoard(cmd, flags, opts))
		},
	}
	opts.bind(cmd)
	return cmd
}

// setup is everything runBoard wires before the window opens.
type setup struct {
	cfg     *config.Config
	board   *adboard.Board
	overlay *overlay
}

// buildBoard loads the configuration and catalog and assembles the board
// with its collaborators. It opens no window and no audio device.
func buildBoard(flags *globalFlags, opts *runOptions, logger *slog.Logger) (*setup, error) {
	cfg, err := flags.loadConfig()
	if err != nil {
		return nil, err
	}
	if opts.catalog != "" {
		cfg.Layout.Catalog = opts.catalog
	}
	if opts.script != "" {
		cfg.Debug.TestScript = opts.script
	}
	if opts.screenshots != "" {
		cfg.Debug.ScreenshotDir = opts.screenshots
	}
	if flags.debug {
		cfg.Debug.Enabled = true
	}

	cat, err := catalog.Load(cfg.Layout.Catalog)
	if err != nil {
		return nil, err
	}
	bc, err := cfg.Board()
	if err != nil {
		return nil, err
	}

	b := adboard.NewBoard(cat.Defs(), bc)
	b.SetLogger(logger)
	b.ScreenshotDir = cfg.Debug.ScreenshotDir
	b.SetMediaPlayer(newVideoLog(logger, filepath.Dir(cfg.Layout.Catalog)))

	if cfg.Debug.TestScript != "" {
		data, err := os.ReadFile(cfg.Debug.TestScript)
		if err != nil {
			return nil, fmt.Errorf("read test script: %w", err)
		}
		runner, err := adboard.LoadTestScript(data)
		if err != nil {
			return nil, err
		}
		b.SetTestRunner(runner)
	}

	s := &setup{cfg: cfg, board: b}
	s.overlay = newOverlay(b)
	return s, nil
}

func runBoard(cmd *cobra.Command, flags *globalFlags, opts *runOptions) error {
	logger := slog.Default()
	s, err := buildBoard(flags, opts, logger)
	if err != nil {
		return err
	}
	cfg := s.cfg

	if cfg.Audio.Enabled && !opts.mute {
		p := sfx.NewPlayer(cfg.Audio.Volume)
		if err := p.Init(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", "err", err)
		} else {
			defer p.Close()
			s.board.SetSoundPlayer(p)
			s.overlay.sound = p
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if !opts.noWatch {
		startWatcher(ctx, flags.configPath(), s.board, logger)
	}

	return adboard.Run(s.board, adboard.RunConfig{
		Title:              cfg.Window.Title,
		Width:              cfg.Window.Width,
		Height:             cfg.Window.Height,
		Resizable:          cfg.Window.Resizable,
		Layers:             []adboard.Layer{s.overlay},
		ExitWhenScriptDone: opts.exit,
	})
}

// startWatcher reloads physics from path while ctx is alive. A missing file
// or watcher failure only disables reloading.
func startWatcher(ctx context.Context, path string, b *adboard.Board, logger *slog.Logger) {
	if _, err := os.Stat(path); err != nil {
		logger.Debug("config watch disabled", "path", path, "err", err)
		return
	}
	w, err := watch.New(path, b.Retune, logger)
	if err != nil {
		logger.Warn("config watch disabled", "path", path, "err", err)
		return
	}
	go func() {
		defer w.Close()
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("config watch stopped", "err", err)
		}
	}()
}

// videoLog stands in for a video surface: it resolves the reference and logs
// playback. Remote references are accepted as-is.
type videoLog struct {
	logger  *slog.Logger
	base    string
	playing string
}

func newVideoLog(logger *slog.Logger, base string) *videoLog {
	return &videoLog{logger: logger.With("component", "video"), base: base}
}

func (v *videoLog) resolve(ref string) string {
	if strings.Contains(ref, "://") || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(v.base, ref)
}

func (v *videoLog) Play(ref string) error {
	path := v.resolve(ref)
	if !strings.Contains(path, "://") {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("open video: %w", err)
		}
	}
	v.playing = path
	v.logger.Info("playing video", "ref", ref, "path", path)
	return nil
}

// Stop ends playback and drops the source. Stopping with nothing playing is
// a no-op.
func (v *videoLog) Stop() error {
	if v.playing == "" {
		return nil
	}
	v.logger.Info("stopped video", "path", v.playing)
	v.playing = ""
	return nil
}
