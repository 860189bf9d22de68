package adboard

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Layer is drawn above the board and may take over input, such as a modal
// info panel.
type Layer interface {
	// Update runs before device input is polled. Returning true captures
	// this frame's pointer input so the board does not see it.
	Update(b *Board) bool
	Draw(screen *ebiten.Image)
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// Layers are updated top-down and drawn bottom-up over the board.
	Layers []Layer
	// ExitWhenScriptDone closes the window once an attached test script has
	// run every step.
	ExitWhenScriptDone bool
}

// game adapts a Board to ebiten.Game.
type game struct {
	board      *Board
	layers     []Layer
	exitOnDone bool
}

func (g *game) Update() error {
	if g.exitOnDone && g.board.testRunner != nil && g.board.testRunner.Done() {
		return ebiten.Termination
	}
	captured := false
	for i := len(g.layers) - 1; i >= 0; i-- {
		if g.layers[i].Update(g.board) {
			captured = true
			break
		}
	}
	g.board.pollInput(captured)
	g.board.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.board.Draw(screen)
	for _, l := range g.layers {
		l.Draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.board.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the board at its configured TPS until the
// window is closed.
func Run(b *Board, cfg RunConfig) error {
	if b == nil {
		panic("adboard: Run called with nil board")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = int(b.cam.Viewport.Width), int(b.cam.Viewport.Height)
	}
	if cfg.Title == "" {
		cfg.Title = "Ad Board"
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(b.cfg.TPS)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	b.logger.Info("window opened", "width", cfg.Width, "height", cfg.Height, "tps", b.cfg.TPS, "nodes", b.store.Len())
	g := &game{board: b, layers: cfg.Layers, exitOnDone: cfg.ExitWhenScriptDone}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}
