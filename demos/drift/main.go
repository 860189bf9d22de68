// drift fills a walled box with forty nodes under the drift model: a constant
// wind pushes everything toward one wall while repulsion and collisions keep
// the pile from overlapping. Press D to reverse the wind.
package main

import (
	"log"
	"math/rand/v2"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/adboard"
)

const (
	screenW   = 1280
	screenH   = 720
	nodeCount = 40
	wind      = 0.05
)

// windToggle flips the drift direction through the board's retune path.
type windToggle struct {
	phys adboard.PhysicsConfig
}

func (w *windToggle) Update(b *adboard.Board) bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		w.phys.Drift.X = -w.phys.Drift.X
		b.Retune(w.phys)
	}
	return false
}

func (w *windToggle) Draw(*ebiten.Image) {}

func main() {
	rng := rand.New(rand.NewPCG(7, 11))
	defs := make([]adboard.NodeDef, nodeCount)
	for i := range defs {
		defs[i] = adboard.NodeDef{
			ID:      "n" + strconv.Itoa(i+1),
			Color:   adboard.Color{R: rng.Float64(), G: 0.4 + 0.4*rng.Float64(), B: rng.Float64(), A: 1},
			Metrics: adboard.Metrics{CTR: rng.Float64() * 4},
		}
	}

	phys := adboard.DefaultPhysics()
	phys.Model = adboard.ForceDrift
	phys.Drift = adboard.Vec2{X: wind, Y: 0}
	phys.Bounds = adboard.Rect{X: -600, Y: -330, Width: 1200, Height: 660}
	phys.Charge = 40

	cfg := adboard.DefaultConfig()
	cfg.Physics = phys
	cfg.Width, cfg.Height = screenW, screenH
	cfg.CircleRadius = 250

	b := adboard.NewBoard(defs, cfg)
	if err := adboard.Run(b, adboard.RunConfig{
		Title:  "Ad Board: Drift Demo",
		Layers: []adboard.Layer{&windToggle{phys: phys}},
	}); err != nil {
		log.Fatal(err)
	}
}
