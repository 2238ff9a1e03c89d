package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"irgen/pkg/compiler"
	"irgen/pkg/grid"
	"irgen/pkg/machine"
	"irgen/pkg/utils"
)

const (
	cols         = 64
	rows         = 24
	charWidth    = 7 // basicfont.Face7x13 advance
	charHeight   = 14
	statusHeight = 16
)

type Game struct {
	vm       *machine.Machine
	screen   *grid.Buffer
	face     text.Face
	perFrame int
	paused   bool
	err      error
}

func newGame(prog *compiler.Program, perFrame int) *Game {
	screen := grid.NewBuffer(cols, rows)
	return &Game{
		vm:       machine.New(prog, screen, &machine.Options{MaxSteps: -1}),
		screen:   screen,
		face:     text.NewGoXFace(basicfont.Face7x13),
		perFrame: perFrame,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.vm.Reset()
		g.screen.Clear()
		g.err = nil
	}

	steps := g.perFrame
	if g.paused {
		steps = 0
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			steps = 1
		}
	}

	for i := 0; i < steps; i++ {
		// Stop early once the program finishes or fails.
		if g.vm.Halted || g.err != nil {
			break
		}
		if err := g.vm.Step(); err != nil {
			g.err = err
		}
	}
	return nil
}

func (g *Game) status() string {
	switch {
	case g.err != nil:
		return fmt.Sprintf("error: %v  [R]estart", g.err)
	case g.vm.Halted:
		return fmt.Sprintf("halted after %d steps  [R]estart", g.vm.Steps)
	case g.paused:
		return fmt.Sprintf("paused at node %d, %d steps  [Space] resume [N] step", g.vm.PC, g.vm.Steps)
	}
	return fmt.Sprintf("running, %d steps  [Space] pause", g.vm.Steps)
}

func (g *Game) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.status(), 0, 0)

	for y := 0; y < g.screen.Rows; y++ {
		line := g.screen.Line(y)
		if line == "" {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(0, float64(statusHeight+y*charHeight))
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, line, g.face, op)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return cols * charWidth, statusHeight + rows*charHeight
}

func main() {
	perFrame := flag.Int("steps", 1, "statements executed per frame")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: desktop [-steps N] <program>")
		os.Exit(2)
	}

	source, err := utils.ReadSource(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}

	prog, err := compiler.Compile(source)
	if err != nil {
		log.Fatalf("Compilation failed: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(2*cols*charWidth, 2*(statusHeight+rows*charHeight))
	ebiten.SetWindowTitle("irgen desktop")

	if err := ebiten.RunGame(newGame(prog, *perFrame)); err != nil {
		log.Fatal(err)
	}
}
