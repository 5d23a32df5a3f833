package viewer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-motion/engine/bezier"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
)

// Glyphs drawn for each kind of frame element.
const (
	GlyphPath         = '·'
	GlyphBody         = '@'
	GlyphBodyCulled   = 'x'
	GlyphChainRoot    = 'O'
	GlyphChainSegment = 'o'
	GlyphCamera       = 'C'
)

var (
	stylePath    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCulled  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleChain   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleCamera  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleFacing  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	facingGlyphs = [8]rune{'>', '\\', 'v', '/', '<', '\\', '^', '/'}
)

// Viewer draws a top-down projection of scene frames onto a terminal screen.
// World X maps to columns and world Z to rows; Y is ignored. Terminal cells are about twice
// as tall as they are wide, so X is stretched by two.
type Viewer struct {
	mu *sync.Mutex

	screen          tcell.Screen
	scale           float32 // rows per world unit
	center          [2]float32
	samplesPerCurve int

	paths [][][3]float32
}

// NewViewer creates a viewer on an initialized screen.
//
// Parameters:
//   - screen: the target screen
//   - options: functional options to configure the projection
//
// Returns:
//   - *Viewer: the viewer
func NewViewer(screen tcell.Screen, options ...ViewerBuilderOption) *Viewer {
	v := &Viewer{
		mu:              &sync.Mutex{},
		screen:          screen,
		scale:           1.5,
		samplesPerCurve: 16,
	}
	for _, option := range options {
		option(v)
	}
	return v
}

// SetPaths samples every path registered in s for the background layer.
//
// Parameters:
//   - s: the scene whose paths are drawn
func (v *Viewer) SetPaths(s scene.Scene) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paths = v.paths[:0]
	for _, name := range s.PathNames() {
		v.paths = append(v.paths, bezier.SamplePoints(s.Path(name), v.samplesPerCurve))
	}
}

// Project maps a world XZ position to a screen cell.
//
// Parameters:
//   - x, z: world coordinates
//
// Returns:
//   - col, row: the cell
//   - bool: false if the cell is off screen
func (v *Viewer) Project(x, z float32) (col, row int, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.project(x, z)
}

// project is Project without locking. The status line row is treated as off screen.
func (v *Viewer) project(x, z float32) (int, int, bool) {
	w, h := v.screen.Size()
	col := w/2 + int(math32.Round((x-v.center[0])*v.scale*2))
	row := (h-1)/2 + int(math32.Round((z-v.center[1])*v.scale))
	return col, row, col >= 0 && col < w && row >= 0 && row < h-1
}

// Draw renders one frame: path samples, chain segments, bodies, the camera with its facing
// and a status line. Later layers overwrite earlier ones.
//
// Parameters:
//   - f: the frame to draw
func (v *Viewer) Draw(f scene.Frame) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.screen.Clear()

	for _, samples := range v.paths {
		for _, p := range samples {
			v.put(p[0], p[2], GlyphPath, stylePath)
		}
	}

	for _, c := range f.Chains {
		for i, m := range c.Transforms {
			glyph := rune(GlyphChainSegment)
			if i == 0 {
				glyph = GlyphChainRoot
			}
			style := styleChain
			if i < len(c.Visible) && !c.Visible[i] {
				style = styleCulled
			}
			v.put(m[12], m[14], glyph, style)
		}
	}

	for _, b := range f.Bodies {
		if b.Visible {
			v.put(b.Position[0], b.Position[2], GlyphBody, styleBody)
		} else {
			v.put(b.Position[0], b.Position[2], GlyphBodyCulled, styleCulled)
		}
	}

	// front is the negated third row of the view matrix
	front := [2]float32{-f.View[2], -f.View[10]}
	cam := f.CameraPosition
	if l := math32.Hypot(front[0], front[1]); l > 1e-6 {
		step := 1 / v.scale
		v.put(cam[0]+front[0]/l*step, cam[2]+front[1]/l*step, facingGlyph(front), styleFacing)
	}
	v.put(cam[0], cam[2], GlyphCamera, styleCamera)

	w, h := v.screen.Size()
	status := fmt.Sprintf(" tick %d  t=%.2fs  fov=%.1f  bodies=%d  chains=%d ", f.Tick, f.Time, f.Fov, len(f.Bodies), len(f.Chains))
	for i, r := range []rune(status) {
		if i >= w {
			break
		}
		v.screen.SetContent(i, h-1, r, nil, styleStatus)
	}

	v.screen.Show()
}

// HandleEvent reacts to terminal events. Resizes resynchronize the screen.
//
// Parameters:
//   - ev: the event
//
// Returns:
//   - bool: false if the user asked to quit (Esc, Ctrl+C or q)
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			return false
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) put(x, z float32, glyph rune, style tcell.Style) {
	if col, row, ok := v.project(x, z); ok {
		v.screen.SetContent(col, row, glyph, nil, style)
	}
}

// facingGlyph picks one of eight direction markers for an XZ direction (+Z points down the screen).
func facingGlyph(dir [2]float32) rune {
	angle := math32.Atan2(dir[1], dir[0])
	octant := int(math32.Round(angle/(math32.Pi/4))+8) % 8
	return facingGlyphs[octant]
}
