package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/camera"
)

// movementBindings maps held keys to camera movement commands, applied in this order.
var movementBindings = []struct {
	key       uint32
	direction camera.Movement
}{
	{common.KeyW, camera.MovementForward},
	{common.KeyS, camera.MovementBackward},
	{common.KeyA, camera.MovementLeft},
	{common.KeyD, camera.MovementRight},
	{common.KeySpace, camera.MovementUp},
	{common.KeyLeftControl, camera.MovementDown},
	{common.KeyLeftAlt, camera.MovementDown},
}

// Input collects window events between ticks and turns them into camera commands.
// Window callbacks write into it from the event thread; the tick goroutine drains it with Apply.
// Thread-safe for concurrent access.
type Input interface {
	// KeyDown records a key press.
	//
	// Parameters:
	//   - key: the virtual key code
	KeyDown(key uint32)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - key: the virtual key code
	KeyUp(key uint32)

	// IsKeyDown reports whether key is currently held.
	IsKeyDown(key uint32) bool

	// Pressed reports whether key was pressed since the last call for that key.
	// Each press is reported once.
	//
	// Parameters:
	//   - key: the virtual key code
	//
	// Returns:
	//   - bool: true if a press is pending
	Pressed(key uint32) bool

	// MouseButtonDown records a mouse button press. The left button toggles cursor capture.
	//
	// Parameters:
	//   - button: the mouse button index
	MouseButtonDown(button int)

	// CursorMoved records an absolute cursor position. Offsets are accumulated only while the
	// cursor is captured; the first position after capture only seeds the reference point.
	//
	// Parameters:
	//   - x, y: cursor position in window pixels (y grows downward)
	CursorMoved(x, y float64)

	// Scrolled accumulates a scroll wheel offset.
	//
	// Parameters:
	//   - delta: vertical scroll offset (positive = up)
	Scrolled(delta float32)

	// Captured reports whether the cursor is captured for mouse look.
	Captured() bool

	// SetCaptured captures or releases the cursor and notifies the capture callback.
	//
	// Parameters:
	//   - captured: true to capture
	SetCaptured(captured bool)

	// SetCaptureCallback sets the function called whenever capture changes.
	//
	// Parameters:
	//   - callback: function receiving the new capture state (or nil)
	SetCaptureCallback(callback func(captured bool))

	// PendingLook returns the accumulated look offsets without draining them.
	//
	// Returns:
	//   - dx, dy: yaw and pitch offsets in pixels
	PendingLook() (dx, dy float32)

	// Apply issues one Move per held movement key, then drains the accumulated cursor and
	// scroll offsets into a single constrained Look and a single Zoom.
	//
	// Parameters:
	//   - ctrl: the controller to drive
	//   - dt: elapsed time in seconds
	Apply(ctrl camera.CameraController, dt float32)
}

type inputImpl struct {
	mu *sync.Mutex

	held    map[uint32]bool
	pressed map[uint32]bool

	captured  bool
	haveLast  bool
	lastX     float64
	lastY     float64
	lookX     float32
	lookY     float32
	scroll    float32
	onCapture func(captured bool)
}

var _ Input = &inputImpl{}

// NewInput creates an empty input tracker with the cursor released.
//
// Returns:
//   - Input: the tracker
func NewInput() Input {
	return &inputImpl{
		mu:      &sync.Mutex{},
		held:    make(map[uint32]bool),
		pressed: make(map[uint32]bool),
	}
}

func (in *inputImpl) KeyDown(key uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.held[key] {
		in.pressed[key] = true
	}
	in.held[key] = true
}

func (in *inputImpl) KeyUp(key uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	delete(in.held, key)
}

func (in *inputImpl) IsKeyDown(key uint32) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.held[key]
}

func (in *inputImpl) Pressed(key uint32) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	p := in.pressed[key]
	delete(in.pressed, key)
	return p
}

func (in *inputImpl) MouseButtonDown(button int) {
	if button != common.MouseButtonLeft {
		return
	}
	in.SetCaptured(!in.Captured())
}

func (in *inputImpl) CursorMoved(x, y float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.captured {
		return
	}
	if !in.haveLast {
		in.lastX, in.lastY = x, y
		in.haveLast = true
		return
	}
	in.lookX += float32(x - in.lastX)
	// screen y grows downward; moving the mouse up pitches up
	in.lookY += float32(in.lastY - y)
	in.lastX, in.lastY = x, y
}

func (in *inputImpl) Scrolled(delta float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.scroll += delta
}

func (in *inputImpl) Captured() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.captured
}

func (in *inputImpl) SetCaptured(captured bool) {
	in.mu.Lock()
	changed := in.captured != captured
	in.captured = captured
	in.haveLast = false
	in.lookX, in.lookY = 0, 0
	cb := in.onCapture
	in.mu.Unlock()

	if changed && cb != nil {
		cb(captured)
	}
}

func (in *inputImpl) SetCaptureCallback(callback func(captured bool)) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.onCapture = callback
}

func (in *inputImpl) PendingLook() (dx, dy float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.lookX, in.lookY
}

func (in *inputImpl) Apply(ctrl camera.CameraController, dt float32) {
	if ctrl == nil {
		return
	}

	in.mu.Lock()
	moves := make([]camera.Movement, 0, len(movementBindings))
	for _, b := range movementBindings {
		if in.held[b.key] && (len(moves) == 0 || moves[len(moves)-1] != b.direction) {
			moves = append(moves, b.direction)
		}
	}
	dx, dy, scroll := in.lookX, in.lookY, in.scroll
	in.lookX, in.lookY, in.scroll = 0, 0, 0
	in.mu.Unlock()

	for _, m := range moves {
		ctrl.Move(m, dt)
	}
	if dx != 0 || dy != 0 {
		ctrl.Look(dx, dy, true)
	}
	if scroll != 0 {
		ctrl.Zoom(scroll)
	}
}
