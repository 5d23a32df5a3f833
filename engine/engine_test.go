package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/camera"
	"github.com/Carmen-Shannon/oxy-motion/engine/config"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
	"github.com/Carmen-Shannon/oxy-motion/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T, name string) scene.Scene {
	t.Helper()
	s, err := scene.NewSceneFromConfig(name, config.Default())
	require.NoError(t, err)
	return s
}

// runAsync starts Run and returns a channel closed when it returns.
func runAsync(e Engine) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	return done
}

func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine().(*engine)
	assert.Equal(t, time.Second/60, e.engineTickRate)
	assert.Zero(t, e.frameLimit)
	assert.False(t, e.profilingEnabled.Load())
	assert.NotNil(t, e.Input())
	assert.Nil(t, e.Window())
}

func TestWithEngineConfig(t *testing.T) {
	cfg := config.EngineConfig{TickRate: 120, FrameLimit: 30, Profiling: true, ProfileInterval: 2}
	e := NewEngine(WithEngineConfig(cfg)).(*engine)
	assert.Equal(t, time.Duration(float64(time.Second)/120), e.engineTickRate)
	assert.Equal(t, time.Duration(float64(time.Second)/30), e.frameLimit)
	assert.True(t, e.profilingEnabled.Load())
	assert.Equal(t, 2*time.Second, e.profileInterval)
}

func TestSetTickRateBeforeRun(t *testing.T) {
	e := NewEngine().(*engine)
	e.SetTickRate(250)
	assert.Equal(t, 4*time.Millisecond, e.engineTickRate)
	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)
}

func TestSceneRegistry(t *testing.T) {
	a, b := newTestScene(t, "a"), newTestScene(t, "b")
	e := NewEngine(WithScene(1, a))
	e.AddScene(0, b)

	assert.Same(t, a, e.Scene(1))
	assert.Len(t, e.Scenes(), 2)
	e.RemoveScene(1)
	assert.Nil(t, e.Scene(1))
	assert.Len(t, e.Scenes(), 1)
}

func TestStepAdvancesActiveScenes(t *testing.T) {
	a, b := newTestScene(t, "a"), newTestScene(t, "b")
	b.SetActive(false)
	e := NewEngine(WithScene(0, a), WithScene(1, b))

	var calls int
	e.SetTickCallback(func(dt float32) {
		calls++
		assert.InDelta(t, 0.1, dt, 1e-6)
	})
	e.Step(0.1)
	e.Step(0.1)

	assert.Equal(t, 2, calls)
	assert.Equal(t, uint64(2), a.TickCount())
	assert.Zero(t, b.TickCount())
}

func TestStepDrivesLowestKeyCamera(t *testing.T) {
	a, b := newTestScene(t, "a"), newTestScene(t, "b")
	e := NewEngine(WithScene(5, a), WithScene(2, b))

	before := b.Camera().Controller().Front()
	startA := a.Camera().Controller()
	ax, ay, az := startA.Position()

	e.Input().KeyDown(common.KeyW)
	e.Step(0.5)

	x, y, z := b.Camera().Controller().Position()
	speed := b.Camera().Controller().MovementSpeed()
	cfg := config.Default()
	assert.InDelta(t, cfg.Camera.Position[0]+before[0]*speed*0.5, x, 1e-5)
	assert.InDelta(t, cfg.Camera.Position[1]+before[1]*speed*0.5, y, 1e-5)
	assert.InDelta(t, cfg.Camera.Position[2]+before[2]*speed*0.5, z, 1e-5)

	x, y, z = startA.Position()
	assert.Equal(t, [3]float32{ax, ay, az}, [3]float32{x, y, z}, "only the controlled scene moves")
}

func TestStepTogglesPauseOnP(t *testing.T) {
	s := newTestScene(t, "s")
	e := NewEngine(WithScene(0, s))
	require.False(t, s.Animator().Paused())

	e.Input().KeyDown(common.KeyP)
	e.Step(0.01)
	assert.True(t, s.Animator().Paused())

	e.Step(0.01)
	assert.True(t, s.Animator().Paused(), "a held key toggles once")

	e.Input().KeyUp(common.KeyP)
	e.Input().KeyDown(common.KeyP)
	e.Step(0.01)
	assert.False(t, s.Animator().Paused())
}

func TestRunHeadlessDeliversFrames(t *testing.T) {
	s := newTestScene(t, "s")
	frames := make(chan scene.Frame, 64)
	e := NewEngine(
		WithScene(0, s),
		WithTickRate(500),
		WithProfiling(true),
		WithProfileInterval(10*time.Millisecond),
		WithFrameCallback(func(key int, f scene.Frame) {
			assert.Equal(t, 0, key)
			select {
			case frames <- f:
			default:
			}
		}),
	)
	done := runAsync(e)

	var last scene.Frame
	for range 3 {
		select {
		case f := <-frames:
			assert.Greater(t, f.Tick, last.Tick, "frames are only delivered after new ticks")
			last = f
		case <-time.After(5 * time.Second):
			t.Fatal("no frame delivered")
		}
	}
	e.Quit()
	e.Quit()
	waitClosed(t, done, "Run to return")
	waitClosed(t, e.Done(), "Done")
}

func TestFramePanicQuitsEngine(t *testing.T) {
	s := newTestScene(t, "s")
	var calls atomic.Int32
	e := NewEngine(
		WithScene(0, s),
		WithTickRate(500),
		WithFrameCallback(func(int, scene.Frame) {
			calls.Add(1)
			panic("consumer failure")
		}),
	)
	done := runAsync(e)
	waitClosed(t, done, "Run to return after panic")
	assert.Equal(t, int32(1), calls.Load())
}

func TestSetTickRateWhileRunning(t *testing.T) {
	s := scene.NewScene("s", camera.NewCamera(camera.WithController(camera.NewCameraController())))
	e := NewEngine(WithScene(0, s), WithTickRate(1000))
	done := runAsync(e)

	e.SetTickRate(200)
	require.Eventually(t, func() bool {
		impl := e.(*engine)
		impl.mu.RLock()
		defer impl.mu.RUnlock()
		return impl.engineTickRate == 5*time.Millisecond
	}, 5*time.Second, 5*time.Millisecond)

	e.Quit()
	waitClosed(t, done, "Run to return")
}

// stubWindow runs an event loop without a platform window. userClose makes ProcessMessages
// return as if the user closed the window, without calling Close.
type stubWindow struct {
	mu        sync.Mutex
	onUpdate  func()
	running   bool
	closed    bool
	userClose chan struct{}

	closeCalls  atomic.Int32
	closeErrors atomic.Int32
}

var _ window.Window = &stubWindow{}

func newStubWindow() *stubWindow {
	return &stubWindow{running: true, userClose: make(chan struct{})}
}

func (w *stubWindow) SetUpdateCallback(cb func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onUpdate = cb
}

func (w *stubWindow) SetResizeCallback(func(width, height int)) {}
func (w *stubWindow) SetScrollCallback(func(delta float32)) {}
func (w *stubWindow) SetKeyDownCallback(func(keyCode uint32)) {}
func (w *stubWindow) SetKeyUpCallback(func(keyCode uint32)) {}
func (w *stubWindow) SetMouseButtonDownCallback(func(button int)) {}
func (w *stubWindow) SetMouseMoveCallback(func(x, y float64)) {}
func (w *stubWindow) SetCursorCaptured(bool) {}
func (w *stubWindow) SetTitle(string) {}
func (w *stubWindow) Width() int { return 1280 }
func (w *stubWindow) Height() int { return 720 }

func (w *stubWindow) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running && !w.closed
}

func (w *stubWindow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *stubWindow) Close() error {
	w.closeCalls.Add(1)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.closeErrors.Add(1)
		return errors.New("window is not initialized")
	}
	w.closed = true
	w.running = false
	return nil
}

func (w *stubWindow) ProcessMessages() {
	for w.IsRunning() {
		select {
		case <-w.userClose:
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return
		case <-time.After(time.Millisecond):
		}
		w.mu.Lock()
		cb := w.onUpdate
		w.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}

func TestRunClosesWindowOnceOnQuit(t *testing.T) {
	w := newStubWindow()
	e := NewEngine(WithScene(0, newTestScene(t, "s")), WithWindow(w))
	done := runAsync(e)

	require.Eventually(t, w.IsRunning, time.Second, time.Millisecond)
	e.Quit()
	waitClosed(t, done, "Run to return")

	assert.True(t, w.Closed())
	assert.Equal(t, int32(1), w.closeCalls.Load())
	assert.Zero(t, w.closeErrors.Load())
}

func TestRunClosesWindowAfterUserClose(t *testing.T) {
	w := newStubWindow()
	e := NewEngine(WithScene(0, newTestScene(t, "s")), WithWindow(w))
	done := runAsync(e)

	close(w.userClose)
	waitClosed(t, done, "Run to return")
	waitClosed(t, e.Done(), "Done")

	assert.True(t, w.Closed(), "the platform window is released after the event loop ends")
	assert.Equal(t, int32(1), w.closeCalls.Load())
	assert.Zero(t, w.closeErrors.Load())
}
