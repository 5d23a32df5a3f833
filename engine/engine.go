package engine

import (
	"log"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/input"
	"github.com/Carmen-Shannon/oxy-motion/engine/profiler"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
	"github.com/Carmen-Shannon/oxy-motion/engine/window"
)

// engine implements the Engine interface.
// Coordinates the tick, frame and window threads.
type engine struct {
	mu *sync.RWMutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	input  input.Input

	profiler         *profiler.Profiler
	profileInterval  time.Duration
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	frameCallback  func(key int, f scene.Frame)

	scenes map[int]scene.Scene

	frameLimit time.Duration // minimum time between delivered frames; 0 = uncapped
}

// Engine is the main entry point for the motion engine.
// It runs the fixed-rate tick loop that advances every active scene, a frame loop that
// delivers scene snapshots to a consumer, and (optionally) a window feeding camera input.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Input returns the input tracker drained into the controlled scene's camera every tick.
	//
	// Returns:
	//   - input.Input: the tracker
	Input() input.Input

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps float64)

	// SetTickCallback registers a function called each tick after input is applied and
	// before the scenes advance.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetFrameCallback registers the consumer of scene snapshots. It is called from the frame
	// goroutine once per active scene per frame, in ascending key order.
	//
	// Parameters:
	//   - callback: function receiving the scene key and its frame
	SetFrameCallback(callback func(key int, f scene.Frame))

	// SetFrameLimit sets an optional frame delivery cap in frames per second.
	// Pass 0 to uncap the frame loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// AddScene registers a scene at the given key.
	// The active scene with the lowest key receives camera input.
	//
	// Parameters:
	//   - key: ordering key (lower first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given key.
	//
	// Parameters:
	//   - key: the key of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the key of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes by key.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Step runs one tick synchronously: input, tick callback and every active scene.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	Step(deltaTime float32)

	// Run starts the tick and frame goroutines and blocks until Quit is called or the
	// window closes.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done returns a channel closed once the engine has been asked to quit.
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
// When a window is supplied its input events are routed into the engine's input tracker,
// cursor capture follows left clicks, and resizing updates every scene camera's aspect ratio.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.RWMutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenes:          make(map[int]scene.Scene),
		input:           input.NewInput(),
		profileInterval: time.Second,
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}
	e.profiler = profiler.NewProfiler(e.profileInterval)

	if e.window != nil {
		e.bindWindow(e.window)
	}
	return e
}

// bindWindow routes window events into the input tracker and scene cameras.
func (e *engine) bindWindow(w window.Window) {
	in := e.input
	w.SetKeyDownCallback(in.KeyDown)
	w.SetKeyUpCallback(in.KeyUp)
	w.SetMouseButtonDownCallback(in.MouseButtonDown)
	w.SetMouseMoveCallback(in.CursorMoved)
	w.SetScrollCallback(in.Scrolled)
	in.SetCaptureCallback(w.SetCursorCaptured)

	w.SetResizeCallback(func(width, height int) {
		if height <= 0 {
			return
		}
		for _, s := range e.Scenes() {
			if c := s.Camera(); c != nil {
				c.SetAspect(float32(width) / float32(height))
			}
		}
	})
	if w.Height() > 0 {
		aspect := float32(w.Width()) / float32(w.Height())
		for _, s := range e.Scenes() {
			if c := s.Camera(); c != nil {
				c.SetAspect(aspect)
			}
		}
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Input() input.Input {
	return e.input
}

func (e *engine) Run() {
	e.running.Store(true)
	e.handle()
	if e.window != nil {
		// The window may only be closed from the event thread.
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				e.closeWindow()
			default:
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
		e.closeWindow()
	} else {
		<-e.quitChannel
	}
	e.wg.Wait()
	e.running.Store(false)
}

// closeWindow closes the window unless the update callback already did.
func (e *engine) closeWindow() {
	if e.window.Closed() {
		return
	}
	if err := e.window.Close(); err != nil {
		log.Printf("[Engine] failed to close window: %v", err)
	}
}

func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal all goroutines to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handle launches the tick and frame goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleTick()
	go e.handleFrames()
}

// handleTick runs the fixed-rate tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleTick() {
	defer e.wg.Done()
	defer e.recoverAndQuit("tick")

	e.mu.RLock()
	rate := e.engineTickRate
	e.mu.RUnlock()
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.Step(dt)
			if e.profilingEnabled.Load() {
				e.profiler.RecordTick(time.Since(now))
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

func (e *engine) Step(deltaTime float32) {
	active := e.activeScenes()
	e.mu.RLock()
	cb := e.tickCallback
	e.mu.RUnlock()

	if e.input.Pressed(common.KeyP) {
		for _, s := range active {
			if a := s.Animator(); a != nil {
				paused := a.TogglePause()
				log.Printf("[Engine] scene %q wave paused: %t", s.Name(), paused)
			}
		}
	}
	if len(active) > 0 {
		if c := active[0].Camera(); c != nil {
			e.input.Apply(c.Controller(), deltaTime)
		}
	}

	if cb != nil {
		cb(deltaTime)
	}
	for _, s := range active {
		s.Tick(deltaTime)
	}
}

// handleFrames delivers a snapshot of every active scene to the frame callback, optionally
// rate limited. Recovers from panics in the consumer and signals quit.
func (e *engine) handleFrames() {
	defer e.wg.Done()
	defer e.recoverAndQuit("frame")

	lastTick := make(map[int]uint64)
	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		start := time.Now()
		e.mu.RLock()
		cb := e.frameCallback
		limit := e.frameLimit
		keys := e.sortedKeys()
		scenes := make([]scene.Scene, 0, len(keys))
		for _, k := range keys {
			scenes = append(scenes, e.scenes[k])
		}
		e.mu.RUnlock()

		delivered := false
		for i, s := range scenes {
			if !s.Active() {
				continue
			}
			// only deliver scenes that ticked since the last delivery
			tc := s.TickCount()
			if lastTick[keys[i]] == tc {
				continue
			}
			if cb != nil {
				// a tick may land between TickCount and Frame; the frame knows its own tick
				f := s.Frame()
				tc = f.Tick
				cb(keys[i], f)
			}
			lastTick[keys[i]] = tc
			delivered = true
		}
		if delivered && e.profilingEnabled.Load() {
			e.profiler.Frame()
		}

		wait := limit - time.Since(start)
		if !delivered && wait < time.Millisecond {
			wait = time.Millisecond
		}
		if wait > 0 {
			select {
			case <-e.quitChannel:
				return
			case <-time.After(wait):
			}
		}
	}
}

// recoverAndQuit logs a panic from an engine goroutine and shuts the engine down.
func (e *engine) recoverAndQuit(name string) {
	if r := recover(); r != nil {
		log.Printf("[Engine] %s goroutine recovered from panic: %v", name, r)
		e.signalQuit()
	}
}

// activeScenes returns the active scenes in ascending key order.
func (e *engine) activeScenes() []scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]scene.Scene, 0, len(e.scenes))
	for _, k := range e.sortedKeys() {
		if s := e.scenes[k]; s.Active() {
			out = append(out, s)
		}
	}
	return out
}

// sortedKeys returns the scene keys in ascending order. Caller must hold the lock.
func (e *engine) sortedKeys() []int {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(tps float64) {
	newRate := tickInterval(tps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
		return
	}
	e.mu.Lock()
	e.engineTickRate = newRate
	e.mu.Unlock()
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) SetFrameCallback(callback func(key int, f scene.Frame)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

func (e *engine) SetFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameLimit = frameInterval(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

// tickInterval converts a rate to a ticker period, defaulting to 60 Hz.
func tickInterval(tps float64) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Duration(float64(time.Second) / tps)
}

// frameInterval converts a frame cap to a minimum frame period; 0 means uncapped.
func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
