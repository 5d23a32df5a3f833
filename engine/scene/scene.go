package scene

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-motion/engine/animator"
	"github.com/Carmen-Shannon/oxy-motion/engine/bezier"
	"github.com/Carmen-Shannon/oxy-motion/engine/camera"
	"github.com/Carmen-Shannon/oxy-motion/engine/chain"
	"github.com/Carmen-Shannon/oxy-motion/engine/game_object"
)

// Scene owns everything that moves: the camera, the shared paths, the path-following
// GameObjects (with any attached segment chains) and the wave Animator that drives those
// chains. The engine's tick goroutine calls Tick; consumers read snapshots through Frame.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently ticked by the engine.
	Active() bool

	// SetActive sets whether this scene is ticked by the engine.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Animator returns the wave animator applied to every attached chain.
	Animator() animator.Animator

	// SetAnimator replaces the wave animator.
	//
	// Parameters:
	//   - a: the new animator
	SetAnimator(a animator.Animator)

	// AddPath registers a shared path under a name, replacing any previous path with that name.
	//
	// Parameters:
	//   - name: the path name
	//   - p: the path
	AddPath(name string, p *bezier.Path)

	// Path returns the path registered under name, or nil.
	//
	// Parameters:
	//   - name: the path name
	//
	// Returns:
	//   - *bezier.Path: the path or nil
	Path(name string) *bezier.Path

	// PathNames returns the registered path names in registration order.
	//
	// Returns:
	//   - []string: the names
	PathNames() []string

	// Count returns the number of persisted GameObjects in the scene's registry. Does not include ephemeral objects.
	//
	// Returns:
	//   - int: count of non-ephemeral GameObjects in the registry
	Count() int

	// CountEphemeral returns the number of ephemeral GameObjects currently updated by the scene.
	//
	// Returns:
	//   - int: count of ephemeral GameObjects
	CountEphemeral() int

	// Add adds a GameObject to the scene. Objects without an ID are assigned one.
	// Non-ephemeral objects are persisted in the registry for later lookup or removal by ID;
	// ephemeral objects are updated every tick until Clear.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a non-ephemeral GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a non-ephemeral GameObject from the registry by ID.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Objects returns every object in the scene ordered by ID, ephemeral objects included.
	//
	// Returns:
	//   - []game_object.GameObject: the objects
	Objects() []game_object.GameObject

	// Clear removes all objects from the scene. Paths, camera and animator are kept.
	Clear()

	// CullingDisabled returns whether frames skip the frustum visibility test.
	//
	// Returns:
	//   - bool: true if culling is disabled
	CullingDisabled() bool

	// SetCullingDisabled enables or disables the frustum visibility test for frames.
	//
	// Parameters:
	//   - disabled: true to mark everything visible
	SetCullingDisabled(disabled bool)

	// Time returns the accumulated simulation time in seconds.
	Time() float32

	// TickCount returns the number of ticks applied so far.
	TickCount() uint64

	// Tick advances the simulation by deltaTime: every enabled object's follower advances,
	// the animator applies the wave at the new elapsed time to every attached chain, and the
	// camera matrices are refreshed. Camera move/look/zoom commands for this tick must be
	// applied before calling Tick.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last tick in seconds
	Tick(deltaTime float32)

	// Frame captures the transforms produced by the last Tick for a rendering consumer.
	// Frame and Tick exclude each other, so every field of a frame belongs to the same tick.
	//
	// Returns:
	//   - Frame: the snapshot
	Frame() Frame

	// Close stops the update worker pool, if any. Later ticks update objects inline.
	Close()
}

type scene struct {
	mu *sync.RWMutex
	// tickMu is held for a whole Tick or Frame.
	tickMu *sync.Mutex

	name   string
	active bool

	cam  camera.Camera
	anim animator.Animator

	paths     map[string]*bezier.Path
	pathNames []string

	registry  map[uint64]game_object.GameObject // non-ephemeral objects by ID
	ephemeral []game_object.GameObject
	nextID    uint64

	elapsed   float32
	tickCount uint64

	cullingDisabled bool

	// updatePool fans object updates out when computeWorkers > 0. Workers persist across
	// ticks, avoiding per-tick goroutine spawn/teardown overhead.
	updatePool     worker.DynamicWorkerPool
	computeWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera. A default wave Animator is created
// unless one is supplied with WithAnimator. Panics if cam is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:       &sync.RWMutex{},
		tickMu:   &sync.Mutex{},
		name:     name,
		active:   true,
		cam:      cam,
		paths:    make(map[string]*bezier.Path),
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
	}

	for _, option := range options {
		option(s)
	}

	if s.anim == nil {
		s.anim = animator.NewAnimator()
	}
	// Initialize the pool after options so WithComputeWorkers can enable it.
	// Queue size of 256 accommodates typical body counts with headroom.
	if s.computeWorkers > 0 {
		s.updatePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Animator() animator.Animator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.anim
}

func (s *scene) SetAnimator(a animator.Animator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anim = a
}

func (s *scene) AddPath(name string, p *bezier.Path) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addPath(name, p)
}

// addPath registers p. Caller must hold the write lock (or be a builder option).
func (s *scene) addPath(name string, p *bezier.Path) {
	if _, exists := s.paths[name]; !exists {
		s.pathNames = append(s.pathNames, name)
	}
	s.paths[name] = p
}

func (s *scene) Path(name string) *bezier.Path {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paths[name]
}

func (s *scene) PathNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.pathNames))
	copy(out, s.pathNames)
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) CountEphemeral() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ephemeral)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj)
}

// add assigns an ID and stores obj. Caller must hold the write lock (or be a builder option).
func (s *scene) add(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	if obj.Ephemeral() {
		s.ephemeral = append(s.ephemeral, obj)
	} else {
		s.registry[obj.ID()] = obj
	}
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects()
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
	s.ephemeral = nil
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) Time() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.elapsed
}

func (s *scene) TickCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tickCount
}

func (s *scene) Tick(deltaTime float32) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.mu.Lock()
	s.elapsed += deltaTime
	s.tickCount++
	now := s.elapsed
	objects := s.objects()
	anim, cam, pool := s.anim, s.cam, s.updatePool
	s.mu.Unlock()

	// Each object is updated by exactly one goroutine; followers only share read-only paths.
	if pool != nil && len(objects) > 1 {
		var wg sync.WaitGroup
		for i, obj := range objects {
			wg.Add(1)
			o := obj
			pool.SubmitTask(worker.Task{
				ID: i,
				Do: func() (any, error) {
					defer wg.Done()
					o.Update(deltaTime)
					return nil, nil
				},
			})
		}
		wg.Wait()
	} else {
		for _, obj := range objects {
			obj.Update(deltaTime)
		}
	}

	if anim != nil {
		chains := make([]chain.Chain, 0, len(objects))
		for _, obj := range objects {
			if c := obj.Chain(); c != nil && obj.Enabled() {
				chains = append(chains, c)
			}
		}
		anim.Animate(now, chains...)
	}

	if cam != nil {
		cam.Update()
	}
}

func (s *scene) Close() {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.mu.Lock()
	pool := s.updatePool
	s.updatePool = nil
	s.mu.Unlock()
	if pool != nil {
		pool.Stop()
	}
}

// objects returns registry and ephemeral objects ordered by ID.
// Caller must hold the lock.
func (s *scene) objects() []game_object.GameObject {
	out := make([]game_object.GameObject, 0, len(s.registry)+len(s.ephemeral))
	for _, obj := range s.registry {
		out = append(out, obj)
	}
	out = append(out, s.ephemeral...)
	sortByID(out)
	return out
}
