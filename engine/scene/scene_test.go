package scene

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/animator"
	"github.com/Carmen-Shannon/oxy-motion/engine/bezier"
	"github.com/Carmen-Shannon/oxy-motion/engine/camera"
	"github.com/Carmen-Shannon/oxy-motion/engine/chain"
	"github.com/Carmen-Shannon/oxy-motion/engine/config"
	"github.com/Carmen-Shannon/oxy-motion/engine/game_object"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardTol = 1e-5

// linePath is a single straight segment from the origin to (3, 0, 0) with evenly spaced
// control points, so Evaluate(t) = (3t, 0, 0).
func linePath() *bezier.Path {
	a, b := [3]float32{0, 0, 0}, [3]float32{3, 0, 0}
	return bezier.NewPath(bezier.NewCubicCurve(a, common.Lerp3(a, b, 1.0/3), common.Lerp3(a, b, 2.0/3), b))
}

// testCamera sits at (0, 0, 5) looking down -Z towards the origin.
func testCamera() camera.Camera {
	ctrl := camera.NewCameraController(camera.WithPosition(0, 0, 5))
	return camera.NewCamera(camera.WithController(ctrl))
}

func body(name string, p *bezier.Path, speed float32) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithName(name),
		game_object.WithFollower(bezier.NewFollower(p, bezier.WithSpeed(speed))),
	)
}

func TestNewScenePanicsWithoutCamera(t *testing.T) {
	assert.Panics(t, func() { NewScene("s", nil) })
}

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene("main", testCamera())
	assert.Equal(t, "main", s.Name())
	assert.True(t, s.Active())
	assert.NotNil(t, s.Animator())
	assert.Zero(t, s.Count())
	assert.Zero(t, s.TickCount())
	assert.Zero(t, s.Time())
	assert.False(t, s.CullingDisabled())
}

func TestAddGetRemoveClear(t *testing.T) {
	s := NewScene("s", testCamera())

	a := game_object.NewGameObject(game_object.WithName("a"))
	b := game_object.NewGameObject(game_object.WithName("b"), game_object.WithID(10))
	e := game_object.NewGameObject(game_object.WithName("e"), game_object.WithEphemeral(true))

	assert.Equal(t, uint64(1), s.Add(a))
	assert.Equal(t, uint64(10), s.Add(b))
	assert.Equal(t, uint64(11), s.Add(e), "IDs continue after the largest explicit ID")

	assert.Equal(t, 2, s.Count())
	assert.Equal(t, 1, s.CountEphemeral())
	assert.Same(t, a, s.Get(1))
	assert.Nil(t, s.Get(11), "ephemeral objects are not in the registry")

	objs := s.Objects()
	require.Len(t, objs, 3)
	assert.Equal(t, []string{"a", "b", "e"}, []string{objs[0].Name(), objs[1].Name(), objs[2].Name()})

	s.Remove(1)
	assert.Nil(t, s.Get(1))
	assert.Equal(t, 1, s.Count())

	s.Clear()
	assert.Zero(t, s.Count())
	assert.Zero(t, s.CountEphemeral())
}

func TestPathRegistry(t *testing.T) {
	p1, p2 := linePath(), linePath()
	s := NewScene("s", testCamera(), WithPath("one", p1))
	s.AddPath("two", p2)
	s.AddPath("one", p2)

	assert.Equal(t, []string{"one", "two"}, s.PathNames())
	assert.Same(t, p2, s.Path("one"))
	assert.Nil(t, s.Path("missing"))
}

func TestTickAdvancesBodies(t *testing.T) {
	s := NewScene("s", testCamera())
	id := s.Add(body("b", linePath(), 0.5))

	s.Tick(0.5)
	assert.Equal(t, uint64(1), s.TickCount())
	assert.InDelta(t, 0.5, s.Time(), standardTol)

	x, y, z := s.Get(id).Position()
	assert.InDelta(t, 0.75, x, standardTol)
	assert.InDelta(t, 0, y, standardTol)
	assert.InDelta(t, 0, z, standardTol)
}

func TestTickSkipsDisabledBodies(t *testing.T) {
	s := NewScene("s", testCamera())
	obj := body("b", linePath(), 0.5)
	obj.SetEnabled(false)
	s.Add(obj)

	s.Tick(0.5)
	x, _, _ := obj.Position()
	assert.InDelta(t, 0, x, standardTol)
	assert.Empty(t, s.Frame().Bodies)
}

func TestTickAnimatesChains(t *testing.T) {
	params := animator.WaveParams{Speed: 2, Amplitude: 0.3, Wavelength: 0.5}
	s := NewScene("s", testCamera(), WithAnimator(animator.NewAnimator(animator.WithParams(params))))
	c := chain.NewChain(4, 0.5)
	s.Add(game_object.NewGameObject(game_object.WithChain(c)))

	s.Tick(0.25)
	s.Tick(0.25)
	for i := range 4 {
		expected := math32.Sin(0.5*params.Speed-float32(i)*params.Wavelength) * params.Amplitude
		assert.InDelta(t, expected, c.Angle(i), standardTol, "segment %d", i)
	}
}

func TestTickPausedAnimatorFreezesChain(t *testing.T) {
	anim := animator.NewAnimator(animator.WithPaused(true))
	s := NewScene("s", testCamera(), WithAnimator(anim))
	c := chain.NewChain(3, 0.5)
	s.Add(game_object.NewGameObject(game_object.WithChain(c)))

	for range 10 {
		s.Tick(0.1)
	}
	for i := range 3 {
		assert.Zero(t, c.Angle(i))
	}

	anim.SetPaused(false)
	s.Tick(0.1)
	assert.NotZero(t, c.Angle(0))
}

func TestTickWithWorkerPool(t *testing.T) {
	p := linePath()
	s := NewScene("s", testCamera(), WithComputeWorkers(2))
	t.Cleanup(s.Close)

	ids := make([]uint64, 0, 16)
	for range 16 {
		ids = append(ids, s.Add(body("b", p, 0.25)))
	}

	for range 2 {
		s.Tick(0.5)
	}
	for _, id := range ids {
		x, _, _ := s.Get(id).Position()
		assert.InDelta(t, 0.75, x, standardTol, "object %d", id)
	}

	s.Close()
	s.Tick(0.5)
	x, _, _ := s.Get(ids[0]).Position()
	assert.InDelta(t, 1.125, x, standardTol, "ticks run inline after Close")
}

func TestFrameContents(t *testing.T) {
	s := NewScene("s", testCamera())
	s.Add(body("near", linePath(), 0))
	behind := game_object.NewGameObject(game_object.WithName("behind"), game_object.WithPosition(0, 0, 50))
	s.Add(behind)
	c := chain.NewChain(3, 0.5)
	chainID := s.Add(game_object.NewGameObject(game_object.WithName("chain"), game_object.WithChain(c)))

	s.Tick(0.1)
	f := s.Frame()

	assert.Equal(t, uint64(1), f.Tick)
	assert.InDelta(t, 0.1, f.Time, standardTol)
	assert.InDelta(t, 45, f.Fov, standardTol)
	assert.Equal(t, [3]float32{0, 0, 5}, f.CameraPosition)
	assert.Equal(t, s.Camera().ViewProjectionMatrix(), f.ViewProjection)

	require.Len(t, f.Bodies, 3)
	assert.Equal(t, "near", f.Bodies[0].Name)
	assert.True(t, f.Bodies[0].Visible)
	assert.Equal(t, "behind", f.Bodies[1].Name)
	assert.False(t, f.Bodies[1].Visible)

	require.Len(t, f.Chains, 1)
	cf := f.Chains[0]
	assert.Equal(t, chainID, cf.BodyID)
	require.Len(t, cf.Transforms, 3)
	require.Len(t, cf.Angles, 3)
	for i := range 3 {
		assert.Equal(t, c.Angle(i), cf.Angles[i])
		assert.True(t, cf.Visible[i])
	}
}

func TestFrameCullingDisabled(t *testing.T) {
	s := NewScene("s", testCamera(), WithCullingDisabled(true))
	s.Add(game_object.NewGameObject(game_object.WithPosition(0, 0, 50)))
	s.Tick(0.1)
	require.Len(t, s.Frame().Bodies, 1)
	assert.True(t, s.Frame().Bodies[0].Visible)

	s.SetCullingDisabled(false)
	assert.False(t, s.Frame().Bodies[0].Visible)
}

func TestFrameDoesNotMixTicks(t *testing.T) {
	ctrl := camera.NewCameraController(camera.WithPosition(0, 0, 5), camera.WithMovementSpeed(1))
	s := NewScene("s", camera.NewCamera(camera.WithController(ctrl)), WithComputeWorkers(2))
	t.Cleanup(s.Close)
	p := linePath()
	for range 4 {
		s.Add(body("b", p, 0.1))
	}

	const ticks = 400
	const dt = 0.01
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range ticks {
			ctrl.Move(camera.MovementUp, dt)
			s.Tick(dt)
		}
	}()

	for s.TickCount() < ticks {
		f := s.Frame()
		// body x = 3 * 0.1 * elapsed, camera y = elapsed
		elapsed := float32(f.Tick) * dt
		require.Len(t, f.Bodies, 4)
		for _, b := range f.Bodies {
			require.InDelta(t, 0.3*elapsed, b.Position[0], 1e-3, "tick %d", f.Tick)
		}
		require.InDelta(t, elapsed, f.CameraPosition[1], 1e-3, "tick %d", f.Tick)
	}
	wg.Wait()
}

func TestFrameUsesCameraStateFromLastTick(t *testing.T) {
	ctrl := camera.NewCameraController(camera.WithPosition(0, 0, 5), camera.WithMovementSpeed(1))
	s := NewScene("s", camera.NewCamera(camera.WithController(ctrl)))
	s.Tick(0.1)

	ctrl.Move(camera.MovementUp, 1)
	ctrl.Zoom(15)
	f := s.Frame()
	assert.Equal(t, [3]float32{0, 0, 5}, f.CameraPosition)
	assert.InDelta(t, 45, f.Fov, standardTol)

	s.Tick(0.1)
	f = s.Frame()
	assert.Equal(t, [3]float32{0, 1, 5}, f.CameraPosition)
	assert.InDelta(t, 30, f.Fov, standardTol)
	assert.Equal(t, ctrl.ViewMatrix(), f.View)
}

func TestNewSceneFromDefaultConfig(t *testing.T) {
	cfg := config.Default()
	s, err := NewSceneFromConfig("default", cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"loop", "wide"}, s.PathNames())
	assert.Equal(t, 2, s.Count())

	var chainBody game_object.GameObject
	for _, obj := range s.Objects() {
		if obj.Name() == ChainBodyName {
			chainBody = obj
		}
	}
	require.NotNil(t, chainBody)
	require.NotNil(t, chainBody.Chain())
	require.NotNil(t, chainBody.Follower())
	assert.Equal(t, cfg.Chain.Segments, chainBody.Chain().SegmentCount())
	assert.Same(t, s.Path("wide"), chainBody.Follower().Path())

	assert.Equal(t, animator.WaveParams{
		Speed:      cfg.Chain.WaveSpeed,
		Amplitude:  cfg.Chain.WaveAmplitude,
		Wavelength: cfg.Chain.Wavelength,
	}, s.Animator().Params())

	ctrl := s.Camera().Controller()
	require.NotNil(t, ctrl)
	x, y, z := ctrl.Position()
	assert.Equal(t, [3]float32{-1, 1, -1}, [3]float32{x, y, z})
	front := ctrl.Front()
	expected, _ := common.Normalize3([3]float32{1, -1, 1})
	for i := range 3 {
		assert.InDelta(t, expected[i], front[i], 1e-4)
	}

	s.Tick(0.1)
	f := s.Frame()
	assert.Len(t, f.Bodies, 2)
	require.Len(t, f.Chains, 1)
	assert.Len(t, f.Chains[0].Transforms, cfg.Chain.Segments)
}

func TestNewSceneFromConfigChainDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Chain.Enabled = false
	s, err := NewSceneFromConfig("s", cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count())
}

func TestNewSceneFromConfigZeroLookaheadUsesDefault(t *testing.T) {
	cfg := config.Default()
	cfg.Bodies[0].Lookahead = 0
	s, err := NewSceneFromConfig("s", cfg)
	require.NoError(t, err)
	for range 20 {
		s.Tick(0.05)
	}
	for _, b := range s.Frame().Bodies {
		for _, v := range b.Model {
			assert.False(t, math32.IsNaN(v))
		}
	}
}

func TestNewSceneFromConfigErrors(t *testing.T) {
	_, err := NewSceneFromConfig("s", nil)
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Bodies[0].Path = "missing"
	_, err = NewSceneFromConfig("s", cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Engine.TickRate = 0
	_, err = NewSceneFromConfig("s", cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Bodies[0].Speed = -0.25
	_, err = NewSceneFromConfig("s", cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Chain.Speed = -0.1
	_, err = NewSceneFromConfig("s", cfg)
	assert.Error(t, err)
}
