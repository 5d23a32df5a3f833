package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/animator"
	"github.com/Carmen-Shannon/oxy-motion/engine/bezier"
	"github.com/Carmen-Shannon/oxy-motion/engine/camera"
	"github.com/Carmen-Shannon/oxy-motion/engine/chain"
	"github.com/Carmen-Shannon/oxy-motion/engine/config"
	"github.com/Carmen-Shannon/oxy-motion/engine/game_object"
)

// ChainBodyName is the name given to the object that carries the configured chain.
const ChainBodyName = "chain"

// NewSceneFromConfig builds a complete scene from a validated configuration: the camera and
// controller, every named path, one body per BodyConfig and, when enabled, a body carrying
// the segment chain. Additional options are applied after the configured ones.
//
// Parameters:
//   - name: the name of the scene
//   - cfg: the configuration
//   - options: functional options applied after the configuration
//
// Returns:
//   - Scene: the new scene
//   - error: an error if the configuration is invalid
func NewSceneFromConfig(name string, cfg *config.Config, options ...SceneBuilderOption) (Scene, error) {
	if cfg == nil {
		return nil, fmt.Errorf("scene %q: nil config", name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}

	cam := NewCameraFromConfig(cfg.Camera)

	paths := make(map[string]*bezier.Path, len(cfg.Paths))
	opts := make([]SceneBuilderOption, 0, len(cfg.Paths)+4)
	for _, pc := range cfg.Paths {
		p := NewPathFromConfig(pc)
		paths[pc.Name] = p
		opts = append(opts, WithPath(pc.Name, p))
	}

	objects := make([]game_object.GameObject, 0, len(cfg.Bodies)+1)
	for _, bc := range cfg.Bodies {
		f := bezier.NewFollower(paths[bc.Path],
			bezier.WithSpeed(bc.Speed),
			bezier.WithSegmentIndex(bc.Segment),
			bezier.WithParameter(bc.Parameter),
			bezier.WithLookahead(common.Coalesce(bc.Lookahead, bezier.DefaultLookahead)),
		)
		objects = append(objects, game_object.NewGameObject(
			game_object.WithName(bc.Name),
			game_object.WithFollower(f),
			game_object.WithScale(bc.Scale, bc.Scale, bc.Scale),
			game_object.WithBoundingRadius(common.Coalesce(bc.BoundingRadius, 1)),
		))
	}

	if cc := cfg.Chain; cc.Enabled {
		c := chain.NewChain(cc.Segments, cc.Spacing)
		bodyOpts := []game_object.GameObjectBuilderOption{
			game_object.WithName(ChainBodyName),
			game_object.WithChain(c),
			game_object.WithBoundingRadius(common.Coalesce(cc.Spacing, 1)),
		}
		if cc.Path != "" {
			f := bezier.NewFollower(paths[cc.Path],
				bezier.WithSpeed(cc.Speed),
				bezier.WithLookahead(common.Coalesce(cc.Lookahead, bezier.DefaultLookahead)),
			)
			bodyOpts = append(bodyOpts, game_object.WithFollower(f))
		}
		objects = append(objects, game_object.NewGameObject(bodyOpts...))
	}

	anim := animator.NewAnimator(
		animator.WithParams(animator.WaveParams{
			Speed:      cfg.Chain.WaveSpeed,
			Amplitude:  cfg.Chain.WaveAmplitude,
			Wavelength: cfg.Chain.Wavelength,
		}),
		animator.WithPaused(cfg.Chain.Paused),
	)

	opts = append(opts,
		WithAnimator(anim),
		WithObjects(objects...),
		WithComputeWorkers(cfg.Engine.Workers),
	)
	opts = append(opts, options...)
	return NewScene(name, cam, opts...), nil
}

// NewCameraFromConfig builds a camera and its free-fly controller.
//
// Parameters:
//   - cc: the camera configuration
//
// Returns:
//   - camera.Camera: the camera with its controller attached
func NewCameraFromConfig(cc config.CameraConfig) camera.Camera {
	ctrlOpts := []camera.CameraControllerOption{
		camera.WithPosition(cc.Position[0], cc.Position[1], cc.Position[2]),
		camera.WithWorldUp(cc.WorldUp[0], cc.WorldUp[1], cc.WorldUp[2]),
		camera.WithYaw(cc.Yaw),
		camera.WithPitch(cc.Pitch),
		camera.WithMovementSpeed(cc.MovementSpeed),
		camera.WithMouseSensitivity(cc.MouseSensitivity),
		camera.WithFovBounds(cc.MinFov, cc.MaxFov),
		camera.WithFov(cc.Fov),
		camera.WithPitchLimit(cc.PitchLimit),
	}
	if cc.LookAt != nil {
		t := *cc.LookAt
		ctrlOpts = append(ctrlOpts, camera.WithLookAtTarget(t[0], t[1], t[2]))
	}
	ctrl := camera.NewCameraController(ctrlOpts...)
	return camera.NewCamera(
		camera.WithController(ctrl),
		camera.WithAspect(cc.Aspect),
		camera.WithNear(cc.Near),
		camera.WithFar(cc.Far),
	)
}

// NewPathFromConfig converts a configured path into a shared bezier path.
//
// Parameters:
//   - pc: the path configuration
//
// Returns:
//   - *bezier.Path: the path
func NewPathFromConfig(pc config.PathConfig) *bezier.Path {
	p := bezier.NewPath()
	for _, c := range pc.Curves {
		p.Append(bezier.NewCubicCurve(c.Points[0], c.Points[1], c.Points[2], c.Points[3]))
	}
	return p
}
