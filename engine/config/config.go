package config

import (
	"errors"
	"fmt"
)

// Config is the complete, plain-numeric description of a motion scene.
type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine"`
	Camera CameraConfig `yaml:"camera" toml:"camera"`
	Paths  []PathConfig `yaml:"paths" toml:"paths"`
	Bodies []BodyConfig `yaml:"bodies" toml:"bodies"`
	Chain  ChainConfig  `yaml:"chain" toml:"chain"`
}

// EngineConfig controls the tick and frame loops.
type EngineConfig struct {
	// TickRate is the number of simulation ticks per second.
	TickRate int `yaml:"tickRate" toml:"tick_rate"`

	// FrameLimit caps frames per second delivered to consumers. 0 means uncapped.
	FrameLimit int `yaml:"frameLimit" toml:"frame_limit"`

	// Workers is the size of the worker pool used to update bodies. 0 updates them inline.
	Workers int `yaml:"workers" toml:"workers"`

	// Profiling enables the periodic profiler log.
	Profiling bool `yaml:"profiling" toml:"profiling"`

	// ProfileInterval is the profiler reporting interval in seconds.
	ProfileInterval float32 `yaml:"profileInterval" toml:"profile_interval"`
}

// CameraConfig describes the free-fly camera and its projection.
type CameraConfig struct {
	Position [3]float32 `yaml:"position" toml:"position"`
	WorldUp  [3]float32 `yaml:"worldUp" toml:"world_up"`

	// LookAt, when set, overrides Yaw and Pitch with the facing towards this point.
	LookAt *[3]float32 `yaml:"lookAt,omitempty" toml:"look_at,omitempty"`
	Yaw    float32     `yaml:"yaw" toml:"yaw"`
	Pitch  float32     `yaml:"pitch" toml:"pitch"`

	MovementSpeed    float32 `yaml:"movementSpeed" toml:"movement_speed"`
	MouseSensitivity float32 `yaml:"mouseSensitivity" toml:"mouse_sensitivity"`

	Fov        float32 `yaml:"fov" toml:"fov"`
	MinFov     float32 `yaml:"minFov" toml:"min_fov"`
	MaxFov     float32 `yaml:"maxFov" toml:"max_fov"`
	PitchLimit float32 `yaml:"pitchLimit" toml:"pitch_limit"`

	Aspect float32 `yaml:"aspect" toml:"aspect"`
	Near   float32 `yaml:"near" toml:"near"`
	Far    float32 `yaml:"far" toml:"far"`
}

// PathConfig is a named composite path.
type PathConfig struct {
	Name   string        `yaml:"name" toml:"name"`
	Curves []CurveConfig `yaml:"curves" toml:"curves"`
}

// CurveConfig holds the four control points of one cubic segment.
type CurveConfig struct {
	Points [4][3]float32 `yaml:"points" toml:"points"`
}

// BodyConfig is a path-following body.
type BodyConfig struct {
	Name           string  `yaml:"name" toml:"name"`
	Path           string  `yaml:"path" toml:"path"`
	Speed          float32 `yaml:"speed" toml:"speed"`
	Segment        int     `yaml:"segment" toml:"segment"`
	Parameter      float32 `yaml:"parameter" toml:"parameter"`
	Lookahead      float32 `yaml:"lookahead" toml:"lookahead"`
	Scale          float32 `yaml:"scale" toml:"scale"`
	BoundingRadius float32 `yaml:"boundingRadius" toml:"bounding_radius"`
}

// ChainConfig describes the segment chain and the follower that carries its root.
type ChainConfig struct {
	Enabled   bool    `yaml:"enabled" toml:"enabled"`
	Segments  int     `yaml:"segments" toml:"segments"`
	Spacing   float32 `yaml:"spacing" toml:"spacing"`
	Path      string  `yaml:"path" toml:"path"`
	Speed     float32 `yaml:"speed" toml:"speed"`
	Lookahead float32 `yaml:"lookahead" toml:"lookahead"`

	WaveSpeed     float32 `yaml:"waveSpeed" toml:"wave_speed"`
	WaveAmplitude float32 `yaml:"waveAmplitude" toml:"wave_amplitude"`
	Wavelength    float32 `yaml:"wavelength" toml:"wavelength"`
	Paused        bool    `yaml:"paused" toml:"paused"`
}

// ErrNoPaths is returned by Validate when bodies or the chain reference paths but none are defined.
var ErrNoPaths = errors.New("no paths defined")

// Default returns the demo scene: a camera looking at the origin, one body circling a loop
// and a twelve-segment chain travelling a wider loop.
//
// Returns:
//   - *Config: the default configuration
func Default() *Config {
	target := [3]float32{0, 0, 0}
	return &Config{
		Engine: EngineConfig{
			TickRate:        120,
			FrameLimit:      60,
			Workers:         0,
			Profiling:       false,
			ProfileInterval: 1,
		},
		Camera: CameraConfig{
			Position:         [3]float32{-1, 1, -1},
			WorldUp:          [3]float32{0, 1, 0},
			LookAt:           &target,
			Yaw:              -90,
			MovementSpeed:    2.5,
			MouseSensitivity: 0.1,
			Fov:              45,
			MinFov:           1,
			MaxFov:           90,
			PitchLimit:       89,
			Aspect:           1,
			Near:             0.1,
			Far:              100,
		},
		Paths: []PathConfig{
			CirclePath("loop", [3]float32{0, 0, 0}, 3),
			CirclePath("wide", [3]float32{0, -0.5, 0}, 6),
		},
		Bodies: []BodyConfig{
			{Name: "body", Path: "loop", Speed: 0.25, Lookahead: 0.01, Scale: 1, BoundingRadius: 1},
		},
		Chain: ChainConfig{
			Enabled:       true,
			Segments:      12,
			Spacing:       0.3,
			Path:          "wide",
			Speed:         0.1,
			Lookahead:     0.01,
			WaveSpeed:     3,
			WaveAmplitude: 0.35,
			Wavelength:    0.6,
		},
	}
}

// circleKappa places cubic handles so four segments approximate a circle.
const circleKappa float32 = 0.5522847

// CirclePath builds a four-segment closed loop in the XZ plane at the height of center.
// The loop starts on the +X side and runs through -Z, -X and +Z back to the start.
//
// Parameters:
//   - name: the path name
//   - center: the loop center
//   - radius: the loop radius
//
// Returns:
//   - PathConfig: the path
func CirclePath(name string, center [3]float32, radius float32) PathConfig {
	k := radius * circleKappa
	cx, cy, cz := center[0], center[1], center[2]
	pt := func(x, z float32) [3]float32 { return [3]float32{cx + x, cy, cz + z} }

	return PathConfig{
		Name: name,
		Curves: []CurveConfig{
			{Points: [4][3]float32{pt(radius, 0), pt(radius, -k), pt(k, -radius), pt(0, -radius)}},
			{Points: [4][3]float32{pt(0, -radius), pt(-k, -radius), pt(-radius, -k), pt(-radius, 0)}},
			{Points: [4][3]float32{pt(-radius, 0), pt(-radius, k), pt(-k, radius), pt(0, radius)}},
			{Points: [4][3]float32{pt(0, radius), pt(k, radius), pt(radius, k), pt(radius, 0)}},
		},
	}
}

// Path returns the path with the given name.
//
// Parameters:
//   - name: the path name
//
// Returns:
//   - *PathConfig: the path, or nil if not found
func (c *Config) Path(name string) *PathConfig {
	for i := range c.Paths {
		if c.Paths[i].Name == name {
			return &c.Paths[i]
		}
	}
	return nil
}

// Validate checks that every value is usable and every path reference resolves.
//
// Returns:
//   - error: the first invalid field, or nil
func (c *Config) Validate() error {
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("engine.tickRate must be positive, got %d", c.Engine.TickRate)
	}
	if c.Engine.FrameLimit < 0 {
		return fmt.Errorf("engine.frameLimit must not be negative, got %d", c.Engine.FrameLimit)
	}
	if c.Engine.Workers < 0 {
		return fmt.Errorf("engine.workers must not be negative, got %d", c.Engine.Workers)
	}
	if c.Engine.Profiling && c.Engine.ProfileInterval <= 0 {
		return fmt.Errorf("engine.profileInterval must be positive, got %.3f", c.Engine.ProfileInterval)
	}

	if err := c.Camera.validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Paths))
	for i, p := range c.Paths {
		if p.Name == "" {
			return fmt.Errorf("paths[%d] has no name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("path %q is defined more than once", p.Name)
		}
		seen[p.Name] = true
		if len(p.Curves) == 0 {
			return fmt.Errorf("path %q has no curves", p.Name)
		}
	}

	for i, b := range c.Bodies {
		if err := c.checkPathRef(fmt.Sprintf("bodies[%d]", i), b.Path); err != nil {
			return err
		}
		if b.Speed < 0 {
			return fmt.Errorf("bodies[%d].speed must not be negative, got %.3f", i, b.Speed)
		}
		if b.Scale <= 0 {
			return fmt.Errorf("bodies[%d].scale must be positive, got %.3f", i, b.Scale)
		}
		if b.Lookahead < 0 {
			return fmt.Errorf("bodies[%d].lookahead must not be negative, got %.3f", i, b.Lookahead)
		}
		if b.Parameter < 0 || b.Parameter >= 1 {
			return fmt.Errorf("bodies[%d].parameter must be in [0, 1), got %.3f", i, b.Parameter)
		}
	}

	if c.Chain.Enabled {
		if c.Chain.Segments < 1 {
			return fmt.Errorf("chain.segments must be at least 1, got %d", c.Chain.Segments)
		}
		if c.Chain.Speed < 0 {
			return fmt.Errorf("chain.speed must not be negative, got %.3f", c.Chain.Speed)
		}
		if c.Chain.Lookahead < 0 {
			return fmt.Errorf("chain.lookahead must not be negative, got %.3f", c.Chain.Lookahead)
		}
		if c.Chain.Path != "" {
			if err := c.checkPathRef("chain", c.Chain.Path); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Config) checkPathRef(owner, name string) error {
	if len(c.Paths) == 0 {
		return fmt.Errorf("%s: %w", owner, ErrNoPaths)
	}
	if c.Path(name) == nil {
		return fmt.Errorf("%s references unknown path %q", owner, name)
	}
	return nil
}

func (cc *CameraConfig) validate() error {
	if cc.MinFov <= 0 || cc.MinFov > cc.MaxFov || cc.MaxFov >= 180 {
		return fmt.Errorf("camera fov bounds invalid: min(%.1f) max(%.1f)", cc.MinFov, cc.MaxFov)
	}
	if cc.Fov < cc.MinFov || cc.Fov > cc.MaxFov {
		return fmt.Errorf("camera.fov %.1f outside [%.1f, %.1f]", cc.Fov, cc.MinFov, cc.MaxFov)
	}
	if cc.PitchLimit <= 0 || cc.PitchLimit >= 90 {
		return fmt.Errorf("camera.pitchLimit must be in (0, 90), got %.1f", cc.PitchLimit)
	}
	if cc.WorldUp == [3]float32{} {
		return errors.New("camera.worldUp must not be the zero vector")
	}
	if cc.Aspect <= 0 {
		return fmt.Errorf("camera.aspect must be positive, got %.3f", cc.Aspect)
	}
	if cc.Near <= 0 || cc.Far <= cc.Near {
		return fmt.Errorf("camera clip planes invalid: near(%.3f) far(%.3f)", cc.Near, cc.Far)
	}
	return nil
}
