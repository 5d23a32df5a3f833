package persist

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const poseObject = "poses"

// Pose is the restorable viewer state of a scene: where the camera is, where it looks and
// whether the chain wave is frozen.
type Pose struct {
	Position   [3]float32 `yaml:"position"`
	Yaw        float32    `yaml:"yaw"`
	Pitch      float32    `yaml:"pitch"`
	Fov        float32    `yaml:"fov"`
	WavePaused bool       `yaml:"wavePaused"`
}

// PoseStore saves named poses as YAML blobs in the per-user application data directory.
// A store without a gdata manager keeps nothing and never fails.
type PoseStore struct {
	manager *gdata.Manager
}

// OpenPoseStore opens the pose store of an application.
//
// Parameters:
//   - appName: the application data directory name
//
// Returns:
//   - *PoseStore: the store
//   - error: an error if the data directory cannot be opened
func OpenPoseStore(appName string) (*PoseStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open pose store %q: %w", appName, err)
	}
	return NewPoseStore(m), nil
}

// NewPoseStore wraps an existing gdata manager. A nil manager yields a store that saves nothing.
//
// Parameters:
//   - manager: the gdata manager or nil
//
// Returns:
//   - *PoseStore: the store
func NewPoseStore(manager *gdata.Manager) *PoseStore {
	return &PoseStore{manager: manager}
}

// Save stores p under name.
//
// Parameters:
//   - name: the pose slot
//   - p: the pose
//
// Returns:
//   - error: an error if encoding or writing fails
func (ps *PoseStore) Save(name string, p Pose) error {
	if ps.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pose %q: %w", name, err)
	}
	if err := ps.manager.SaveObjectProp(poseObject, name, data); err != nil {
		return fmt.Errorf("save pose %q: %w", name, err)
	}
	log.Printf("[PoseStore] saved pose %q", name)
	return nil
}

// Load reads the pose stored under name.
//
// Parameters:
//   - name: the pose slot
//
// Returns:
//   - Pose: the pose (zero if not found)
//   - bool: true if a pose was stored under name
//   - error: an error if reading or decoding fails
func (ps *PoseStore) Load(name string) (Pose, bool, error) {
	if ps.manager == nil || !ps.manager.ObjectPropExists(poseObject, name) {
		return Pose{}, false, nil
	}
	data, err := ps.manager.LoadObjectProp(poseObject, name)
	if err != nil {
		return Pose{}, false, fmt.Errorf("load pose %q: %w", name, err)
	}
	var p Pose
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pose{}, false, fmt.Errorf("unmarshal pose %q: %w", name, err)
	}
	return p, true, nil
}

// Capture reads the current pose of a scene's camera and animator.
//
// Parameters:
//   - s: the scene
//
// Returns:
//   - Pose: the captured pose
func Capture(s scene.Scene) Pose {
	var p Pose
	if a := s.Animator(); a != nil {
		p.WavePaused = a.Paused()
	}
	if c := s.Camera(); c != nil {
		if ctrl := c.Controller(); ctrl != nil {
			p.Position[0], p.Position[1], p.Position[2] = ctrl.Position()
			p.Yaw = ctrl.Yaw()
			p.Pitch = ctrl.Pitch()
			p.Fov = ctrl.Fov()
		}
	}
	return p
}

// Restore applies a pose to a scene's camera and animator and refreshes the camera matrices.
// Pitch and field of view are clamped to the controller's limits.
//
// Parameters:
//   - s: the scene
//   - p: the pose
func Restore(s scene.Scene, p Pose) {
	if a := s.Animator(); a != nil {
		a.SetPaused(p.WavePaused)
	}
	c := s.Camera()
	if c == nil || c.Controller() == nil {
		return
	}
	ctrl := c.Controller()
	ctrl.SetPosition(p.Position[0], p.Position[1], p.Position[2])
	ctrl.SetOrientation(p.Yaw, p.Pitch)
	ctrl.Zoom(ctrl.Fov() - p.Fov)
	c.Update()
}
