package scene

import (
	"cmp"
	"slices"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/game_object"
	"github.com/chewxy/math32"
)

// Frame is a read-only snapshot of everything a rendering consumer needs for one frame.
type Frame struct {
	Tick uint64
	Time float32

	View           [16]float32
	Projection     [16]float32
	ViewProjection [16]float32
	Fov            float32 // degrees
	CameraPosition [3]float32

	Bodies []BodyFrame
	Chains []ChainFrame
}

// BodyFrame is the per-object output: position, full model matrix and a visibility hint.
type BodyFrame struct {
	ID       uint64
	Name     string
	Position [3]float32
	Model    [16]float32
	Visible  bool
}

// ChainFrame holds the ordered world transforms of one chain, root first.
type ChainFrame struct {
	BodyID     uint64
	Transforms [][16]float32
	Angles     []float32
	Visible    []bool
}

func (s *scene) Frame() Frame {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.mu.RLock()
	f := Frame{Tick: s.tickCount, Time: s.elapsed}
	objects := s.objects()
	cam := s.cam
	cullingDisabled := s.cullingDisabled
	s.mu.RUnlock()

	// Input may move the controller between ticks; the camera state only changes in Tick.
	var frustum common.Frustum
	if cam != nil {
		st := cam.State()
		f.View = st.View
		f.Projection = st.Projection
		f.ViewProjection = st.ViewProjection
		f.Fov = st.Fov
		f.CameraPosition = st.Position
		frustum = st.Frustum
	}
	visible := func(center [3]float32, radius float32) bool {
		if cullingDisabled || cam == nil {
			return true
		}
		return frustum.ContainsSphere(center, radius)
	}

	f.Bodies = make([]BodyFrame, 0, len(objects))
	for _, obj := range objects {
		if !obj.Enabled() {
			continue
		}
		x, y, z := obj.Position()
		pos := [3]float32{x, y, z}
		f.Bodies = append(f.Bodies, BodyFrame{
			ID:       obj.ID(),
			Name:     obj.Name(),
			Position: pos,
			Model:    obj.ModelMatrix(),
			Visible:  visible(pos, obj.BoundingRadius()*maxScale(obj)),
		})

		c := obj.Chain()
		if c == nil {
			continue
		}
		cf := ChainFrame{BodyID: obj.ID(), Transforms: obj.ChainTransforms()}
		radius := max(math32.Abs(c.Spacing()), common.Epsilon)
		cf.Angles = make([]float32, len(cf.Transforms))
		cf.Visible = make([]bool, len(cf.Transforms))
		for i, m := range cf.Transforms {
			cf.Angles[i] = c.Angle(i)
			cf.Visible[i] = visible([3]float32{m[12], m[13], m[14]}, radius)
		}
		f.Chains = append(f.Chains, cf)
	}
	return f
}

func maxScale(obj game_object.GameObject) float32 {
	sx, sy, sz := obj.Scale()
	return max(math32.Abs(sx), math32.Abs(sy), math32.Abs(sz))
}

func sortByID(objects []game_object.GameObject) {
	slices.SortFunc(objects, func(a, b game_object.GameObject) int {
		return cmp.Compare(a.ID(), b.ID())
	})
}
