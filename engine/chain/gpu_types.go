package chain

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUSegmentInstance is the GPU-aligned representation of one chain segment for instanced drawing.
// Matches the WGSL layout:
//
//	struct SegmentInstance {
//	    model: mat4x4<f32>,
//	    index: u32,
//	    angle: f32,
//	}
//
// Size: 80 bytes (std430 aligned, padded to 16 bytes).
type GPUSegmentInstance struct {
	Model [16]float32 // offset  0: segment world transform (mat4x4<f32>)
	Index uint32      // offset 64: segment index along the chain
	Angle float32     // offset 68: current wave angle in radians
	_pad  [2]float32  // offset 72: padding to 80 bytes
}

// Size returns the size of the GPUSegmentInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (80)
func (g *GPUSegmentInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSegmentInstance into a little-endian byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (g *GPUSegmentInstance) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:], g.Index)
	binary.LittleEndian.PutUint32(buf[68:], math.Float32bits(g.Angle))
	return buf
}

// Instances builds one GPUSegmentInstance per segment from the chain's current state.
//
// Parameters:
//   - c: the chain
//   - base: the chain's base transform
//
// Returns:
//   - []GPUSegmentInstance: the instances, root first
func Instances(c Chain, base [16]float32) []GPUSegmentInstance {
	world := c.WorldTransforms(base)
	out := make([]GPUSegmentInstance, len(world))
	for i, m := range world {
		out[i] = GPUSegmentInstance{Model: m, Index: uint32(i), Angle: c.Angle(i)}
	}
	return out
}

// MarshalInstances packs all instances back to back into one upload buffer.
//
// Parameters:
//   - instances: the instances to pack
//
// Returns:
//   - []byte: the concatenated buffer
func MarshalInstances(instances []GPUSegmentInstance) []byte {
	if len(instances) == 0 {
		return nil
	}
	stride := instances[0].Size()
	buf := make([]byte, 0, stride*len(instances))
	for i := range instances {
		buf = append(buf, instances[i].Marshal()...)
	}
	return buf
}
