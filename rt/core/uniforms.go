package core

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// RepulsionRadius is the NDC radius of the pointer's influence.
	RepulsionRadius   float32 = 0.4
	RepulsionStrength float32 = 0.45
)

// FrameUniforms is recomputed every tick by the FrameUpdater.
type FrameUniforms struct {
	PointScale      float32
	Pointer         mgl32.Vec2
	RepulsionRadius float32
	ElapsedTime     float32
}

// GPUUniforms matches `struct Uniforms` in points.wgsl. 160 bytes, every
// field on its natural WGSL alignment.
type GPUUniforms struct {
	ModelView       mgl32.Mat4
	Projection      mgl32.Mat4
	Pointer         [2]float32
	Viewport        [2]float32
	PointScale      float32
	RepulsionRadius float32
	Time            float32
	_               float32
}

const GPUUniformsSize = uint64(unsafe.Sizeof(GPUUniforms{}))

// Pack combines the frame uniforms with the camera and viewport state.
func (u FrameUniforms) Pack(modelView, projection mgl32.Mat4, viewportW, viewportH float32) GPUUniforms {
	return GPUUniforms{
		ModelView:       modelView,
		Projection:      projection,
		Pointer:         [2]float32{u.Pointer.X(), u.Pointer.Y()},
		Viewport:        [2]float32{viewportW, viewportH},
		PointScale:      u.PointScale,
		RepulsionRadius: u.RepulsionRadius,
		Time:            u.ElapsedTime,
	}
}

// Bytes views the struct as raw bytes for queue.WriteBuffer.
func (g *GPUUniforms) Bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(g)), GPUUniformsSize)
}
