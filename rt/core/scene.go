package core

import (
	"math"
	"sync/atomic"

	"github.com/gekko3d/nucleus/logging"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const DefaultPointScale float32 = 0.12

type Options struct {
	AutoRotate bool
	PointScale float32
	// Geometry defaults to DefaultSphere().
	Geometry *PointBuffer
	Logger   logging.Logger
}

// Scene is the effect as the host sees it. Pointer events and knob setters
// may arrive between ticks; Tick reads each of them once.
type Scene struct {
	ID string

	geometry    *PointBuffer
	interaction *InteractionTracker
	updater     *FrameUpdater
	logger      logging.Logger

	autoRotate atomic.Bool
	pointScale atomic.Uint32
}

func NewScene(opts Options) *Scene {
	geometry := opts.Geometry
	if geometry == nil {
		geometry = DefaultSphere()
	}

	s := &Scene{
		ID:          uuid.NewString(),
		geometry:    geometry,
		interaction: NewInteractionTracker(),
		updater:     NewFrameUpdater(opts.PointScale),
		logger:      logging.OrNop(opts.Logger),
	}
	s.autoRotate.Store(opts.AutoRotate)
	s.SetPointScale(opts.PointScale)

	s.logger.Infof("scene %s: %d points (%d shell, %d core), autoRotate=%v pointScale=%.3f",
		s.ID, geometry.Len(), geometry.OuterCount, geometry.InnerCount, opts.AutoRotate, opts.PointScale)
	return s
}

func (s *Scene) OnPointerMove(x, y, viewportWidth, viewportHeight float64) {
	s.interaction.OnPointerMove(x, y, viewportWidth, viewportHeight)
}

// ResetPointer disables repulsion until the next pointer move.
func (s *Scene) ResetPointer() {
	s.interaction.Reset()
}

func (s *Scene) Pointer() mgl32.Vec2 {
	return s.interaction.Pointer()
}

// Tick runs the frame update for the given time since scene start.
func (s *Scene) Tick(elapsed float32) {
	s.updater.Tick(elapsed, s.interaction.Pointer(), s.PointScale(), s.AutoRotate())
}

func (s *Scene) SetAutoRotate(enabled bool) {
	if s.autoRotate.Swap(enabled) != enabled {
		s.logger.Debugf("scene %s: autoRotate=%v", s.ID, enabled)
	}
}

func (s *Scene) ToggleAutoRotate() bool {
	enabled := !s.AutoRotate()
	s.SetAutoRotate(enabled)
	return enabled
}

func (s *Scene) AutoRotate() bool {
	return s.autoRotate.Load()
}

func (s *Scene) SetPointScale(scale float32) {
	if old := s.pointScale.Swap(math.Float32bits(scale)); old != math.Float32bits(scale) {
		s.logger.Debugf("scene %s: pointScale=%.3f", s.ID, scale)
	}
}

func (s *Scene) PointScale() float32 {
	return math.Float32frombits(s.pointScale.Load())
}

func (s *Scene) Uniforms() FrameUniforms {
	return s.updater.Uniforms
}

func (s *Scene) ModelMatrix() mgl32.Mat4 {
	return s.updater.ModelMatrix()
}

func (s *Scene) GroupTransform() Transform {
	return s.updater.Group
}

func (s *Scene) MeshTransform() Transform {
	return s.updater.Mesh
}

func (s *Scene) Geometry() *PointBuffer {
	return s.geometry
}
