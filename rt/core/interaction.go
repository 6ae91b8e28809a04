package core

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// PointerInactive is the sentinel pointer value. It disables repulsion.
var PointerInactive = mgl32.Vec2{-1, -1}

// InteractionTracker holds the latest pointer position in normalized device
// coordinates. Both components live in one atomic word so a frame never
// reads x and y from different events.
type InteractionTracker struct {
	packed atomic.Uint64
}

func NewInteractionTracker() *InteractionTracker {
	t := &InteractionTracker{}
	t.Reset()
	return t
}

// OnPointerMove converts a screen position to NDC. Screen Y grows downward,
// NDC Y grows upward. The viewport must be non-zero.
func (t *InteractionTracker) OnPointerMove(screenX, screenY, viewportWidth, viewportHeight float64) {
	x := 2*screenX/viewportWidth - 1
	y := -(2*screenY/viewportHeight - 1)
	t.store(mgl32.Vec2{float32(x), float32(y)})
}

func (t *InteractionTracker) Reset() {
	t.store(PointerInactive)
}

func (t *InteractionTracker) Pointer() mgl32.Vec2 {
	v := t.packed.Load()
	return mgl32.Vec2{
		math.Float32frombits(uint32(v >> 32)),
		math.Float32frombits(uint32(v)),
	}
}

// Active reports whether the pointer is away from the sentinel, using the
// same threshold as the vertex stage.
func (t *InteractionTracker) Active() bool {
	return PointerActive(t.Pointer())
}

func PointerActive(p mgl32.Vec2) bool {
	return p.X() > -0.99
}

func (t *InteractionTracker) store(p mgl32.Vec2) {
	t.packed.Store(uint64(math.Float32bits(p.X()))<<32 | uint64(math.Float32bits(p.Y())))
}
