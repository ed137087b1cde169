// Package renderer turns per-frame draw submissions into pixels. The raylib
// backend is the real one; the headless backend records submissions for tests
// and window-less runs.
package renderer

import "github.com/pthm-cable/arbor/components"

// Instance is one drawable particle for the current frame.
type Instance struct {
	Pos   components.Vec3
	Group components.Group
	R     uint8
	G     uint8
	B     uint8
	Size  float32
	Glow  float32 // brightness scale in [0, 1]
}

// View is the camera state for one frame.
type View struct {
	Eye    components.Vec3
	Target components.Vec3
	FOVY   float32
}

// Renderer consumes one frame of instances. Implementations are not safe for
// concurrent use; the game loop owns them.
type Renderer interface {
	Draw(view View, instances []Instance)
	Close()
}
