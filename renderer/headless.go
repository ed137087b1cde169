package renderer

import "github.com/pthm-cable/arbor/components"

// Headless accepts draw submissions without a window. It keeps enough of the
// last frame for assertions and stats.
type Headless struct {
	frames    int
	lastView  View
	lastCount int
	byGroup   [components.GroupCount]int
}

func NewHeadless() *Headless {
	return &Headless{}
}

func (h *Headless) Draw(view View, instances []Instance) {
	h.frames++
	h.lastView = view
	h.lastCount = len(instances)
	h.byGroup = [components.GroupCount]int{}
	for i := range instances {
		h.byGroup[instances[i].Group]++
	}
}

func (h *Headless) Close() {}

// Frames returns how many frames have been submitted.
func (h *Headless) Frames() int { return h.frames }

// LastCount returns the instance count of the most recent frame.
func (h *Headless) LastCount() int { return h.lastCount }

// LastGroupCount returns how many instances of a group the last frame drew.
func (h *Headless) LastGroupCount(g components.Group) int { return h.byGroup[g] }

// LastView returns the camera state of the most recent frame.
func (h *Headless) LastView() View { return h.lastView }
