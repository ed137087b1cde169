// Package profile resolves the capability tier for a session.
//
// The tier is inspected once at startup; every other component reads the
// resulting Profile instead of re-deriving device class.
package profile

import (
	"os"
	"runtime"
	"strings"

	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/config"
)

// Tier is the device capability class.
type Tier uint8

const (
	TierLow Tier = iota
	TierHigh
)

// String returns the tier name.
func (t Tier) String() string {
	if t == TierHigh {
		return "high"
	}
	return "low"
}

// TierEnv overrides tier detection when set to "low" or "high".
const TierEnv = "ARBOR_TIER"

// Profile is the fixed per-session capability configuration.
// Immutable after Resolve.
type Profile struct {
	Tier    Tier
	Counts  [components.GroupCount]int
	Effects bool // secondary visual passes (glow pulse)
	Gesture bool // whether the recognition pipeline is constructed at all
}

// Resolve inspects the environment once and derives the session profile.
// Unknown environments resolve to the low tier.
func Resolve(cfg *config.Config) Profile {
	tier := detectTier(cfg)

	p := Profile{
		Tier:    tier,
		Effects: tier == TierHigh,
		Gesture: tier == TierHigh,
	}
	for _, grp := range components.Groups() {
		gc := cfg.Groups.ByGroup(grp)
		if tier == TierHigh {
			p.Counts[grp] = gc.CountHigh
		} else {
			p.Counts[grp] = gc.CountLow
		}
	}
	return p
}

// detectTier reads the override env var, then falls back to CPU count.
func detectTier(cfg *config.Config) Tier {
	switch strings.ToLower(os.Getenv(TierEnv)) {
	case "high":
		return TierHigh
	case "low":
		return TierLow
	case "":
		// fall through to probe
	default:
		// Unrecognized override: degrade, don't guess upward.
		return TierLow
	}

	if runtime.NumCPU() >= cfg.Profile.HighCPUThreshold {
		return TierHigh
	}
	return TierLow
}

// TotalEntities returns the summed entity count across groups.
func (p Profile) TotalEntities() int {
	total := 0
	for _, n := range p.Counts {
		total += n
	}
	return total
}
