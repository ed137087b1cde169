package profile

import (
	"testing"

	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/config"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestLowTierStrictlySmaller(t *testing.T) {
	cfg := loadDefaults(t)
	t.Setenv(TierEnv, "low")
	low := Resolve(cfg)
	t.Setenv(TierEnv, "high")
	high := Resolve(cfg)

	for _, grp := range components.Groups() {
		if low.Counts[grp] >= high.Counts[grp] {
			t.Errorf("group %s: low count %d not below high count %d",
				grp, low.Counts[grp], high.Counts[grp])
		}
	}
}

func TestLowTierDisablesGesture(t *testing.T) {
	cfg := loadDefaults(t)
	t.Setenv(TierEnv, "low")
	p := Resolve(cfg)

	if p.Gesture {
		t.Error("low tier should disable the gesture pipeline")
	}
	if p.Effects {
		t.Error("low tier should disable secondary effects")
	}
}

func TestUnknownOverrideDegrades(t *testing.T) {
	cfg := loadDefaults(t)
	t.Setenv(TierEnv, "quantum")
	p := Resolve(cfg)

	if p.Tier != TierLow {
		t.Errorf("unknown environment should resolve low, got %s", p.Tier)
	}
}

func TestHighTierEnablesEverything(t *testing.T) {
	cfg := loadDefaults(t)
	t.Setenv(TierEnv, "high")
	p := Resolve(cfg)

	if p.Tier != TierHigh || !p.Effects || !p.Gesture {
		t.Errorf("high tier should enable effects and gesture, got %+v", p)
	}
	if p.TotalEntities() == 0 {
		t.Error("high tier should have entities")
	}
}
