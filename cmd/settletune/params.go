// Package main provides CMA-ES tuning for the per-group morph damping rates.
package main

import (
	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds one damp rate per entity group.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the tunable set from the loaded config defaults.
func NewParamVector(cfg *config.Config) *ParamVector {
	pv := &ParamVector{}
	for _, grp := range components.Groups() {
		gc := cfg.Groups.ByGroup(grp)
		pv.Specs = append(pv.Specs, ParamSpec{
			Name:    grp.String() + "_damp_rate",
			Min:     0.5,
			Max:     8.0,
			Default: gc.DampRate,
		})
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes damp rates back into a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, grp := range components.Groups() {
		cfg.Groups.ByGroup(grp).DampRate = clamped[i]
	}
}
