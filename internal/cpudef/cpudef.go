// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package cpudef implements the generic CPU definition object that the
// x86cpu compute pipeline reads and writes through a small accessor
// contract (spec.md §6). In the original driver this object
// (virCPUDef) is an external collaborator owned by the rest of the
// virtualization host; here it is a concrete, minimal type so the
// module is self-contained, but x86cpu never reaches into its fields
// directly — only through the Accessor interface below.
package cpudef

import "fmt"

// Arch is the CPU definition's target architecture.
type Arch int

const (
	ArchNone Arch = iota
	ArchI686
	ArchX86_64
)

func (a Arch) String() string {
	switch a {
	case ArchI686:
		return "i686"
	case ArchX86_64:
		return "x86_64"
	default:
		return "none"
	}
}

// Type distinguishes a description of an actual host CPU from a guest
// CPU requirement.
type Type int

const (
	TypeHost Type = iota
	TypeGuest
)

// Mode selects how a guest CPU definition's model is derived.
type Mode int

const (
	ModeCustom Mode = iota
	ModeHostModel
	ModeHostPassthrough
)

// Match selects how strictly a guest CPU definition must match what
// the host can provide.
type Match int

const (
	MatchExact Match = iota
	MatchStrict
	MatchMinimum
)

// Fallback controls whether Decode may substitute a nearby model when
// the preferred one isn't in the allowlist.
type Fallback int

const (
	FallbackAllow Fallback = iota
	FallbackForbid
)

// Policy is how a single named feature should be reconciled against
// the host.
type Policy int

// PolicyNone marks a feature whose policy is not meaningful, e.g. a
// decoded HOST-type CPU's features (spec.md §4.3).
const PolicyNone Policy = -1

const (
	PolicyForce Policy = iota
	PolicyRequire
	PolicyOptional
	PolicyDisable
	PolicyForbid
)

func (p Policy) String() string {
	switch p {
	case PolicyForce:
		return "force"
	case PolicyRequire:
		return "require"
	case PolicyOptional:
		return "optional"
	case PolicyDisable:
		return "disable"
	case PolicyForbid:
		return "forbid"
	case PolicyNone:
		return "none"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// FeaturePolicy pairs a feature name with the policy it is requested
// under.
type FeaturePolicy struct {
	Name   string
	Policy Policy
}

// CPUDef is the generic, language-neutral CPU definition: a model
// name, optional vendor name, and list of (feature, policy) pairs,
// bound to an architecture, type, mode, match mode, and fallback
// behavior (spec.md §3).
type CPUDef struct {
	Arch     Arch
	Type     Type
	Mode     Mode
	Match    Match
	Fallback Fallback

	Model    string
	Vendor   string
	Features []FeaturePolicy
}

// Copy returns a deep copy of d, matching the Accessor contract's
// copy() operation (spec.md §6).
func (d *CPUDef) Copy() *CPUDef {
	c := *d
	c.Features = append([]FeaturePolicy(nil), d.Features...)
	return &c
}

// FreeModel clears the model name, vendor, and feature list, leaving
// arch/type/mode/match/fallback untouched. Matches the Accessor
// contract's free_model() operation.
func (d *CPUDef) FreeModel() {
	d.Model = ""
	d.Vendor = ""
	d.Features = nil
}

// CopyModelFrom replaces d's model and vendor with other's. When
// keepFeatures is false the feature list is replaced too; when true
// the existing feature list is left alone so the caller can re-apply
// saved overrides on top of the new model.
func (d *CPUDef) CopyModelFrom(other *CPUDef, keepFeatures bool) {
	d.Model = other.Model
	d.Vendor = other.Vendor
	if !keepFeatures {
		d.Features = append([]FeaturePolicy(nil), other.Features...)
	}
}

// AddFeature appends a new (name, policy) pair.
func (d *CPUDef) AddFeature(name string, policy Policy) {
	d.Features = append(d.Features, FeaturePolicy{Name: name, Policy: policy})
}

// UpdateFeature sets the policy of an existing feature by name, or
// appends it if not already present.
func (d *CPUDef) UpdateFeature(name string, policy Policy) {
	for i := range d.Features {
		if d.Features[i].Name == name {
			d.Features[i].Policy = policy
			return
		}
	}
	d.AddFeature(name, policy)
}

// FeaturesWithPolicy returns the names of every feature whose policy
// equals want.
func (d *CPUDef) FeaturesWithPolicy(want Policy) []string {
	var names []string
	for _, fp := range d.Features {
		if fp.Policy == want {
			names = append(names, fp.Name)
		}
	}
	return names
}
