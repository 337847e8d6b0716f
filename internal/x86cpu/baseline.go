// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package x86cpu

import (
	"github.com/pkg/errors"

	mapset "github.com/deckarep/golang-set/v2"

	"cpuarbiter/internal/catalog"
	"cpuarbiter/internal/cpudef"
	"cpuarbiter/internal/cpuid"
)

// ErrNoCPUs is returned by Baseline when given an empty CPU list.
var ErrNoCPUs = errors.New("baseline requires at least one CPU")

// Baseline implements x86Baseline: encode every input host CPU's
// migratable feature set (REQUIRE policy against its own model),
// intersect them all down to the common subset, unify a single vendor
// leaf if every input agrees on vendor, and decode the result back
// into a portable guest CPU definition (spec.md §4.6).
//
// Vendor unification mirrors the source: if all inputs share a vendor,
// that vendor's leaf is added back into the intersected data so Decode
// can recover it; otherwise no vendor leaf is added and the result
// carries no vendor. Vendor-bound models remain Decode candidates in
// either case.
func Baseline(cat *catalog.Catalog, cpus []*cpudef.CPUDef, allowlist mapset.Set[string], flags DecodeFlags) (*cpudef.CPUDef, error) {
	if len(cpus) == 0 {
		return nil, ErrNoCPUs
	}

	var acc *cpuid.Data
	vendor := ""
	vendorAgreed := true

	for i, cpu := range cpus {
		model, err := ModelFromCPU(cat, cpu, cpudef.PolicyRequire)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			acc = model.Data.Copy()
			vendor = cpu.Vendor
		} else {
			acc.Intersect(model.Data)
			if cpu.Vendor != vendor {
				vendorAgreed = false
			}
		}
	}

	if vendorAgreed && vendor != "" {
		if v, ok := cat.FindVendor(vendor); ok {
			acc.AddCPUID(v.Leaf)
		}
	}

	result, err := Decode(cat, cpudef.TypeGuest, cpudef.FallbackAllow, acc, allowlist, "", flags)
	if err != nil {
		return nil, err
	}
	result.Match = cpudef.MatchExact
	return result, nil
}
