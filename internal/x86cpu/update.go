// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package x86cpu

import (
	"cpuarbiter/internal/catalog"
	"cpuarbiter/internal/cpudef"
)

// Update implements x86Update (spec.md §4.5): reconcile a guest CPU
// definition against the host's actual model before Compute runs.
//
//   - HOST_PASSTHROUGH replaces the guest definition outright: its
//     model and vendor become the host's, all explicit feature
//     overrides are dropped, and matching is forced to MINIMUM, since a
//     passthrough guest should opportunistically take whatever the
//     host model grants rather than demand an exact copy of it.
//   - HOST_MODEL adopts the host's model and vendor but keeps any
//     feature overrides the guest definition already carried, and
//     forces matching to EXACT.
//   - CUSTOM leaves the model alone but resolves every OPTIONAL feature
//     against the host and, under MINIMUM match, widens the guest
//     definition with the host's unaccounted-for residue. See
//     updateCustom.
func Update(cat *catalog.Catalog, hostModel *catalog.Model, guest *cpudef.CPUDef) error {
	switch guest.Mode {
	case cpudef.ModeHostPassthrough:
		guest.Model = hostModel.Name
		if hostModel.Vendor != nil {
			guest.Vendor = hostModel.Vendor.Name
		}
		guest.Features = nil
		guest.Match = cpudef.MatchMinimum
		return nil

	case cpudef.ModeHostModel:
		guest.Model = hostModel.Name
		if hostModel.Vendor != nil {
			guest.Vendor = hostModel.Vendor.Name
		}
		guest.Match = cpudef.MatchExact
		return nil

	case cpudef.ModeCustom:
		return updateCustom(cat, hostModel, guest)
	}

	return nil
}

// updateCustom implements Update's CUSTOM dispatch (spec.md §4.5,
// original cpu_x86.c:1845-1865): every OPTIONAL guest feature is
// resolved against the host's actual model — REQUIRE if the host
// provides it, DISABLE otherwise — and, under a MINIMUM match, the
// match is promoted to EXACT and whatever of the host's model the
// guest's named model and listed features don't already account for is
// emitted back onto the guest as REQUIRE features.
func updateCustom(cat *catalog.Catalog, hostModel *catalog.Model, guest *cpudef.CPUDef) error {
	for i := range guest.Features {
		fp := &guest.Features[i]
		if fp.Policy != cpudef.PolicyOptional {
			continue
		}
		has, err := HasFeature(cat, hostModel.Data, fp.Name)
		if err != nil {
			return err
		}
		if has {
			fp.Policy = cpudef.PolicyRequire
		} else {
			fp.Policy = cpudef.PolicyDisable
		}
	}

	if guest.Match != cpudef.MatchMinimum {
		return nil
	}
	guest.Match = cpudef.MatchExact

	residue := hostModel.Copy()
	if err := SubtractCPU(cat, residue, guest); err != nil {
		return err
	}

	dataToCPUFeatures(cat, guest, cpudef.PolicyRequire, residue.Data)
	return nil
}
