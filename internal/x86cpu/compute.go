// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package x86cpu

import (
	"fmt"
	"strings"

	"cpuarbiter/internal/catalog"
	"cpuarbiter/internal/cpudef"
	"cpuarbiter/internal/cpuid"
)

// CompareResult values double as Compute's outcome: a guest CPU
// definition is either IDENTICAL to the host, satisfied by a host that
// offers a SUPERSET of what it asks for, or outright INCOMPATIBLE.
// Compute never returns Subset.

// Compute implements x86Compute (spec.md §4.2): given the host's CPU
// model and a guest's requested CPU definition, determine whether the
// guest can run on the host, and if so, produce the exact CPUID data
// the guest should be presented with.
//
// The algorithm:
//  1. Architecture check: if the guest names an arch, it must be one
//     of the driver's supported arches and compatible with hostArch
//     (an unset hostArch is treated as compatible with anything).
//  2. If the guest names a vendor, it must match the host's; a host
//     model without a vendor is INCOMPATIBLE with it.
//  3. Build force/require/optional/disable/forbid sub-models from the
//     guest definition via ModelFromCPU.
//  4. FORBID: if any forbidden feature is present on the host, the
//     guest is INCOMPATIBLE, naming the offending features.
//  5. REQUIRE is normalized: FORCE, OPTIONAL, and DISABLE features are
//     removed from it first, since those policies take precedence.
//  6. The host must already provide every normalized REQUIRE bit, or
//     the guest is INCOMPATIBLE, naming the missing features.
//  7. The residual difference (host leaves minus optional, require,
//     disable, and force) decides IDENTICAL vs SUPERSET: empty means
//     the guest's request exactly accounts for the host, anything left
//     over means the host has more than the guest asked for.
//  8. In STRICT match mode, any host feature absent from the guest's
//     request (outside of what DISABLE explicitly permits dropping) is
//     an INCOMPATIBLE rather than a SUPERSET, naming those features.
//  9. Guest data starts as a copy of the host data; for a GUEST-type
//     definition in EXACT mode the residual difference from step 7 is
//     removed from it. In every mode forced features are then added
//     and disabled features removed.
//
// The returned message is empty unless result is Unrelated, in which
// case it names the catalog features responsible for the mismatch
// (spec.md §7: "INCOMPATIBLE with a human-readable feature list").
func Compute(cat *catalog.Catalog, host *catalog.Model, hostArch cpudef.Arch, guest *cpudef.CPUDef) (CompareResult, *catalog.Model, string, error) {
	if guest.Arch != cpudef.ArchNone {
		if !Supports(guest.Arch) {
			return Unrelated, nil, fmt.Sprintf("unsupported architecture %s", guest.Arch), nil
		}
		if hostArch != cpudef.ArchNone && guest.Arch != hostArch {
			return Unrelated, nil, fmt.Sprintf("guest architecture %s incompatible with host architecture %s", guest.Arch, hostArch), nil
		}
	}

	if guest.Vendor != "" {
		if host.Vendor == nil {
			return Unrelated, nil, fmt.Sprintf("guest vendor %s incompatible with host without a vendor", guest.Vendor), nil
		}
		if guest.Vendor != host.Vendor.Name {
			return Unrelated, nil, fmt.Sprintf("guest vendor %s incompatible with host vendor %s", guest.Vendor, host.Vendor.Name), nil
		}
	}

	force, err := ModelFromCPU(cat, guest, cpudef.PolicyForce)
	if err != nil {
		return Unrelated, nil, "", err
	}
	require, err := ModelFromCPU(cat, guest, cpudef.PolicyRequire)
	if err != nil {
		return Unrelated, nil, "", err
	}
	optional, err := ModelFromCPU(cat, guest, cpudef.PolicyOptional)
	if err != nil {
		return Unrelated, nil, "", err
	}
	disable, err := ModelFromCPU(cat, guest, cpudef.PolicyDisable)
	if err != nil {
		return Unrelated, nil, "", err
	}
	forbid, err := ModelFromCPU(cat, guest, cpudef.PolicyForbid)
	if err != nil {
		return Unrelated, nil, "", err
	}

	forbidden := host.Data.Copy()
	forbidden.Intersect(forbid.Data)
	if !forbidden.IsEmpty() {
		return Unrelated, nil, "forbidden features present on host: " + featureNames(cat, forbidden), nil
	}

	require.Data.Subtract(force.Data)
	require.Data.Subtract(optional.Data)
	require.Data.Subtract(disable.Data)

	if !host.Data.IsSubset(require.Data) {
		missing := require.Data.Copy()
		missing.Subtract(host.Data)
		return Unrelated, nil, "host missing required features: " + featureNames(cat, missing), nil
	}

	diff := host.Data.Copy()
	diff.Subtract(optional.Data)
	diff.Subtract(require.Data)
	diff.Subtract(disable.Data)
	diff.Subtract(force.Data)

	result := Superset
	if diff.IsEmpty() {
		result = Equal
	}

	if guest.Match == cpudef.MatchStrict && result == Superset {
		return Unrelated, nil, "host features outside guest's strict request: " + featureNames(cat, diff), nil
	}

	guestModel := host.Copy()
	guestModel.Name = guest.Model

	if guest.Type == cpudef.TypeGuest && guest.Match == cpudef.MatchExact {
		guestModel.Data.Subtract(diff)
	}
	guestModel.Data.Add(force.Data)
	guestModel.Data.Subtract(disable.Data)

	return result, guestModel, "", nil
}

// featureNames names the catalog features present in data via the same
// greedy subset-peel dataToCPUFeatures uses, without mutating a CPUDef,
// so Compute's INCOMPATIBLE outcomes can report offending feature names
// (x86FeatureNames, spec.md §4.4).
func featureNames(cat *catalog.Catalog, data *cpuid.Data) string {
	working := data.Copy()
	var names []string
	for _, f := range cat.Features() {
		if working.IsSubset(f.Data) {
			working.Subtract(f.Data)
			names = append(names, f.Name)
		}
	}
	return strings.Join(names, ", ")
}
