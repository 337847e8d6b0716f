// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package x86cpu

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"

	"cpuarbiter/internal/catalog"
	"cpuarbiter/internal/cpudef"
	"cpuarbiter/internal/cpuid"
)

// ErrUnsupportedModel and ErrNoSuitableModel round out the InputError
// taxonomy entries Decode can raise (spec.md §7).
var (
	ErrUnsupportedModel = errors.New("CPU model not supported by hypervisor")
	ErrNoSuitableModel  = errors.New("no suitable CPU model for given data")
)

// DecodeFlags are the bit flags accepted by Decode and Baseline.
type DecodeFlags uint

// ExpandFeatures, when set, makes Decode/Baseline add the residue left
// over after subtracting the selected model's own features as extra
// REQUIRE-policy features on the decoded output.
const ExpandFeatures DecodeFlags = 1

// dataToCPUFeatures is the greedy subset-peel (x86DataToCPUFeatures,
// spec.md §4.3): walk catalog features in load order, and for each
// that is a subset of the working data, subtract it out and emit it
// under the given policy. This is not minimum-cover; catalog order is
// part of the contract.
func dataToCPUFeatures(cat *catalog.Catalog, cpu *cpudef.CPUDef, policy cpudef.Policy, data *cpuid.Data) {
	for _, f := range cat.Features() {
		if data.IsSubset(f.Data) {
			data.Subtract(f.Data)
			cpu.AddFeature(f.Name, policy)
		}
	}
}

// dataToCPU builds the CPUDef a candidate model decodes to
// (x86DataToCPU): extract the vendor, then express data's surplus over
// the model as REQUIRE features and the model's surplus over data as
// DISABLE features, via the greedy peel.
func dataToCPU(cat *catalog.Catalog, data *cpuid.Data, model *catalog.Model) *cpudef.CPUDef {
	cpu := &cpudef.CPUDef{Type: cpudef.TypeGuest, Model: model.Name}

	working := data.Copy()
	modelData := model.Data.Copy()

	if v, ok := cat.VendorForLeaf(working); ok {
		cpu.Vendor = v.Name
		working.ClearCPUID(v.Leaf)
	}

	working.Subtract(modelData)
	modelData.Subtract(data)

	dataToCPUFeatures(cat, cpu, cpudef.PolicyRequire, working)
	dataToCPUFeatures(cat, cpu, cpudef.PolicyDisable, modelData)

	return cpu
}

// Encode builds, for each requested output policy, the CPUIDData that
// policy resolves to for cpu (x86Encode/x86EncodePolicy). Requests are
// expressed as a set of EncodeOutput values; results are returned
// in a map keyed by the same values. Encode is all-or-nothing: on any
// failure no partial result is returned.
type EncodeOutput int

const (
	OutputForced EncodeOutput = iota
	OutputRequired
	OutputOptional
	OutputDisabled
	OutputForbidden
	OutputVendor
)

var outputPolicy = map[EncodeOutput]cpudef.Policy{
	OutputForced:    cpudef.PolicyForce,
	OutputRequired:  cpudef.PolicyRequire,
	OutputOptional:  cpudef.PolicyOptional,
	OutputDisabled:  cpudef.PolicyDisable,
	OutputForbidden: cpudef.PolicyForbid,
}

// Encode implements x86Encode: for each requested output it builds a
// model under the corresponding policy and returns its data; the
// vendor output, if requested, is a fresh CPUIDData containing only
// the matched vendor's leaf.
func Encode(cat *catalog.Catalog, cpu *cpudef.CPUDef, requested mapset.Set[EncodeOutput]) (map[EncodeOutput]*cpuid.Data, error) {
	out := map[EncodeOutput]*cpuid.Data{}

	for output, policy := range outputPolicy {
		if !requested.Contains(output) {
			continue
		}
		model, err := ModelFromCPU(cat, cpu, policy)
		if err != nil {
			return nil, err
		}
		out[output] = model.Data
	}

	if requested.Contains(OutputVendor) {
		vendorData := cpuid.NewData()
		if cpu.Vendor != "" {
			v, ok := cat.FindVendor(cpu.Vendor)
			if !ok {
				return nil, errors.Wrapf(catalog.ErrUnknownVendor, "%s", cpu.Vendor)
			}
			vendorData.AddCPUID(v.Leaf)
		}
		out[OutputVendor] = vendorData
	}

	return out, nil
}

// modelAllowed reports whether name passes the caller's allowlist: an
// empty/nil allowlist permits everything.
func modelAllowed(allowlist mapset.Set[string], name string) bool {
	if allowlist == nil || allowlist.Cardinality() == 0 {
		return true
	}
	return allowlist.Contains(name)
}

// Decode implements x86Decode: scan every catalog model in decode
// order (most-recently-loaded first), skip those the allowlist
// excludes (unless it's the preferred model and fallback allows it),
// and keep the smallest-feature-count candidate — ties resolved by
// that same iteration order, so the most recently loaded of equal-size
// candidates wins.
func Decode(cat *catalog.Catalog, cpuType cpudef.Type, fallback cpudef.Fallback, data *cpuid.Data, allowlist mapset.Set[string], preferred string, flags DecodeFlags) (*cpudef.CPUDef, error) {
	var best *cpudef.CPUDef
	var bestData *cpuid.Data

	for _, candidate := range cat.ModelsByDecodeOrder() {
		if !modelAllowed(allowlist, candidate.Name) {
			if preferred != "" && candidate.Name == preferred {
				if fallback != cpudef.FallbackAllow {
					return nil, errors.Wrapf(ErrUnsupportedModel, "%s", preferred)
				}
				// fallback allowed: fall through and still consider it.
			} else {
				continue
			}
		}

		cpuCandidate := dataToCPU(cat, data, candidate)

		if candidate.Vendor != nil && cpuCandidate.Vendor != "" && candidate.Vendor.Name != cpuCandidate.Vendor {
			// vendor conflict: skip and continue scanning, per spec.md's
			// Open Questions resolution of the source's goto-next.
			continue
		}

		if cpuType == cpudef.TypeHost {
			cpuCandidate.Type = cpudef.TypeHost
			disabled := false
			for i := range cpuCandidate.Features {
				if cpuCandidate.Features[i].Policy == cpudef.PolicyDisable {
					disabled = true
					break
				}
				cpuCandidate.Features[i].Policy = cpudef.PolicyNone
			}
			if disabled {
				continue
			}
		}

		if preferred != "" && cpuCandidate.Model == preferred {
			best = cpuCandidate
			bestData = candidate.Data
			break
		}

		if best == nil || len(best.Features) > len(cpuCandidate.Features) {
			best = cpuCandidate
			bestData = candidate.Data
		}
	}

	if best == nil {
		return nil, ErrNoSuitableModel
	}

	if flags&ExpandFeatures != 0 {
		residue := data.Copy()
		residue.Subtract(bestData)
		dataToCPUFeatures(cat, best, cpudef.PolicyRequire, residue)
	}

	return best, nil
}
