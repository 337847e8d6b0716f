// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package x86cpu implements the x86 CPU feature comparison, encoding,
// decoding, and reconciliation pipeline described in spec.md §4: the
// compute/compare engine, the model/feature resolver, and the
// baseline/update/hasFeature/nodeData operations, all built on top of
// internal/cpuid's leaf algebra and internal/catalog's named entities.
package x86cpu

import (
	"github.com/pkg/errors"

	"cpuarbiter/internal/catalog"
	"cpuarbiter/internal/cpudef"
	"cpuarbiter/internal/cpuid"
)

// ErrUnknownModel and ErrUnknownFeature are the InputError taxonomy
// entries raised at use-site (as opposed to catalog.ErrUnknownVendor
// etc. raised during catalog load).
var (
	ErrUnknownModel   = errors.New("unknown CPU model")
	ErrUnknownFeature = errors.New("unknown CPU feature")
)

// ModelFromCPU builds a catalog.Model representing the subset of cpu's
// definition that matches the requested policy (x86ModelFromCPU,
// spec.md §4.3).
//
//   - REQUIRE starts from a copy of the named catalog model (error if
//     absent); every other policy starts from an empty model.
//   - A HOST-type cpu with a non-REQUIRE policy has no per-feature
//     policy, so the empty model is returned immediately.
//   - For GUEST, only features whose policy equals the requested
//     policy are unioned in; for HOST, every listed feature is.
func ModelFromCPU(cat *catalog.Catalog, cpu *cpudef.CPUDef, policy cpudef.Policy) (*catalog.Model, error) {
	var model *catalog.Model

	if policy == cpudef.PolicyRequire {
		found, ok := cat.FindModel(cpu.Model)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownModel, "%s", cpu.Model)
		}
		model = found.Copy()
	} else {
		model = &catalog.Model{Data: cpuid.NewData()}
		if cpu.Type == cpudef.TypeHost {
			return model, nil
		}
	}

	for _, fp := range cpu.Features {
		if cpu.Type == cpudef.TypeGuest && fp.Policy != policy {
			continue
		}
		f, ok := cat.FindFeature(fp.Name)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownFeature, "%s", fp.Name)
		}
		model.Data.Add(f.Data)
	}

	return model, nil
}

// SubtractCPU removes cpu's named model's data, and every one of its
// listed features' data, from model (x86ModelSubtractCPU). Used by
// Update's CUSTOM/MINIMUM path to compute the host's remaining
// feature residue after a guest's explicit requirements are removed.
func SubtractCPU(cat *catalog.Catalog, model *catalog.Model, cpu *cpudef.CPUDef) error {
	cpuModel, ok := cat.FindModel(cpu.Model)
	if !ok {
		return errors.Wrapf(ErrUnknownModel, "%s", cpu.Model)
	}
	model.Data.Subtract(cpuModel.Data)

	for _, fp := range cpu.Features {
		f, ok := cat.FindFeature(fp.Name)
		if !ok {
			return errors.Wrapf(ErrUnknownFeature, "%s", fp.Name)
		}
		model.Data.Subtract(f.Data)
	}
	return nil
}
