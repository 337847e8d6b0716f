// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package x86cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpuarbiter/internal/cpudef"
)

func TestComputeIdenticalExactMatch(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("core2")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Match: cpudef.MatchExact,
		Model: "core2",
		Mode:  cpudef.ModeCustom,
	}

	result, guestModel, message, err := Compute(c, host, cpudef.ArchNone, guest)
	require.NoError(t, err)
	assert.Equal(t, Equal, result)
	assert.Empty(t, message)
	assert.True(t, host.Data.Match(guestModel.Data))
}

func TestComputeSupersetUnderMinimumMatch(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("x86_64")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Match: cpudef.MatchMinimum,
		Model: "base",
		Mode:  cpudef.ModeCustom,
	}

	result, _, _, err := Compute(c, host, cpudef.ArchNone, guest)
	require.NoError(t, err)
	assert.Equal(t, Superset, result)
}

func TestComputeStrictRejectsSuperset(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("x86_64")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Match: cpudef.MatchStrict,
		Model: "base",
		Mode:  cpudef.ModeCustom,
	}

	result, guestModel, message, err := Compute(c, host, cpudef.ArchNone, guest)
	require.NoError(t, err)
	assert.Equal(t, Unrelated, result)
	assert.Nil(t, guestModel)
	assert.Contains(t, message, "lm")
}

func TestComputeForbidRejectsHostFeature(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("core2")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Match: cpudef.MatchMinimum,
		Model: "base",
		Mode:  cpudef.ModeCustom,
	}
	guest.AddFeature("sse2", cpudef.PolicyForbid)

	result, _, message, err := Compute(c, host, cpudef.ArchNone, guest)
	require.NoError(t, err)
	assert.Equal(t, Unrelated, result)
	assert.Contains(t, message, "sse2")
}

func TestComputeVendorMismatchIsIncompatible(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("core2")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:   cpudef.TypeGuest,
		Match:  cpudef.MatchMinimum,
		Model:  "base",
		Vendor: "AMD",
		Mode:   cpudef.ModeCustom,
	}

	result, _, message, err := Compute(c, host, cpudef.ArchNone, guest)
	require.NoError(t, err)
	assert.Equal(t, Unrelated, result)
	assert.NotEmpty(t, message)
}

func TestComputeRequireMissingHostFeatureIsIncompatible(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("base")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Match: cpudef.MatchMinimum,
		Model: "base",
		Mode:  cpudef.ModeCustom,
	}
	guest.AddFeature("lm", cpudef.PolicyRequire)

	result, _, message, err := Compute(c, host, cpudef.ArchNone, guest)
	require.NoError(t, err)
	assert.Equal(t, Unrelated, result)
	assert.Contains(t, message, "lm")
}

func TestComputeForceAddsFeatureRegardlessOfHost(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("base")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Match: cpudef.MatchMinimum,
		Model: "base",
		Mode:  cpudef.ModeCustom,
	}
	guest.AddFeature("lm", cpudef.PolicyForce)

	result, guestModel, _, err := Compute(c, host, cpudef.ArchNone, guest)
	require.NoError(t, err)
	assert.NotEqual(t, Unrelated, result)

	lm, _ := c.FindFeature("lm")
	assert.True(t, guestModel.Data.IsSubset(lm.Data))
}

func TestComputeUnsupportedArchIsIncompatible(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("core2")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Match: cpudef.MatchExact,
		Model: "core2",
		Mode:  cpudef.ModeCustom,
		Arch:  cpudef.Arch(99),
	}

	result, guestModel, message, err := Compute(c, host, cpudef.ArchNone, guest)
	require.NoError(t, err)
	assert.Equal(t, Unrelated, result)
	assert.Nil(t, guestModel)
	assert.NotEmpty(t, message)
}

func TestComputeMismatchedArchIsIncompatible(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("core2")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Match: cpudef.MatchExact,
		Model: "core2",
		Mode:  cpudef.ModeCustom,
		Arch:  cpudef.ArchI686,
	}

	result, guestModel, message, err := Compute(c, host, cpudef.ArchX86_64, guest)
	require.NoError(t, err)
	assert.Equal(t, Unrelated, result)
	assert.Nil(t, guestModel)
	assert.NotEmpty(t, message)
}

func TestComputeMatchingArchSucceeds(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("core2")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Match: cpudef.MatchExact,
		Model: "core2",
		Mode:  cpudef.ModeCustom,
		Arch:  cpudef.ArchX86_64,
	}

	result, _, message, err := Compute(c, host, cpudef.ArchX86_64, guest)
	require.NoError(t, err)
	assert.Equal(t, Equal, result)
	assert.Empty(t, message)
}
