// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package x86cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpuarbiter/internal/cpudef"
)

func TestUpdateHostPassthroughReplacesDefinition(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("x86_64")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Mode:  cpudef.ModeHostPassthrough,
		Model: "base",
		Match: cpudef.MatchMinimum,
	}
	guest.AddFeature("sse2", cpudef.PolicyDisable)

	require.NoError(t, Update(c, host, guest))
	assert.Equal(t, "x86_64", guest.Model)
	assert.Equal(t, "Intel", guest.Vendor)
	assert.Empty(t, guest.Features)
	assert.Equal(t, cpudef.MatchMinimum, guest.Match)
}

func TestUpdateHostModelKeepsExplicitFeatures(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("core2")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Mode:  cpudef.ModeHostModel,
		Model: "base",
		Match: cpudef.MatchExact,
	}
	guest.AddFeature("lm", cpudef.PolicyDisable)

	require.NoError(t, Update(c, host, guest))
	assert.Equal(t, "core2", guest.Model)
	assert.Equal(t, "Intel", guest.Vendor)
	assert.Equal(t, cpudef.MatchExact, guest.Match)
	require.Len(t, guest.Features, 1)
	assert.Equal(t, "lm", guest.Features[0].Name)
	assert.Equal(t, cpudef.PolicyDisable, guest.Features[0].Policy)
}

func TestUpdateHostModelForcesExactMatch(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("core2")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Mode:  cpudef.ModeHostModel,
		Model: "base",
		Match: cpudef.MatchMinimum,
	}

	require.NoError(t, Update(c, host, guest))
	assert.Equal(t, cpudef.MatchExact, guest.Match)
}

func TestUpdateCustomResolvesOptionalFeaturesAgainstHost(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("core2")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Mode:  cpudef.ModeCustom,
		Model: "base",
		Match: cpudef.MatchExact,
	}
	guest.AddFeature("sse2", cpudef.PolicyOptional)
	guest.AddFeature("lm", cpudef.PolicyOptional)

	require.NoError(t, Update(c, host, guest))

	var sse2Policy, lmPolicy cpudef.Policy
	for _, fp := range guest.Features {
		switch fp.Name {
		case "sse2":
			sse2Policy = fp.Policy
		case "lm":
			lmPolicy = fp.Policy
		}
	}
	assert.Equal(t, cpudef.PolicyRequire, sse2Policy, "host has sse2, so it becomes REQUIRE")
	assert.Equal(t, cpudef.PolicyDisable, lmPolicy, "host lacks lm, so it becomes DISABLE")
	assert.Equal(t, cpudef.MatchExact, guest.Match, "EXACT match is untouched by the optional resolution loop")
}

func TestUpdateCustomMinimumWidensResidueAsRequire(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("x86_64")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Mode:  cpudef.ModeCustom,
		Model: "base",
		Match: cpudef.MatchMinimum,
	}

	require.NoError(t, Update(c, host, guest))
	assert.Equal(t, "base", guest.Model, "CUSTOM mode never changes the model")
	assert.Equal(t, cpudef.MatchExact, guest.Match, "MINIMUM is promoted to EXACT")

	var gotSSE2, gotLM bool
	for _, fp := range guest.Features {
		switch fp.Name {
		case "sse2":
			gotSSE2 = fp.Policy == cpudef.PolicyRequire
		case "lm":
			gotLM = fp.Policy == cpudef.PolicyRequire
		}
	}
	assert.True(t, gotSSE2, "sse2 should be widened in as REQUIRE")
	assert.True(t, gotLM, "lm should be widened in as REQUIRE")
}

func TestUpdateCustomExactMatchLeavesDefinitionUntouched(t *testing.T) {
	c := loadMinimal(t)
	host, ok := c.FindModel("x86_64")
	require.True(t, ok)

	guest := &cpudef.CPUDef{
		Type:  cpudef.TypeGuest,
		Mode:  cpudef.ModeCustom,
		Model: "base",
		Match: cpudef.MatchExact,
	}

	require.NoError(t, Update(c, host, guest))
	assert.Equal(t, "base", guest.Model)
	assert.Empty(t, guest.Features)
}
