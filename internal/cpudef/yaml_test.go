// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package cpudef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAMLGuestCustomExact(t *testing.T) {
	doc := `
arch: x86_64
type: guest
mode: custom
match: exact
model: core2
vendor: Intel
features:
  sse2: require
  avx: disable
`
	cpu, err := LoadYAML([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, ArchX86_64, cpu.Arch)
	assert.Equal(t, TypeGuest, cpu.Type)
	assert.Equal(t, ModeCustom, cpu.Mode)
	assert.Equal(t, MatchExact, cpu.Match)
	assert.Equal(t, "core2", cpu.Model)
	assert.Equal(t, "Intel", cpu.Vendor)
	assert.Len(t, cpu.Features, 2)
}

func TestLoadYAMLDefaults(t *testing.T) {
	cpu, err := LoadYAML([]byte(`model: base`))
	require.NoError(t, err)

	assert.Equal(t, ArchNone, cpu.Arch)
	assert.Equal(t, TypeHost, cpu.Type)
	assert.Equal(t, ModeCustom, cpu.Mode)
	assert.Equal(t, MatchExact, cpu.Match)
	assert.Equal(t, FallbackAllow, cpu.Fallback)
}

func TestLoadYAMLUnknownPolicyErrors(t *testing.T) {
	_, err := LoadYAML([]byte(`
model: base
features:
  sse2: maybe
`))
	assert.Error(t, err)
}

func TestLoadYAMLUnknownMatchErrors(t *testing.T) {
	_, err := LoadYAML([]byte(`match: loose`))
	assert.Error(t, err)
}
