// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package cpuid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAMLRoundTrip(t *testing.T) {
	doc := `
leaves:
  - function: "0x1"
    edx: "0x1"
  - function: "0x80000001"
    edx: "0x20000000"
`
	data, err := LoadYAML([]byte(doc))
	require.NoError(t, err)

	leaf, ok := data.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, uint32(0x1), leaf.EDX)

	leaf, ok = data.Lookup(ExtBase + 1)
	require.True(t, ok)
	assert.Equal(t, uint32(0x20000000), leaf.EDX)

	out, err := DumpYAML(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), `function: "0x1"`)
}

func TestLoadYAMLInvalidHex(t *testing.T) {
	_, err := LoadYAML([]byte(`
leaves:
  - function: "not-hex"
`))
	assert.Error(t, err)
}
