// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package hasfeature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpuarbiter/internal/catalog"
	"cpuarbiter/internal/cpuid"
)

const minimalCatalogYAML = `
features:
  - name: fpu
    cpuid:
      - function: "0x1"
        edx: "0x1"
  - name: sse2
    cpuid:
      - function: "0x1"
        edx: "0x4000000"
`

func TestEvaluateAndExpression(t *testing.T) {
	cat, err := catalog.LoadYAML([]byte(minimalCatalogYAML))
	require.NoError(t, err)

	data := cpuid.NewData()
	data.AddCPUID(cpuid.Leaf{Function: 1, EDX: 0x4000001})

	result, err := evaluate(cat, data, "fpu && sse2")
	require.NoError(t, err)
	assert.True(t, result)

	result, err = evaluate(cat, data, "!sse2")
	require.NoError(t, err)
	assert.False(t, result)
}

func TestEvaluateUnknownFeatureErrors(t *testing.T) {
	cat, err := catalog.LoadYAML([]byte(minimalCatalogYAML))
	require.NoError(t, err)

	_, err = evaluate(cat, cpuid.NewData(), "avx2")
	assert.Error(t, err)
}
