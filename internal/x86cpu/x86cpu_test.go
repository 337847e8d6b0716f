// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package x86cpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cpuarbiter/internal/catalog"
	"cpuarbiter/internal/cpuid"
)

// testLeaf builds a throwaway leaf (function, ebx bits) for tests that
// need to perturb a model's data without going through the catalog.
func testLeaf(function, ebx uint32) cpuid.Leaf {
	return cpuid.Leaf{Function: function, EBX: ebx}
}

// minimalCatalogYAML mirrors the literal catalog used throughout
// spec.md §8's end-to-end scenarios: Intel/AMD vendors, fpu/sse2/lm
// features, and base -> core2 -> x86_64 models.
const minimalCatalogYAML = `
vendors:
  - name: Intel
    string: GenuineIntel
  - name: AMD
    string: AuthenticAMD
features:
  - name: fpu
    cpuid:
      - function: "0x1"
        edx: "0x1"
  - name: sse2
    cpuid:
      - function: "0x1"
        edx: "0x4000000"
  - name: lm
    cpuid:
      - function: "0x80000001"
        edx: "0x20000000"
models:
  - name: base
    features: [fpu]
  - name: core2
    model: base
    vendor: Intel
    features: [sse2]
  - name: x86_64
    model: core2
    features: [lm]
`

func loadMinimal(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.LoadYAML([]byte(minimalCatalogYAML))
	require.NoError(t, err)
	return c
}
