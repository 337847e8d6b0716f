// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"cpuarbiter/internal/catalog"
)

const minimalCatalogYAML = `
vendors:
  - name: Intel
    string: GenuineIntel
features:
  - name: fpu
    cpuid:
      - function: "0x1"
        edx: "0x1"
models:
  - name: base
    vendor: Intel
    features: [fpu]
`

func TestWriteCatalogWorkbook(t *testing.T) {
	cat, err := catalog.LoadYAML([]byte(minimalCatalogYAML))
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.xlsx")

	require.NoError(t, WriteCatalogWorkbook(cat, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestTableWrite(t *testing.T) {
	tbl := &Table{Headers: []string{"Name", "Count"}}
	tbl.AddRow("fpu", "1")
	tbl.AddRow("sse2", "2")

	var b bytes.Buffer
	tbl.Write(&b)
	require.NotEmpty(t, b.String())
}
