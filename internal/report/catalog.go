// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package report renders catalog and comparison data for humans: an
// xlsx workbook for the catalog (one sheet per collection, in the
// teacher's table-report idiom) and a terminal text table for
// one-shot CLI output.
package report

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"cpuarbiter/internal/catalog"
	"cpuarbiter/internal/cpuid"
)

const (
	sheetVendors  = "Vendors"
	sheetFeatures = "Features"
	sheetModels   = "Models"
)

func cellName(col, row int) string {
	columnName, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ""
	}
	name, err := excelize.JoinCellName(columnName, row)
	if err != nil {
		return ""
	}
	return name
}

// WriteCatalogWorkbook renders the catalog to an xlsx file at path,
// one sheet per collection, mirroring the teacher's one-table-per-row
// cell-by-cell rendering in internal/report/render_excel.go.
func WriteCatalogWorkbook(cat *catalog.Catalog, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "building header style")
	}

	f.SetSheetName("Sheet1", sheetVendors)
	writeVendorSheet(f, cat, headerStyle)

	if _, err := f.NewSheet(sheetFeatures); err != nil {
		return errors.Wrap(err, "features sheet")
	}
	writeFeatureSheet(f, cat, headerStyle)

	if _, err := f.NewSheet(sheetModels); err != nil {
		return errors.Wrap(err, "models sheet")
	}
	writeModelSheet(f, cat, headerStyle)

	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "saving workbook to %s", path)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, row int, style int, headers ...string) {
	for col, h := range headers {
		name := cellName(col+1, row)
		_ = f.SetCellValue(sheet, name, h)
		_ = f.SetCellStyle(sheet, name, name, style)
	}
}

func writeVendorSheet(f *excelize.File, cat *catalog.Catalog, headerStyle int) {
	writeHeader(f, sheetVendors, 1, headerStyle, "Name", "Leaf Function", "EBX", "ECX", "EDX")
	row := 2
	for _, v := range cat.Vendors() {
		_ = f.SetCellValue(sheetVendors, cellName(1, row), v.Name)
		_ = f.SetCellValue(sheetVendors, cellName(2, row), fmt.Sprintf("0x%x", v.Leaf.Function))
		_ = f.SetCellValue(sheetVendors, cellName(3, row), fmt.Sprintf("0x%08x", v.Leaf.EBX))
		_ = f.SetCellValue(sheetVendors, cellName(4, row), fmt.Sprintf("0x%08x", v.Leaf.ECX))
		_ = f.SetCellValue(sheetVendors, cellName(5, row), fmt.Sprintf("0x%08x", v.Leaf.EDX))
		row++
	}
}

func writeFeatureSheet(f *excelize.File, cat *catalog.Catalog, headerStyle int) {
	writeHeader(f, sheetFeatures, 1, headerStyle, "Name", "Leaves")
	row := 2
	for _, feat := range cat.Features() {
		_ = f.SetCellValue(sheetFeatures, cellName(1, row), feat.Name)
		_ = f.SetCellValue(sheetFeatures, cellName(2, row), leafCount(feat.Data))
		row++
	}
}

func writeModelSheet(f *excelize.File, cat *catalog.Catalog, headerStyle int) {
	writeHeader(f, sheetModels, 1, headerStyle, "Name", "Vendor", "Leaves")
	row := 2
	for _, m := range cat.ModelsByLoadOrder() {
		vendor := ""
		if m.Vendor != nil {
			vendor = m.Vendor.Name
		}
		_ = f.SetCellValue(sheetModels, cellName(1, row), m.Name)
		_ = f.SetCellValue(sheetModels, cellName(2, row), vendor)
		_ = f.SetCellValue(sheetModels, cellName(3, row), leafCount(m.Data))
		row++
	}
}

// leafCount counts leaves present in d by draining an iterator, since
// cpuid.Data exposes no direct length accessor.
func leafCount(d *cpuid.Data) int {
	n := 0
	it := d.Iterate()
	for it.Next() {
		n++
	}
	return n
}
