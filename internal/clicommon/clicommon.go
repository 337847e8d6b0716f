// Package clicommon defines data structures and functions shared by
// multiple application commands, e.g., compare, decode, baseline.
package clicommon

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"

	"cpuarbiter/internal/catalog"
	"cpuarbiter/internal/cpudef"
	"cpuarbiter/internal/metrics"
	"cpuarbiter/internal/util"
)

// FlagCatalogName is the flag every subcommand that touches the
// catalog exposes to locate its declarative YAML source.
const FlagCatalogName = "catalog"

// FlagAllowlistName restricts Decode/Baseline candidates to a named
// subset of models.
const FlagAllowlistName = "allow"

// LoadCatalog reads and parses the YAML catalog at path, recording its
// size on the catalog_size gauge once loaded.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	absPath, err := util.AbsPath(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving catalog path %s", path)
	}
	data, err := os.ReadFile(absPath) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog file %s", absPath)
	}
	cat, err := catalog.LoadYAML(data)
	if err != nil {
		return nil, errors.Wrap(err, "loading catalog")
	}
	metrics.RecordCatalogSize(len(cat.Vendors()), len(cat.Features()), len(cat.ModelsByLoadOrder()))
	return cat, nil
}

// LoadCPUDef reads and parses the YAML CPU definition at path.
func LoadCPUDef(path string) (*cpudef.CPUDef, error) {
	absPath, err := util.AbsPath(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving cpu definition path %s", path)
	}
	data, err := os.ReadFile(absPath) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(err, "reading cpu definition file %s", absPath)
	}
	return cpudef.LoadYAML(data)
}

// AllowlistSet converts a flag-provided slice of model names into the
// set type Decode/Baseline expect; an empty slice yields a nil set,
// which the pipeline treats as "no restriction".
func AllowlistSet(names []string) mapset.Set[string] {
	if len(names) == 0 {
		return nil
	}
	return mapset.NewSet(names...)
}
