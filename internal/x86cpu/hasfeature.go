// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package x86cpu

import (
	"github.com/pkg/errors"

	"cpuarbiter/internal/catalog"
	"cpuarbiter/internal/cpuid"
)

// HasFeature reports whether data contains every CPUID bit a named
// catalog feature requires. Unlike the source's boolean-with-an-error
// path, HasFeature returns ErrUnknownFeature rather than silently
// treating an unrecognized name as absent, so callers can distinguish
// "not present" from "not a real feature" (spec.md §4.7, Open
// Questions).
func HasFeature(cat *catalog.Catalog, data *cpuid.Data, name string) (bool, error) {
	f, ok := cat.FindFeature(name)
	if !ok {
		return false, errors.Wrapf(ErrUnknownFeature, "%s", name)
	}
	return data.IsSubset(f.Data), nil
}
