// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package x86cpu

import "cpuarbiter/internal/catalog"

// CompareResult is x86ModelCompare's four-way outcome (spec.md §4.4).
type CompareResult int

const (
	Equal CompareResult = iota
	Subset
	Superset
	Unrelated
)

func (r CompareResult) String() string {
	switch r {
	case Equal:
		return "equal"
	case Subset:
		return "subset"
	case Superset:
		return "superset"
	default:
		return "unrelated"
	}
}

// ModelCompare compares two models leaf by leaf and returns whether
// they are bit-equal, one is a strict subset/superset of the other in
// its non-null leaves, or they are unrelated (each has private bits
// the other lacks on some leaf). The walk runs twice, once per model,
// because a leaf present only on one side must still be judged against
// the other side's absence (spec.md §4.4, §9).
func ModelCompare(model1, model2 *catalog.Model) CompareResult {
	result := Equal

	it1 := model1.Data.Iterate()
	for it1.Next() {
		leaf1 := it1.Leaf()
		candidate := Superset

		if leaf2, ok := model2.Data.Lookup(leaf1.Function); ok {
			if leaf1 == leaf2 {
				continue
			}
			if !leaf1.ContainsMasked(leaf2) {
				candidate = Subset
			}
		}

		if result == Equal {
			result = candidate
		} else if result != candidate {
			return Unrelated
		}
	}

	it2 := model2.Data.Iterate()
	for it2.Next() {
		leaf2 := it2.Leaf()
		candidate := Subset

		if leaf1, ok := model1.Data.Lookup(leaf2.Function); ok {
			if leaf2 == leaf1 {
				continue
			}
			if !leaf2.ContainsMasked(leaf1) {
				candidate = Superset
			}
		}

		if result == Equal {
			result = candidate
		} else if result != candidate {
			return Unrelated
		}
	}

	return result
}
