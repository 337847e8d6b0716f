package cpuid

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leafData(leaves ...Leaf) *Data {
	d := NewData()
	for _, l := range leaves {
		d.AddCPUID(l)
	}
	return d
}

func TestAddUnionIdempotent(t *testing.T) {
	x := leafData(Leaf{Function: 1, EDX: 0x1})
	before := x.Copy()

	x.Add(leafData())
	assert.True(t, x.Match(before), "add(X, empty) == X")

	x.Add(x.Copy())
	assert.True(t, x.Match(before), "add(X, X) == X")
}

func TestSubtractSelfIsEmpty(t *testing.T) {
	x := leafData(Leaf{Function: 1, EDX: 0x1}, Leaf{Function: ExtBase + 1, EAX: 0x20})
	x.Subtract(x.Copy())
	assert.True(t, x.IsEmpty())
}

func TestIntersectLaws(t *testing.T) {
	x := leafData(Leaf{Function: 1, EDX: 0x3})
	xCopy := x.Copy()
	xCopy.Intersect(x.Copy())
	assert.True(t, xCopy.Match(x), "intersect(X, X) == X")

	empty := NewData()
	y := x.Copy()
	y.Intersect(empty)
	assert.True(t, y.IsEmpty(), "intersect(X, empty) == empty")
}

func TestIntersectDisjointLeavesIsEmpty(t *testing.T) {
	a := leafData(Leaf{Function: 1, EDX: 0x1})
	b := leafData(Leaf{Function: 2, EDX: 0x1})
	a.Intersect(b)
	assert.True(t, a.IsEmpty())
}

func TestIsSubsetAntisymmetry(t *testing.T) {
	a := leafData(Leaf{Function: 1, EDX: 0x3})
	b := leafData(Leaf{Function: 1, EDX: 0x3})
	assert.True(t, a.IsSubset(b))
	assert.True(t, b.IsSubset(a))

	c := leafData(Leaf{Function: 1, EDX: 0x1})
	assert.True(t, a.IsSubset(c), "narrower mask is a subset of the wider leaf")
	assert.False(t, c.IsSubset(a))
}

func TestAddThenSubtractRoundTrip(t *testing.T) {
	x := leafData(Leaf{Function: 1, EDX: 0x1})
	y := leafData(Leaf{Function: 2, EDX: 0x1})

	orig := x.Copy()
	x.Add(y)
	x.Subtract(y)
	assert.True(t, x.Match(orig), "disjoint add then subtract returns to original")
}

func TestAddThenSubtractOverlapping(t *testing.T) {
	x := leafData(Leaf{Function: 1, EDX: 0x1})
	y := leafData(Leaf{Function: 1, EDX: 0x1})

	x.Add(y)
	x.Subtract(y)
	assert.True(t, x.IsEmpty(), "bits present on both sides are cleared, not restored")
}

func TestIterateOrderBasicThenExtended(t *testing.T) {
	d := leafData(
		Leaf{Function: ExtBase + 2, EDX: 0x1},
		Leaf{Function: 1, EAX: 0x1},
		Leaf{Function: 3, EAX: 0x1},
	)
	var fns []uint32
	it := d.Iterate()
	for it.Next() {
		fns = append(fns, it.Leaf().Function)
	}
	require.Equal(t, []uint32{1, 3, ExtBase + 2}, fns)
}

func TestIterateSkipsInteriorNullLeaves(t *testing.T) {
	d := leafData(Leaf{Function: 3, EAX: 0x1})
	var count int
	it := d.Iterate()
	for it.Next() {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestIterateIsRestartable(t *testing.T) {
	d := leafData(Leaf{Function: 1, EAX: 0x1})
	it := d.Iterate()
	first := it.Next()
	require.True(t, first)

	it2 := d.Iterate()
	second := it2.Next()
	require.True(t, second)
	assert.Equal(t, it.Leaf(), it2.Leaf())
}

func TestLookupPastEndIsNull(t *testing.T) {
	d := leafData(Leaf{Function: 1, EAX: 0x1})
	_, ok := d.Lookup(5)
	assert.False(t, ok)
}

func TestGrowthPadsIntermediateSlotsAsNull(t *testing.T) {
	d := leafData(Leaf{Function: 3, EAX: 0x1})
	for i := uint32(0); i < 3; i++ {
		_, ok := d.Lookup(i)
		assert.False(t, ok, "intermediate slot %d must read back as absent", i)
	}
	l, ok := d.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, uint32(0x1), l.EAX)
}
