// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package cpuid implements the CPUID leaf algebra: sparse, ordered
// per-function register tuples and the bitwise operations used to
// combine, compare, and decode them.
package cpuid

import "fmt"

// ExtBase is the function value at which extended CPUID leaves begin.
const ExtBase uint32 = 0x80000000

// Leaf is the four-register output of a single CPUID function call.
type Leaf struct {
	Function uint32
	EAX      uint32
	EBX      uint32
	ECX      uint32
	EDX      uint32
}

var nullLeaf = Leaf{}

func (l Leaf) isNull() bool {
	return l.EAX == 0 && l.EBX == 0 && l.ECX == 0 && l.EDX == 0
}

// match reports whether all four registers are bit-equal.
func (l Leaf) match(o Leaf) bool {
	return l.EAX == o.EAX && l.EBX == o.EBX && l.ECX == o.ECX && l.EDX == o.EDX
}

// ContainsMasked reports whether l mask-contains every bit set in mask,
// i.e. (l & mask) == mask on every register.
func (l Leaf) ContainsMasked(mask Leaf) bool {
	return l.matchMasked(mask)
}

// matchMasked reports whether l mask-contains every bit set in mask.
func (l Leaf) matchMasked(mask Leaf) bool {
	return l.EAX&mask.EAX == mask.EAX &&
		l.EBX&mask.EBX == mask.EBX &&
		l.ECX&mask.ECX == mask.ECX &&
		l.EDX&mask.EDX == mask.EDX
}

func (l *Leaf) setBits(mask Leaf) {
	l.EAX |= mask.EAX
	l.EBX |= mask.EBX
	l.ECX |= mask.ECX
	l.EDX |= mask.EDX
}

func (l *Leaf) clearBits(mask Leaf) {
	l.EAX &^= mask.EAX
	l.EBX &^= mask.EBX
	l.ECX &^= mask.ECX
	l.EDX &^= mask.EDX
}

func (l *Leaf) andBits(mask Leaf) {
	l.EAX &= mask.EAX
	l.EBX &= mask.EBX
	l.ECX &= mask.ECX
	l.EDX &= mask.EDX
}

// Data is the sparse, ordered store of CPUID leaves: basic[i] holds
// function i, extended[i] holds function ExtBase+i. A function past
// the end of its sequence behaves as the null leaf. The store only
// grows; it never shrinks.
type Data struct {
	basic    []Leaf
	extended []Leaf
}

// NewData returns an empty CPUID data store.
func NewData() *Data {
	return &Data{}
}

// Copy returns a deep, independently-owned copy of d.
func (d *Data) Copy() *Data {
	if d == nil {
		return NewData()
	}
	c := &Data{
		basic:    make([]Leaf, len(d.basic)),
		extended: make([]Leaf, len(d.extended)),
	}
	copy(c.basic, d.basic)
	copy(c.extended, d.extended)
	return c
}

// expand grows basic/extended by the given counts, padding new slots
// with null leaves whose Function matches their index.
func (d *Data) expand(basicBy, extendedBy int) {
	if basicBy > 0 {
		start := len(d.basic)
		d.basic = append(d.basic, make([]Leaf, basicBy)...)
		for i := 0; i < basicBy; i++ {
			d.basic[start+i].Function = uint32(start + i)
		}
	}
	if extendedBy > 0 {
		start := len(d.extended)
		d.extended = append(d.extended, make([]Leaf, extendedBy)...)
		for i := 0; i < extendedBy; i++ {
			d.extended[start+i].Function = uint32(start+i) + ExtBase
		}
	}
}

// slotFor reports which sequence (basic or extended) houses the given
// function and the function's index within it.
func slotFor(function uint32) (extended bool, idx int) {
	if function < ExtBase {
		return false, int(function)
	}
	return true, int(function - ExtBase)
}

// AddCPUID ORs a single leaf's bits into the store, growing as needed.
func (d *Data) AddCPUID(l Leaf) {
	extended, idx := slotFor(l.Function)
	if extended {
		if idx+1 > len(d.extended) {
			d.expand(0, idx+1-len(d.extended))
		}
		d.extended[idx].setBits(l)
	} else {
		if idx+1 > len(d.basic) {
			d.expand(idx+1-len(d.basic), 0)
		}
		d.basic[idx].setBits(l)
	}
}

// ClearCPUID clears a single leaf's bits from the store wherever
// present; functions past the end of the store are left untouched.
func (d *Data) ClearCPUID(l Leaf) {
	extended, idx := slotFor(l.Function)
	seq := d.basic
	if extended {
		seq = d.extended
	}
	if idx < 0 || idx >= len(seq) {
		return
	}
	seq[idx].clearBits(l)
}

// Lookup returns the leaf at function and true, or the zero Leaf and
// false if the function is absent or holds only the null leaf.
func (d *Data) Lookup(function uint32) (Leaf, bool) {
	extended, idx := slotFor(function)
	seq := d.basic
	if extended {
		seq = d.extended
	}
	if idx < 0 || idx >= len(seq) {
		return nullLeaf, false
	}
	if seq[idx].isNull() {
		return nullLeaf, false
	}
	return seq[idx], true
}

// Add grows d to cover src's indices, then unions register-wise at
// every overlapping leaf (dst |= src).
func (d *Data) Add(src *Data) {
	if src == nil {
		return
	}
	d.expand(len(src.basic)-len(d.basic), len(src.extended)-len(d.extended))
	for i := range src.basic {
		d.basic[i].setBits(src.basic[i])
	}
	for i := range src.extended {
		d.extended[i].setBits(src.extended[i])
	}
}

// Subtract clears, for every leaf present in both d and src (bounded
// by the shorter sequence), d's bits wherever src has them.
func (d *Data) Subtract(src *Data) {
	if src == nil {
		return
	}
	n := min(len(d.basic), len(src.basic))
	for i := 0; i < n; i++ {
		d.basic[i].clearBits(src.basic[i])
	}
	n = min(len(d.extended), len(src.extended))
	for i := 0; i < n; i++ {
		d.extended[i].clearBits(src.extended[i])
	}
}

// Intersect keeps, for every non-null leaf of d, only the bits also
// present at the same function in src; leaves absent from src are
// cleared entirely.
func (d *Data) Intersect(src *Data) {
	it := d.Iterate()
	for it.Next() {
		l := it.Leaf()
		if other, ok := src.Lookup(l.Function); ok {
			extended, idx := slotFor(l.Function)
			if extended {
				d.extended[idx].andBits(other)
			} else {
				d.basic[idx].andBits(other)
			}
		} else {
			extended, idx := slotFor(l.Function)
			if extended {
				d.extended[idx] = Leaf{Function: l.Function}
			} else {
				d.basic[idx] = Leaf{Function: l.Function}
			}
		}
	}
}

// IsSubset reports whether every non-null leaf of sub is mask-contained
// in the same function's leaf of d (d is the superset candidate).
func (d *Data) IsSubset(sub *Data) bool {
	it := sub.Iterate()
	for it.Next() {
		l := it.Leaf()
		super, ok := d.Lookup(l.Function)
		if !ok || !super.matchMasked(l) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether d has no non-null leaf.
func (d *Data) IsEmpty() bool {
	it := d.Iterate()
	return !it.Next()
}

// Match reports whether d and o are bit-equal on every leaf present in
// either (absent leaves are compared as null).
func (d *Data) Match(o *Data) bool {
	n := max(len(d.basic), len(o.basic))
	for i := 0; i < n; i++ {
		a, _ := d.Lookup(uint32(i))
		b, _ := o.Lookup(uint32(i))
		if !a.match(b) {
			return false
		}
	}
	n = max(len(d.extended), len(o.extended))
	for i := 0; i < n; i++ {
		a, _ := d.Lookup(uint32(i) + ExtBase)
		b, _ := o.Lookup(uint32(i) + ExtBase)
		if !a.match(b) {
			return false
		}
	}
	return true
}

// Iterator yields the non-null leaves of a Data in order: all of basic
// ascending by function, then all of extended ascending by function.
type Iterator struct {
	d         *Data
	pos       int
	inExt     bool
	cur       Leaf
	exhausted bool
}

// Iterate returns a fresh iterator over d's non-null leaves. An
// exhausted iterator stays exhausted; calling Iterate again restarts
// the walk from the first leaf (a deliberate relaxation of the
// source's single-pass semantics; see spec.md §4.1).
func (d *Data) Iterate() *Iterator {
	return &Iterator{d: d, pos: -1}
}

// Next advances the iterator and reports whether a leaf is available.
func (it *Iterator) Next() bool {
	if it.d == nil || it.exhausted {
		return false
	}
	for {
		it.pos++
		if !it.inExt {
			if it.pos < len(it.d.basic) {
				it.cur = it.d.basic[it.pos]
			} else {
				it.inExt = true
				it.pos = 0
			}
		}
		if it.inExt {
			if it.pos < len(it.d.extended) {
				it.cur = it.d.extended[it.pos]
			} else {
				it.exhausted = true
				return false
			}
		}
		if !it.cur.isNull() {
			return true
		}
	}
}

// Leaf returns the leaf found by the most recent call to Next.
func (it *Iterator) Leaf() Leaf {
	return it.cur
}

func (l Leaf) String() string {
	return fmt.Sprintf("0x%08x: eax=0x%08x ebx=0x%08x ecx=0x%08x edx=0x%08x",
		l.Function, l.EAX, l.EBX, l.ECX, l.EDX)
}
