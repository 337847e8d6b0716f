// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package catalog holds the curated set of named vendors, features, and
// models that the compute/codec pipeline resolves against. Entries are
// built once at load time, from a stream of (element kind, accessor)
// callbacks, and treated as immutable shared reference data thereafter.
package catalog

import (
	"github.com/pkg/errors"

	"cpuarbiter/internal/cpuid"
)

// Sentinel errors from spec.md §7's CatalogError taxonomy. Use
// errors.Is to test for them; loaders wrap them with errors.Wrapf to
// name the offending element.
var (
	ErrDuplicateName   = errors.New("duplicate name")
	ErrMissingName     = errors.New("missing name")
	ErrMalformedVendor = errors.New("malformed vendor")
	ErrMalformedCPUID  = errors.New("malformed cpuid leaf")
	ErrUnknownAncestor = errors.New("unknown ancestor model")
	ErrUnknownVendor   = errors.New("unknown vendor")
	ErrUnknownFeature  = errors.New("unknown feature")
)

// VendorStringLength is the fixed length of a vendor identification
// string (e.g. "GenuineIntel").
const VendorStringLength = 12

// Vendor is a named 12-character CPU vendor string, encoded as a single
// function=0 CPUID leaf.
type Vendor struct {
	Name string
	Leaf cpuid.Leaf
}

// Feature is a named, reusable bundle of CPUID bits.
type Feature struct {
	Name string
	Data *cpuid.Data
}

// Equal reports whether two features carry bit-equal data.
func (f *Feature) Equal(o *Feature) bool {
	return f.Data.Match(o.Data)
}

// Model is a named CPU definition: the union of an optional ancestor
// model's data plus every referenced feature's data, optionally bound
// to a vendor.
type Model struct {
	Name   string
	Vendor *Vendor
	Data   *cpuid.Data
}

// Copy returns an independently-owned copy of m.
func (m *Model) Copy() *Model {
	return &Model{Name: m.Name, Vendor: m.Vendor, Data: m.Data.Copy()}
}

// Catalog is the full set of vendors, features, and models loaded from
// a single declarative source. Collections are indexed by unique name;
// insertion order is preserved for Models (see ModelsByLoadOrder /
// ModelsByDecodeOrder).
type Catalog struct {
	vendors      []*Vendor
	vendorByName map[string]*Vendor

	features      []*Feature
	featureByName map[string]*Feature

	models      []*Model
	modelByName map[string]*Model
}

// New returns an empty catalog ready for Load calls.
func New() *Catalog {
	return &Catalog{
		vendorByName:  map[string]*Vendor{},
		featureByName: map[string]*Feature{},
		modelByName:   map[string]*Model{},
	}
}

// Vendors returns vendors in load order.
func (c *Catalog) Vendors() []*Vendor { return c.vendors }

// Features returns features in load order. The greedy subset-peel
// (§4.3) depends on this exact order being stable and reproducible.
func (c *Catalog) Features() []*Feature { return c.features }

// ModelsByLoadOrder returns models in the order they were loaded.
func (c *Catalog) ModelsByLoadOrder() []*Model { return c.models }

// ModelsByDecodeOrder returns models in reverse load order: the order
// Decode's candidate scan uses, matching the source's head-insertion
// linked list (spec.md §4.3, §9).
func (c *Catalog) ModelsByDecodeOrder() []*Model {
	out := make([]*Model, len(c.models))
	for i, m := range c.models {
		out[len(c.models)-1-i] = m
	}
	return out
}

// FindVendor looks up a vendor by name.
func (c *Catalog) FindVendor(name string) (*Vendor, bool) {
	v, ok := c.vendorByName[name]
	return v, ok
}

// FindFeature looks up a feature by name.
func (c *Catalog) FindFeature(name string) (*Feature, bool) {
	f, ok := c.featureByName[name]
	return f, ok
}

// FindModel looks up a model by name.
func (c *Catalog) FindModel(name string) (*Model, bool) {
	m, ok := c.modelByName[name]
	return m, ok
}

// VendorForLeaf scans catalog vendors in load order and returns the
// first whose leaf is mask-contained in data, if any.
func (c *Catalog) VendorForLeaf(data *cpuid.Data) (*Vendor, bool) {
	for _, v := range c.vendors {
		if leaf, ok := data.Lookup(v.Leaf.Function); ok && leaf.ContainsMasked(v.Leaf) {
			return v, true
		}
	}
	return nil, false
}
