// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package catalog

import (
	"github.com/pkg/errors"

	"cpuarbiter/internal/cpuid"
)

// ElementKind identifies which catalog element an Accessor describes.
type ElementKind int

const (
	ElementVendor ElementKind = iota
	ElementFeature
	ElementModel
)

// CPUIDRecord is one nested <cpuid> entry under a <feature> element:
// a function number plus any subset of the four registers.
type CPUIDRecord struct {
	Function uint32
	EAX      uint32
	EBX      uint32
	ECX      uint32
	EDX      uint32
}

// Accessor is the attribute/child-enumeration surface the external
// config layer provides for one element. It is intentionally narrow:
// the catalog never parses the source format itself (spec.md §1).
type Accessor interface {
	// Name returns the element's required "name" attribute, or ("", false)
	// if absent.
	Name() (string, bool)
	// VendorString returns the 12-byte vendor identification string for
	// a VENDOR element.
	VendorString() (string, bool)
	// CPUIDRecords returns the nested <cpuid> entries of a FEATURE element.
	CPUIDRecords() []CPUIDRecord
	// AncestorModel returns the name of the nested <model> ancestor
	// reference of a MODEL element, if present.
	AncestorModel() (string, bool)
	// VendorRef returns the name of the nested <vendor> reference of a
	// MODEL element, if present.
	VendorRef() (string, bool)
	// FeatureRefs returns the names of the nested <feature> references
	// of a MODEL element.
	FeatureRefs() []string
}

// Load consumes one (element_kind, accessor) callback, the catalog's
// sole registration point for the external config layer (spec.md §6).
// Load is atomic per element: on failure nothing is added to the
// catalog, and previously loaded elements remain valid.
func (c *Catalog) Load(kind ElementKind, a Accessor) error {
	switch kind {
	case ElementVendor:
		return c.loadVendor(a)
	case ElementFeature:
		return c.loadFeature(a)
	case ElementModel:
		return c.loadModel(a)
	default:
		return errors.Errorf("unknown catalog element kind %d", kind)
	}
}

func (c *Catalog) loadVendor(a Accessor) error {
	name, ok := a.Name()
	if !ok || name == "" {
		return errors.Wrap(ErrMissingName, "vendor")
	}
	if _, exists := c.vendorByName[name]; exists {
		return errors.Wrapf(ErrDuplicateName, "vendor %s", name)
	}
	s, ok := a.VendorString()
	if !ok || len(s) != VendorStringLength {
		return errors.Wrapf(ErrMalformedVendor, "vendor %s", name)
	}
	v := &Vendor{
		Name: name,
		Leaf: cpuid.Leaf{
			Function: 0,
			EBX:      readLE32(s[0:4]),
			EDX:      readLE32(s[4:8]),
			ECX:      readLE32(s[8:12]),
		},
	}
	c.vendors = append(c.vendors, v)
	c.vendorByName[name] = v
	return nil
}

// readLE32 packs 4 bytes little-endian into a uint32, matching the
// original driver's virReadBufInt32LE used to split a 12-byte vendor
// string into ebx||edx||ecx.
func readLE32(s string) uint32 {
	var v uint32
	for i := 0; i < 4; i++ {
		v |= uint32(s[i]) << (8 * uint(i))
	}
	return v
}

// writeLE32 is readLE32's inverse, used when re-encoding a vendor leaf
// back into a 12-byte display string.
func writeLE32(v uint32) string {
	b := make([]byte, 4)
	for i := 0; i < 4; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return string(b)
}

// VendorDisplayString reconstructs the 12-byte vendor identification
// string from a vendor's encoded leaf.
func (v *Vendor) VendorDisplayString() string {
	return writeLE32(v.Leaf.EBX) + writeLE32(v.Leaf.EDX) + writeLE32(v.Leaf.ECX)
}

func (c *Catalog) loadFeature(a Accessor) error {
	name, ok := a.Name()
	if !ok || name == "" {
		return errors.Wrap(ErrMissingName, "feature")
	}
	if _, exists := c.featureByName[name]; exists {
		return errors.Wrapf(ErrDuplicateName, "feature %s", name)
	}
	data := cpuid.NewData()
	for _, rec := range a.CPUIDRecords() {
		data.AddCPUID(cpuid.Leaf{
			Function: rec.Function,
			EAX:      rec.EAX,
			EBX:      rec.EBX,
			ECX:      rec.ECX,
			EDX:      rec.EDX,
		})
	}
	f := &Feature{Name: name, Data: data}
	c.features = append(c.features, f)
	c.featureByName[name] = f
	return nil
}

func (c *Catalog) loadModel(a Accessor) error {
	name, ok := a.Name()
	if !ok || name == "" {
		return errors.Wrap(ErrMissingName, "model")
	}
	if _, exists := c.modelByName[name]; exists {
		return errors.Wrapf(ErrDuplicateName, "model %s", name)
	}

	m := &Model{Name: name, Data: cpuid.NewData()}

	if ancestorName, ok := a.AncestorModel(); ok {
		ancestor, exists := c.modelByName[ancestorName]
		if !exists {
			return errors.Wrapf(ErrUnknownAncestor, "model %s references %s", name, ancestorName)
		}
		m.Vendor = ancestor.Vendor
		m.Data = ancestor.Data.Copy()
	}

	if vendorName, ok := a.VendorRef(); ok {
		v, exists := c.vendorByName[vendorName]
		if !exists {
			return errors.Wrapf(ErrUnknownVendor, "model %s references %s", name, vendorName)
		}
		m.Vendor = v
	}

	for _, featureName := range a.FeatureRefs() {
		f, exists := c.featureByName[featureName]
		if !exists {
			return errors.Wrapf(ErrUnknownFeature, "model %s references %s", name, featureName)
		}
		m.Data.Add(f.Data)
	}

	c.models = append(c.models, m)
	c.modelByName[name] = m
	return nil
}
