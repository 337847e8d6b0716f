// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package catalog

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// yamlDocument is the declarative catalog source shape. It plays the
// role spec.md §1 assigns to "XML parsing and file I/O" — an external
// collaborator that only ever talks to the catalog through Load. This
// module speaks YAML instead of XML because that is the config format
// the rest of this repo's stack (gopkg.in/yaml.v2, as in cmd/config's
// restore/record path) already uses.
type yamlDocument struct {
	Vendors  []yamlVendor  `yaml:"vendors"`
	Features []yamlFeature `yaml:"features"`
	Models   []yamlModel   `yaml:"models"`
}

type yamlVendor struct {
	Name   string `yaml:"name"`
	String string `yaml:"string"`
}

type yamlCPUID struct {
	Function string `yaml:"function"`
	EAX      string `yaml:"eax"`
	EBX      string `yaml:"ebx"`
	ECX      string `yaml:"ecx"`
	EDX      string `yaml:"edx"`
}

type yamlFeature struct {
	Name  string      `yaml:"name"`
	CPUID []yamlCPUID `yaml:"cpuid"`
}

type yamlModel struct {
	Name     string   `yaml:"name"`
	Model    string   `yaml:"model"`
	Vendor   string   `yaml:"vendor"`
	Features []string `yaml:"features"`
}

// ParseHexUint32 parses a "0x..."-prefixed (or bare) hex string into a
// uint32, defaulting to 0 for an empty string. It is the hex attribute
// parser for the catalog's cpuid records.
func ParseHexUint32(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid hex value %q", s)
	}
	return uint32(v), nil
}

// LoadYAML parses a declarative YAML catalog document and feeds it
// through Load one element at a time, vendors first, then features,
// then models, each group preserving document order, so a model's
// vendor and feature references are always already loaded. A model's
// ancestor must appear earlier in the models list; a reference to a
// later one fails with ErrUnknownAncestor.
func LoadYAML(data []byte) (*Catalog, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing catalog yaml")
	}

	c := New()
	for _, v := range doc.Vendors {
		if err := c.Load(ElementVendor, &vendorAccessor{v}); err != nil {
			return nil, err
		}
	}
	for _, f := range doc.Features {
		acc, err := newFeatureAccessor(f)
		if err != nil {
			return nil, err
		}
		if err := c.Load(ElementFeature, acc); err != nil {
			return nil, err
		}
	}
	for _, m := range doc.Models {
		if err := c.Load(ElementModel, &modelAccessor{m}); err != nil {
			return nil, err
		}
	}
	return c, nil
}

type vendorAccessor struct{ v yamlVendor }

func (a *vendorAccessor) Name() (string, bool)         { return a.v.Name, a.v.Name != "" }
func (a *vendorAccessor) VendorString() (string, bool) { return a.v.String, a.v.String != "" }
func (a *vendorAccessor) CPUIDRecords() []CPUIDRecord  { return nil }
func (a *vendorAccessor) AncestorModel() (string, bool) { return "", false }
func (a *vendorAccessor) VendorRef() (string, bool)    { return "", false }
func (a *vendorAccessor) FeatureRefs() []string        { return nil }

type featureAccessor struct {
	name    string
	records []CPUIDRecord
}

func newFeatureAccessor(f yamlFeature) (*featureAccessor, error) {
	records := make([]CPUIDRecord, 0, len(f.CPUID))
	for _, rec := range f.CPUID {
		function, err := ParseHexUint32(rec.Function)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedCPUID, "feature %s: %v", f.Name, err)
		}
		eax, err := ParseHexUint32(rec.EAX)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedCPUID, "feature %s: %v", f.Name, err)
		}
		ebx, err := ParseHexUint32(rec.EBX)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedCPUID, "feature %s: %v", f.Name, err)
		}
		ecx, err := ParseHexUint32(rec.ECX)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedCPUID, "feature %s: %v", f.Name, err)
		}
		edx, err := ParseHexUint32(rec.EDX)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedCPUID, "feature %s: %v", f.Name, err)
		}
		records = append(records, CPUIDRecord{Function: function, EAX: eax, EBX: ebx, ECX: ecx, EDX: edx})
	}
	return &featureAccessor{name: f.Name, records: records}, nil
}

func (a *featureAccessor) Name() (string, bool)          { return a.name, a.name != "" }
func (a *featureAccessor) VendorString() (string, bool)  { return "", false }
func (a *featureAccessor) CPUIDRecords() []CPUIDRecord   { return a.records }
func (a *featureAccessor) AncestorModel() (string, bool) { return "", false }
func (a *featureAccessor) VendorRef() (string, bool)     { return "", false }
func (a *featureAccessor) FeatureRefs() []string         { return nil }

type modelAccessor struct{ m yamlModel }

func (a *modelAccessor) Name() (string, bool)         { return a.m.Name, a.m.Name != "" }
func (a *modelAccessor) VendorString() (string, bool) { return "", false }
func (a *modelAccessor) CPUIDRecords() []CPUIDRecord  { return nil }
func (a *modelAccessor) AncestorModel() (string, bool) {
	return a.m.Model, a.m.Model != ""
}
func (a *modelAccessor) VendorRef() (string, bool) { return a.m.Vendor, a.m.Vendor != "" }
func (a *modelAccessor) FeatureRefs() []string     { return a.m.Features }
