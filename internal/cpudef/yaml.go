// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package cpudef

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// yamlCPUDef is the declarative CLI input shape for a CPUDef, playing
// the same external-collaborator role for the CLI layer that
// catalog's yamlDocument plays for the catalog loader.
type yamlCPUDef struct {
	Arch     string            `yaml:"arch"`
	Type     string            `yaml:"type"`
	Mode     string            `yaml:"mode"`
	Match    string            `yaml:"match"`
	Fallback string            `yaml:"fallback"`
	Model    string            `yaml:"model"`
	Vendor   string            `yaml:"vendor"`
	Features map[string]string `yaml:"features"`
}

var archByName = map[string]Arch{
	"":       ArchNone,
	"none":   ArchNone,
	"i686":   ArchI686,
	"x86_64": ArchX86_64,
}

var typeByName = map[string]Type{
	"":      TypeHost,
	"host":  TypeHost,
	"guest": TypeGuest,
}

var modeByName = map[string]Mode{
	"":                 ModeCustom,
	"custom":           ModeCustom,
	"host-model":       ModeHostModel,
	"host-passthrough": ModeHostPassthrough,
}

var matchByName = map[string]Match{
	"":        MatchExact,
	"exact":   MatchExact,
	"strict":  MatchStrict,
	"minimum": MatchMinimum,
}

var fallbackByName = map[string]Fallback{
	"":       FallbackAllow,
	"allow":  FallbackAllow,
	"forbid": FallbackForbid,
}

var policyByName = map[string]Policy{
	"force":    PolicyForce,
	"require":  PolicyRequire,
	"optional": PolicyOptional,
	"disable":  PolicyDisable,
	"forbid":   PolicyForbid,
}

// LoadYAML parses a declarative CPU definition document, the format
// of the --guest file that compare/encode/update accept and of
// baseline's CPU file arguments.
func LoadYAML(data []byte) (*CPUDef, error) {
	var doc yamlCPUDef
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing cpu definition yaml")
	}

	arch, ok := archByName[doc.Arch]
	if !ok {
		return nil, errors.Errorf("unknown arch %q", doc.Arch)
	}
	typ, ok := typeByName[doc.Type]
	if !ok {
		return nil, errors.Errorf("unknown type %q", doc.Type)
	}
	mode, ok := modeByName[doc.Mode]
	if !ok {
		return nil, errors.Errorf("unknown mode %q", doc.Mode)
	}
	match, ok := matchByName[doc.Match]
	if !ok {
		return nil, errors.Errorf("unknown match %q", doc.Match)
	}
	fallback, ok := fallbackByName[doc.Fallback]
	if !ok {
		return nil, errors.Errorf("unknown fallback %q", doc.Fallback)
	}

	cpu := &CPUDef{
		Arch:     arch,
		Type:     typ,
		Mode:     mode,
		Match:    match,
		Fallback: fallback,
		Model:    doc.Model,
		Vendor:   doc.Vendor,
	}
	for name, policyName := range doc.Features {
		policy, ok := policyByName[policyName]
		if !ok {
			return nil, errors.Errorf("unknown policy %q for feature %q", policyName, name)
		}
		cpu.AddFeature(name, policy)
	}
	return cpu, nil
}
