// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package cpuid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// yamlLeaves is the declarative CLI input/output shape for a raw
// CPUID leaf dump, mirroring catalog's yamlCPUID record shape so the
// same "0x..." hex convention reads the same way across both files.
type yamlLeaves struct {
	Leaves []yamlLeaf `yaml:"leaves"`
}

type yamlLeaf struct {
	Function string `yaml:"function"`
	EAX      string `yaml:"eax"`
	EBX      string `yaml:"ebx"`
	ECX      string `yaml:"ecx"`
	EDX      string `yaml:"edx"`
}

func parseHex(s string) (uint32, error) {
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

// LoadYAML parses a declarative raw CPUID leaf dump, the format the
// CLI's decode/hasfeature commands read and its nodedata/encode
// commands write.
func LoadYAML(raw []byte) (*Data, error) {
	var doc yamlLeaves
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing cpuid leaf yaml")
	}

	d := NewData()
	for _, yl := range doc.Leaves {
		function, err := parseHex(yl.Function)
		if err != nil {
			return nil, errors.Wrap(err, "leaf function")
		}
		eax, err := parseHex(yl.EAX)
		if err != nil {
			return nil, errors.Wrap(err, "leaf eax")
		}
		ebx, err := parseHex(yl.EBX)
		if err != nil {
			return nil, errors.Wrap(err, "leaf ebx")
		}
		ecx, err := parseHex(yl.ECX)
		if err != nil {
			return nil, errors.Wrap(err, "leaf ecx")
		}
		edx, err := parseHex(yl.EDX)
		if err != nil {
			return nil, errors.Wrap(err, "leaf edx")
		}
		d.AddCPUID(Leaf{Function: function, EAX: eax, EBX: ebx, ECX: ecx, EDX: edx})
	}
	return d, nil
}

// DumpYAML renders d's leaves back into the same declarative shape
// LoadYAML reads, in iteration order.
func DumpYAML(d *Data) ([]byte, error) {
	var doc yamlLeaves
	it := d.Iterate()
	for it.Next() {
		l := it.Leaf()
		doc.Leaves = append(doc.Leaves, yamlLeaf{
			Function: fmt.Sprintf("0x%x", l.Function),
			EAX:      fmt.Sprintf("0x%08x", l.EAX),
			EBX:      fmt.Sprintf("0x%08x", l.EBX),
			ECX:      fmt.Sprintf("0x%08x", l.ECX),
			EDX:      fmt.Sprintf("0x%08x", l.EDX),
		})
	}
	return yaml.Marshal(&doc)
}
