// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package nodeprobe implements NodeData (spec.md §4.5): capturing the
// running host's actual CPUID leaves into a cpuid.Data, the one piece
// of this module that talks to real hardware instead of catalog data.
package nodeprobe

import (
	"github.com/pkg/errors"

	"cpuarbiter/internal/cpuid"
)

// ErrUnsupportedHost is returned by NodeData on a platform where the
// CPUID instruction isn't available (non-amd64 builds).
var ErrUnsupportedHost = errors.New("CPUID probing not supported on this platform")

// NodeData probes the host's basic and extended CPUID leaf sequences
// by calling CPUID with sub-leaf (ecx) zeroed, function=0 and
// function=0x80000000 first to learn each sequence's maximum leaf
// index (returned in eax), then walking every function in between.
// Matches the original driver's virCPUx86GetHost: only zero sub-leaves
// are probed, since the core has no use for leaves whose content
// depends on a non-zero ecx input.
func NodeData() (*cpuid.Data, error) {
	if !probeSupported() {
		return nil, ErrUnsupportedHost
	}

	data := cpuid.NewData()

	probeSequence(data, 0)
	probeSequence(data, cpuid.ExtBase)

	return data, nil
}

func probeSequence(data *cpuid.Data, base uint32) {
	maxEax, _, _, _ := cpuidAsm(base, 0)
	if maxEax < base {
		// overflow on the extended sequence when the host doesn't
		// support it at all (eax wraps below base)
		return
	}
	maxIndex := maxEax - base

	for i := uint32(0); i <= maxIndex; i++ {
		function := base + i
		a, b, c, d := cpuidAsm(function, 0)
		data.AddCPUID(cpuid.Leaf{Function: function, EAX: a, EBX: b, ECX: c, EDX: d})
	}
}
