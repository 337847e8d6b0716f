// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package x86cpu

import (
	"cpuarbiter/internal/cpudef"
)

// SupportedArches lists the architectures this package's driver
// services, mirroring the source's cpuArchDriver registration of the
// x86 driver over {i686, x86_64} (spec.md §6).
var SupportedArches = []cpudef.Arch{cpudef.ArchI686, cpudef.ArchX86_64}

// Supports reports whether arch is handled by this driver.
func Supports(arch cpudef.Arch) bool {
	for _, a := range SupportedArches {
		if a == arch {
			return true
		}
	}
	return false
}
