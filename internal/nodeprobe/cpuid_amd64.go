// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

//go:build amd64

package nodeprobe

// cpuidAsm executes the CPUID instruction for the given leaf/sub-leaf
// and returns the four result registers. Implemented in
// cpuid_amd64.s; the asm does not save or restore ebx, since spec.md
// §9's 32-bit PIC note on ebx does not apply on amd64.
//
//go:noescape
func cpuidAsm(eax, ecx uint32) (a, b, c, d uint32)

func probeSupported() bool { return true }
