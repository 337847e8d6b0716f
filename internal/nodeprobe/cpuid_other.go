// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

//go:build !amd64

package nodeprobe

// cpuidAsm has no implementation outside amd64; NodeData reports
// ErrUnsupportedHost on these platforms instead of calling it.
func cpuidAsm(eax, ecx uint32) (a, b, c, d uint32) { return 0, 0, 0, 0 }

func probeSupported() bool { return false }
