// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package x86cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cpuarbiter/internal/cpudef"
)

func TestSupportsKnownArches(t *testing.T) {
	assert.True(t, Supports(cpudef.ArchI686))
	assert.True(t, Supports(cpudef.ArchX86_64))
	assert.False(t, Supports(cpudef.ArchNone))
}
