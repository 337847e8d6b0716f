// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package x86cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasFeaturePresentAndAbsent(t *testing.T) {
	c := loadMinimal(t)
	core2, ok := c.FindModel("core2")
	require.True(t, ok)

	has, err := HasFeature(c, core2.Data, "sse2")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = HasFeature(c, core2.Data, "lm")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestHasFeatureUnknownNameErrors(t *testing.T) {
	c := loadMinimal(t)
	core2, _ := c.FindModel("core2")

	_, err := HasFeature(c, core2.Data, "ghost")
	assert.ErrorIs(t, err, ErrUnknownFeature)
}
