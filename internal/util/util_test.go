package util

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandUserNoTilde(t *testing.T) {
	assert.Equal(t, "/etc/cpuarbiter.yaml", ExpandUser("/etc/cpuarbiter.yaml"))
}

func TestExpandUserHomeOnly(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, home, ExpandUser("~"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vendors: []"), 0o644))

	exists, err := FileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = FileExists(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileExistsRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := FileExists(dir)
	assert.Error(t, err)
}
