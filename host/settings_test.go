// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsGetByPrefix(t *testing.T) {
	s := newSettings()

	v, err := s.Get("MemDumpBytes")
	require.NoError(t, err)
	assert.Equal(t, 96, v)

	// unique prefixes resolve, case-insensitively
	v, err = s.Get("memd")
	require.NoError(t, err)
	assert.Equal(t, 96, v)

	v, err = s.Get("AUTO")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	// "d" is ambiguous between DisasmLines and DriveTrueEmu
	_, err = s.Get("d")
	assert.Error(t, err)

	_, err = s.Get("nosuchresource")
	assert.Error(t, err)
}

func TestSettingsSetFromString(t *testing.T) {
	s := newSettings()

	require.NoError(t, s.SetFromString("memdump", "128"))
	assert.Equal(t, 128, s.MemDumpBytes)

	// base prefixes are honored for integer values
	require.NoError(t, s.SetFromString("disasml", "0x40"))
	assert.Equal(t, 0x40, s.DisasmLines)

	require.NoError(t, s.SetFromString("autostartwarp", "off"))
	assert.False(t, s.AutostartWarp)
	require.NoError(t, s.SetFromString("drivetrue", "1"))
	assert.True(t, s.DriveTrueEmu)

	assert.Error(t, s.SetFromString("memdump", "lots"))
	assert.Error(t, s.SetFromString("autostartwarp", "maybe"))
}

func TestSettingsFileRoundTrip(t *testing.T) {
	s := newSettings()
	s.MemDumpBytes = 48
	s.AutostartWarp = false

	file := filepath.Join(t.TempDir(), "resources")
	require.NoError(t, s.SaveFile(file))

	loaded := newSettings()
	require.NoError(t, loaded.LoadFile(file))
	assert.Equal(t, s, loaded)
}

func TestSettingsFileComments(t *testing.T) {
	file := filepath.Join(t.TempDir(), "resources")
	text := "# resource file\n\nMemDumpBytes = 24\nDriveTrueEmu = on\n"
	require.NoError(t, os.WriteFile(file, []byte(text), 0644))

	s := newSettings()
	require.NoError(t, s.LoadFile(file))
	assert.Equal(t, 24, s.MemDumpBytes)
	assert.True(t, s.DriveTrueEmu)

	require.NoError(t, os.WriteFile(file, []byte("MemDumpBytes = banana\n"), 0644))
	assert.Error(t, s.LoadFile(file))
}
