/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package buffers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/subopt/internal/mapfs"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		viper.Set("format", "")
		bufFlag.Reset()
		if f := Cmd.Flags().Lookup("buf"); f != nil {
			f.Changed = false
		}
	})

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&bytes.Buffer{})
	Cmd.SetArgs(args)
	err := Cmd.Execute()
	return out.String(), err
}

func TestBuffers_Text(t *testing.T) {
	got, err := execute(t, "--buf", "source=0:offset=1000", "-b", "offset=1000:source=2")
	require.NoError(t, err)
	assert.Equal(t, "buffer 0: source=0 offset=1000\nbuffer 1: source=2 offset=1000\n", got)
}

func TestBuffers_YAML(t *testing.T) {
	viper.Set("format", "yaml")
	got, err := execute(t, "--buf", "offset=64")
	require.NoError(t, err)
	assert.Equal(t, "- source: 0\n  offset: 64\n", got)
}

func TestBuffers_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown key", []string{"--buf", "size=1"}, "Unknown key: size"},
		{"missing value", []string{"--buf", "source=1:offset"}, "Missing value for key 'offset'"},
		{"bad number", []string{"--buf", "source=abc"}, "Custom error: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuffers_NoneGiven(t *testing.T) {
	_, err := execute(t)
	assert.True(t, errors.Is(err, ErrNoBuffers))
}

func useConfig(t *testing.T, content string) {
	t.Helper()
	mfs := mapfs.New()
	mfs.AddFile(".config/subopt.yaml", content)
	old := filesystem
	filesystem = mfs
	t.Cleanup(func() { filesystem = old })
}

func TestBuffers_FromConfig(t *testing.T) {
	useConfig(t, "buffers:\n  - source=7\n  - {offset: 8}\n")
	got, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, "buffer 0: source=7 offset=0\nbuffer 1: source=0 offset=8\n", got)
}

func TestBuffers_MalformedConfig(t *testing.T) {
	useConfig(t, "buffers: [source=1\n")
	_, err := execute(t)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoBuffers))
	assert.Contains(t, err.Error(), "config:")
	assert.Contains(t, err.Error(), "subopt.yaml")
}

func TestBuffers_FlagStateDoesNotLeak(t *testing.T) {
	t.Run("first", func(t *testing.T) {
		_, err := execute(t, "--buf", "source=1")
		require.NoError(t, err)
		assert.Equal(t, "[source=1]", bufFlag.String())
	})
	t.Run("second", func(t *testing.T) {
		_, err := execute(t, "--buf", "source=2")
		require.NoError(t, err)
		assert.Equal(t, "[source=2]", bufFlag.String())
	})
}
