/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package retry

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/subopt/tagged"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		viper.Set("format", "")
		policy, _ = tagged.Defaults[Policy]()
	})

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&bytes.Buffer{})
	Cmd.SetArgs(args)
	err := Cmd.Execute()
	return out.String(), err
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"defaults", nil, "attempts=3 jitter=false delays=[250ms 500ms]\n"},
		{"override", []string{"--policy", "attempts=4:backoff=100ms:factor=3:jitter"}, "attempts=4 jitter=true delays=[100ms 300ms 900ms]\n"},
		{"single attempt", []string{"-p", "attempts=1"}, "attempts=1 jitter=false delays=[]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRetry_Errors(t *testing.T) {
	_, err := execute(t, "--policy", "attempts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing value for key 'attempts'")

	_, err = execute(t, "--policy", "retries=2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown key: retries")
}

func TestRetry_AttemptsRange(t *testing.T) {
	for _, raw := range []string{"attempts=0", "attempts=101", "attempts=4611686018427387904"} {
		t.Run(raw, func(t *testing.T) {
			_, err := execute(t, "--policy", raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrAttemptsRange), "got %v", err)
		})
	}

	_, err := execute(t, "--policy", "attempts=1.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a whole number")
}

func TestPolicy_Delays(t *testing.T) {
	p := Policy{Attempts: 3, Backoff: time.Second, Factor: 1}
	assert.Equal(t, []time.Duration{time.Second, time.Second}, p.Delays())
	assert.Nil(t, Policy{Attempts: 0}.Delays())
	assert.Len(t, Policy{Attempts: MaxAttempts * 1000, Factor: 1}.Delays(), MaxAttempts-1)
}

func TestLongListsKeys(t *testing.T) {
	assert.Contains(t, Cmd.Long, "attempts, backoff, factor, jitter")
}
