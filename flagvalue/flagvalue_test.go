/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package flagvalue_test

import (
	"errors"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/subopt/flagvalue"
	"bennypowers.dev/subopt/record"
	"bennypowers.dev/subopt/subopt"
	"bennypowers.dev/subopt/tagged"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestValue(t *testing.T) {
	var ep record.Endpoint
	fs := newFlagSet()
	fs.Var(flagvalue.New(&ep).Named("endpoint"), "endpoint", "endpoint")

	require.NoError(t, fs.Parse([]string{"--endpoint", "host=a", "--endpoint=host=b:port=9000:tls"}))
	assert.Equal(t, record.Endpoint{Host: "b", Port: 9000, TLS: true}, ep)

	f := fs.Lookup("endpoint")
	require.NotNil(t, f)
	assert.Equal(t, "endpoint", f.Value.Type())
	assert.Equal(t, "host=b:port=9000:tls", f.Value.String())
}

func TestValue_ErrorLeavesTarget(t *testing.T) {
	ep := record.Endpoint{Host: "kept"}
	v := flagvalue.New(&ep)

	err := v.Set("host=x:bogus")
	require.Error(t, err)
	assert.Equal(t, "Unknown key: bogus", err.Error())
	assert.Equal(t, "kept", ep.Host)
	assert.Equal(t, "", v.String())
	assert.Equal(t, "subopt", v.Type())
}

func TestValue_Func(t *testing.T) {
	type window struct {
		Width  int  `subopt:"w" default:"80"`
		Height int  `subopt:"h" default:"24"`
		Border bool `subopt:"border"`
	}
	var w window
	v := flagvalue.Func(&w, tagged.Parse[window])

	require.NoError(t, v.Set("h=40:border"))
	assert.Equal(t, window{Width: 80, Height: 40, Border: true}, w)
}

func TestValue_InvalidUTF8(t *testing.T) {
	var b record.Buffer
	err := flagvalue.New(&b).Set("source=\xff")
	require.Error(t, err)
	assert.True(t, errors.Is(err, flagvalue.ErrInvalidUTF8))

	d := flagvalue.Diagnose(err)
	assert.Equal(t, flagvalue.InvalidValue, d.Category)
}

func TestSlice(t *testing.T) {
	bufs := []record.Buffer{{Source: 99}}
	fs := newFlagSet()
	fs.Var(flagvalue.NewSlice(&bufs), "buf", "buffer")

	require.NoError(t, fs.Parse([]string{
		"--buf", "source=0:offset=1000",
		"--buf", "offset=1000:source=0",
		"--buf=source=3",
	}))

	assert.Equal(t, []record.Buffer{
		{Source: 0, Offset: 1000},
		{Source: 0, Offset: 1000},
		{Source: 3},
	}, bufs)

	sv, ok := fs.Lookup("buf").Value.(pflag.SliceValue)
	require.True(t, ok)
	assert.Equal(t, []string{"source=0:offset=1000", "offset=1000:source=0", "source=3"}, sv.GetSlice())
	assert.Equal(t, "[source=0:offset=1000,offset=1000:source=0,source=3]", fs.Lookup("buf").Value.String())
}

func TestSlice_NotGiven(t *testing.T) {
	bufs := []record.Buffer{{Source: 99}}
	fs := newFlagSet()
	fs.Var(flagvalue.NewSlice(&bufs), "buf", "buffer")

	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, []record.Buffer{{Source: 99}}, bufs)
}

func TestSlice_AppendAndReplace(t *testing.T) {
	bufs := []record.Buffer{{Source: 1}}
	s := flagvalue.NewSlice(&bufs)

	require.NoError(t, s.Append("source=2"))
	assert.Equal(t, []record.Buffer{{Source: 1}, {Source: 2}}, bufs)

	err := s.Replace([]string{"source=5", "offset"})
	require.Error(t, err)
	assert.Equal(t, []record.Buffer{{Source: 1}, {Source: 2}}, bufs)

	require.NoError(t, s.Replace([]string{"source=5", "offset=6"}))
	assert.Equal(t, []record.Buffer{{Source: 5}, {Offset: 6}}, bufs)
	assert.Equal(t, []string{"source=5", "offset=6"}, s.GetSlice())
	assert.Equal(t, "subopts", s.Type())
}

func TestSlice_Reset(t *testing.T) {
	bufs := []record.Buffer{{Source: 1}}
	s := flagvalue.NewSlice(&bufs)
	require.NoError(t, s.Set("source=2"))
	require.NoError(t, s.Set("source=3"))

	s.Reset()
	assert.Nil(t, bufs)
	assert.Empty(t, s.GetSlice())
	assert.Equal(t, "[]", s.String())

	require.NoError(t, s.Set("offset=4"))
	assert.Equal(t, []record.Buffer{{Offset: 4}}, bufs)
	assert.Equal(t, "[offset=4]", s.String())
}

func TestSlice_Cobra(t *testing.T) {
	var bufs []record.Buffer
	cmd := &cobra.Command{
		Use:           "test",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(*cobra.Command, []string) error { return nil },
	}
	cmd.Flags().Var(flagvalue.NewSlice(&bufs), "buf", "buffer")
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	t.Run("valid", func(t *testing.T) {
		bufs = nil
		cmd.SetArgs([]string{"--buf", "source=1:offset=2"})
		require.NoError(t, cmd.Execute())
		assert.Equal(t, []record.Buffer{{Source: 1, Offset: 2}}, bufs)
	})

	t.Run("missing value", func(t *testing.T) {
		cmd.SetArgs([]string{"--buf", "source"})
		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing value for key 'source'")
		assert.Contains(t, err.Error(), `"--buf"`)
	})
}

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category flagvalue.Category
		message  string
	}{
		{"unknown key", subopt.UnknownKey("size"), flagvalue.UnknownArgument, "Unknown key: size"},
		{"missing value", subopt.MissingValue("source"), flagvalue.EmptyValue, "Missing value for key 'source'"},
		{"custom", subopt.Custom("bad number"), flagvalue.InvalidValue, "Custom error: bad number"},
		{"foreign", errors.New("boom"), flagvalue.InvalidValue, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := flagvalue.Diagnose(tt.err)
			require.NotNil(t, d)
			assert.Equal(t, tt.category, d.Category)
			assert.Equal(t, tt.message, d.Error())
			assert.True(t, errors.Is(d, tt.err))
		})
	}

	assert.Nil(t, flagvalue.Diagnose(nil))

	d := flagvalue.Diagnose(subopt.UnknownKey("k"))
	assert.Same(t, d, flagvalue.Diagnose(d))
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "unknown argument", flagvalue.UnknownArgument.String())
	assert.Equal(t, "empty value", flagvalue.EmptyValue.String())
	assert.Equal(t, "invalid value", flagvalue.InvalidValue.String())
}
