/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package flagvalue binds sub-option records to spf13/pflag flags, and so to
// cobra commands.
//
//	var bufs []record.Buffer
//	cmd.Flags().Var(flagvalue.NewSlice(&bufs), "buf", "buffer as source=N:offset=N (repeatable)")
//
// Parse failures are returned from Set as a *Diagnostic.
package flagvalue

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"bennypowers.dev/subopt/subopt"
)

// ErrInvalidUTF8 is returned for option values that are not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("option value is not valid UTF-8")

// ParseFunc converts one raw option value into a T.
type ParseFunc[T any] func(raw string) (T, error)

// Value is a pflag.Value holding a single record.
// When the flag is given more than once the last occurrence wins.
type Value[T any] struct {
	target   *T
	parse    ParseFunc[T]
	raw      string
	typeName string
}

var _ pflag.Value = (*Value[struct{}])(nil)

// New returns a Value that parses into target with subopt.Parse.
func New[T any, P interface {
	*T
	subopt.Record
}](target *T) *Value[T] {
	return Func(target, subopt.Parse[T, P])
}

// Func returns a Value that parses into target with parse.
func Func[T any](target *T, parse ParseFunc[T]) *Value[T] {
	return &Value[T]{target: target, parse: parse, typeName: "subopt"}
}

// Named sets the type name shown in help output.
func (v *Value[T]) Named(typeName string) *Value[T] {
	v.typeName = typeName
	return v
}

// Set parses raw and stores the record. The target is untouched on error.
func (v *Value[T]) Set(raw string) error {
	rec, err := convert(v.parse, raw)
	if err != nil {
		return err
	}
	*v.target = rec
	v.raw = raw
	return nil
}

// String returns the raw text of the last successful Set.
func (v *Value[T]) String() string {
	return v.raw
}

// Type returns the type name shown in help output.
func (v *Value[T]) Type() string {
	if v.typeName == "" {
		return "subopt"
	}
	return v.typeName
}

// Slice is a repeatable pflag.Value collecting one record per occurrence.
// The first occurrence on the command line replaces any defaults.
type Slice[T any] struct {
	target   *[]T
	parse    ParseFunc[T]
	raws     []string
	changed  bool
	typeName string
}

var (
	_ pflag.Value      = (*Slice[struct{}])(nil)
	_ pflag.SliceValue = (*Slice[struct{}])(nil)
)

// NewSlice returns a Slice that parses into target with subopt.Parse.
func NewSlice[T any, P interface {
	*T
	subopt.Record
}](target *[]T) *Slice[T] {
	return FuncSlice(target, subopt.Parse[T, P])
}

// FuncSlice returns a Slice that parses into target with parse.
func FuncSlice[T any](target *[]T, parse ParseFunc[T]) *Slice[T] {
	return &Slice[T]{target: target, parse: parse, typeName: "subopts"}
}

// Named sets the type name shown in help output.
func (s *Slice[T]) Named(typeName string) *Slice[T] {
	s.typeName = typeName
	return s
}

// Set parses raw and appends the record.
func (s *Slice[T]) Set(raw string) error {
	rec, err := convert(s.parse, raw)
	if err != nil {
		return err
	}
	if !s.changed {
		*s.target = nil
		s.raws = nil
		s.changed = true
	}
	*s.target = append(*s.target, rec)
	s.raws = append(s.raws, raw)
	return nil
}

// Append parses raw and appends the record without replacing defaults.
func (s *Slice[T]) Append(raw string) error {
	rec, err := convert(s.parse, raw)
	if err != nil {
		return err
	}
	*s.target = append(*s.target, rec)
	s.raws = append(s.raws, raw)
	return nil
}

// Replace parses every value and swaps them in only if all succeed.
func (s *Slice[T]) Replace(raws []string) error {
	recs := make([]T, 0, len(raws))
	for _, raw := range raws {
		rec, err := convert(s.parse, raw)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}
	*s.target = recs
	s.raws = append([]string(nil), raws...)
	return nil
}

// Reset empties the target and forgets every occurrence, so the next Set
// behaves like the first one on a new command line.
func (s *Slice[T]) Reset() {
	*s.target = nil
	s.raws = nil
	s.changed = false
}

// GetSlice returns the raw text of every stored record.
func (s *Slice[T]) GetSlice() []string {
	return append([]string(nil), s.raws...)
}

// String renders the raw values the way pflag renders string slices.
func (s *Slice[T]) String() string {
	return "[" + strings.Join(s.raws, ",") + "]"
}

// Type returns the type name shown in help output.
func (s *Slice[T]) Type() string {
	if s.typeName == "" {
		return "subopts"
	}
	return s.typeName
}

func convert[T any](parse ParseFunc[T], raw string) (T, error) {
	if !utf8.ValidString(raw) {
		var zero T
		return zero, Diagnose(ErrInvalidUTF8)
	}
	rec, err := parse(raw)
	if err != nil {
		var zero T
		return zero, Diagnose(err)
	}
	return rec, nil
}
