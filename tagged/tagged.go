/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tagged turns plain structs into sub-option records using struct tags.
//
//	type Retry struct {
//		Attempts int           `subopt:"attempts" default:"3"`
//		Backoff  time.Duration `subopt:"backoff" default:"250ms"`
//		Jitter   bool          `subopt:"jitter"`
//	}
//
//	r, err := tagged.Parse[Retry]("attempts=5:jitter")
//
// Exported fields without a subopt tag use their lower-cased name; a tag of
// "-" skips the field. Bool fields may be given bare to set them to true.
// Numeric values are converted with spf13/cast, so Go literal prefixes such
// as 0x are honoured. A repeated key overwrites the earlier value.
package tagged

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"

	"bennypowers.dev/subopt/subopt"
)

// Sentinel errors for invalid record definitions.
var (
	// ErrNotStruct indicates the target is not a non-nil pointer to a struct.
	ErrNotStruct = errors.New("tagged: target must be a non-nil pointer to a struct")

	// ErrUnsupportedType indicates a field type that cannot be converted from text.
	ErrUnsupportedType = errors.New("tagged: unsupported field type")

	// ErrDuplicateKey indicates two fields map to the same key.
	ErrDuplicateKey = errors.New("tagged: duplicate key")

	// ErrInvalidDefault indicates a default tag that does not convert to its field.
	ErrInvalidDefault = errors.New("tagged: invalid default")
)

const (
	keyTag     = "subopt"
	defaultTag = "default"
)

var durationType = reflect.TypeOf(time.Duration(0))

type field struct {
	key    string
	index  int
	isBool bool
	def    string
	hasDef bool
	kind   reflect.Kind
}

// fieldCache maps reflect.Type to []field.
var fieldCache sync.Map

// Record adapts a struct pointer to subopt.Record.
type Record struct {
	target reflect.Value
	fields map[string]field
	order  []string
}

var _ subopt.Record = (*Record)(nil)

// New wraps ptr, which must point to a struct.
// The struct is modified in place as tokens are applied.
func New(ptr any) (*Record, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	fields, err := fieldsOf(rv.Elem().Type())
	if err != nil {
		return nil, err
	}
	r := &Record{
		target: rv.Elem(),
		fields: make(map[string]field, len(fields)),
		order:  make([]string, 0, len(fields)),
	}
	for _, f := range fields {
		r.fields[f.key] = f
		r.order = append(r.order, f.key)
	}
	return r, nil
}

// Parse builds a fresh T from raw, starting from T's default tags.
func Parse[T any](raw string) (T, error) {
	var v, zero T
	r, err := New(&v)
	if err != nil {
		return zero, err
	}
	if err := r.ApplyDefaults(); err != nil {
		return zero, err
	}
	if err := subopt.Apply(raw, r); err != nil {
		return zero, err
	}
	return v, nil
}

// Defaults returns a T with only its default tags applied.
func Defaults[T any]() (T, error) {
	var v, zero T
	r, err := New(&v)
	if err != nil {
		return zero, err
	}
	if err := r.ApplyDefaults(); err != nil {
		return zero, err
	}
	return v, nil
}

// Keys returns the recognized keys in field order.
func (r *Record) Keys() []string {
	return append([]string(nil), r.order...)
}

// ApplyDefaults sets every field carrying a default tag.
func (r *Record) ApplyDefaults() error {
	for _, key := range r.order {
		f := r.fields[key]
		if !f.hasDef {
			continue
		}
		if err := set(r.target.Field(f.index), f.def); err != nil {
			return fmt.Errorf("%w for %s: %v", ErrInvalidDefault, key, err)
		}
	}
	return nil
}

// UpdateFromValue sets a bool field to true.
func (r *Record) UpdateFromValue(value string) error {
	f, ok := r.fields[value]
	if !ok {
		return subopt.UnknownKey(value)
	}
	if !f.isBool {
		return subopt.MissingValue(value)
	}
	r.target.Field(f.index).SetBool(true)
	return nil
}

// UpdateFromKVPair converts value into the field named key.
func (r *Record) UpdateFromKVPair(key, value string) error {
	f, ok := r.fields[key]
	if !ok {
		return subopt.UnknownKey(key)
	}
	if value == "" && f.kind != reflect.String {
		return subopt.MissingValue(key)
	}
	if err := set(r.target.Field(f.index), value); err != nil {
		return subopt.Customf("invalid value %q for key %q: %v", value, key, err)
	}
	return nil
}

func fieldsOf(t reflect.Type) ([]field, error) {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]field), nil
	}

	var fields []field
	seen := make(map[string]string)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		key := strings.ToLower(sf.Name)
		if tag, ok := sf.Tag.Lookup(keyTag); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				key = tag
			}
		}
		if !supported(sf.Type) {
			return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, sf.Name, sf.Type)
		}
		if other, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w %q on %s and %s", ErrDuplicateKey, key, other, sf.Name)
		}
		seen[key] = sf.Name

		def, hasDef := sf.Tag.Lookup(defaultTag)
		fields = append(fields, field{
			key:    key,
			index:  i,
			isBool: sf.Type.Kind() == reflect.Bool,
			def:    def,
			hasDef: hasDef,
			kind:   sf.Type.Kind(),
		})
	}

	fieldCache.Store(t, fields)
	return fields, nil
}

func supported(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// set converts value into fv, whose kind has passed supported.
func set(fv reflect.Value, value string) error {
	if fv.Type() == durationType {
		d, err := cast.ToDurationE(value)
		if err != nil {
			return err
		}
		fv.SetInt(int64(d))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(value)
	case reflect.Bool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// cast truncates "1.5" to 1, so fractions are refused first.
		if _, err := strconv.ParseInt(value, 0, 64); err != nil {
			return fmt.Errorf("%q is not a whole number", value)
		}
		n, err := cast.ToInt64E(value)
		if err != nil {
			return err
		}
		if fv.OverflowInt(n) {
			return fmt.Errorf("%d overflows %s", n, fv.Type())
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if _, err := strconv.ParseUint(value, 0, 64); err != nil {
			return fmt.Errorf("%q is not a non-negative whole number", value)
		}
		n, err := cast.ToUint64E(value)
		if err != nil {
			return err
		}
		if fv.OverflowUint(n) {
			return fmt.Errorf("%d overflows %s", n, fv.Type())
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return err
		}
		if fv.OverflowFloat(f) {
			return fmt.Errorf("%g overflows %s", f, fv.Type())
		}
		fv.SetFloat(f)
	}
	return nil
}

// SortedKeys returns the keys of T in lexical order, for help text.
func SortedKeys[T any]() ([]string, error) {
	var v T
	r, err := New(&v)
	if err != nil {
		return nil, err
	}
	keys := r.Keys()
	sort.Strings(keys)
	return keys, nil
}
