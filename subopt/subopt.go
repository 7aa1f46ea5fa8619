/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package subopt parses option values made of colon-separated sub-options,
// such as "source=0:offset=1000", into caller-defined record types.
//
// A record type implements Record. Each sub-option without '=' is passed to
// UpdateFromValue, each "key=value" sub-option to UpdateFromKVPair, strictly
// left to right. The first error stops parsing.
//
//	type Buf struct{ Source, Offset uint }
//
//	func (b *Buf) UpdateFromValue(v string) error {
//		if v == "source" || v == "offset" {
//			return subopt.MissingValue(v)
//		}
//		return subopt.UnknownKey(v)
//	}
//
//	func (b *Buf) UpdateFromKVPair(k, v string) error { ... }
//
//	buf, err := subopt.Parse[Buf]("source=0:offset=1000")
package subopt

// Record is a structured value that can be built up from sub-options.
// Parsing starts from the type's zero value, or from the defaults set by
// SetDefaults when the record also implements Defaulter.
//
// Implementations decide which keys are valid and how duplicate keys behave.
// Errors should be created with UnknownKey, MissingValue or Custom.
type Record interface {
	// UpdateFromValue handles a bare sub-option, as in "value1:value2".
	UpdateFromValue(value string) error

	// UpdateFromKVPair handles a key/value sub-option, as in "key1=value1:key2=value2".
	UpdateFromKVPair(key, value string) error
}

// Defaulter is implemented by records whose starting state is not the zero value.
type Defaulter interface {
	SetDefaults()
}

// Apply dispatches every token of raw to rec in order.
// It stops at the first failing token; tokens after it are never applied.
// Errors that are not an *Error are reported as KindCustom.
func Apply(raw string, rec Record) error {
	for _, tok := range Split(raw) {
		var err error
		switch tok.Kind {
		case PairToken:
			err = rec.UpdateFromKVPair(tok.Key, tok.Value)
		default:
			err = rec.UpdateFromValue(tok.Value)
		}
		if err != nil {
			return Wrap(err)
		}
	}
	return nil
}

// Parse builds a fresh record of type T from raw.
// On error the zero T is returned and any partial state is discarded.
func Parse[T any, P interface {
	*T
	Record
}](raw string) (T, error) {
	var rec T
	p := P(&rec)
	if d, ok := any(p).(Defaulter); ok {
		d.SetDefaults()
	}
	if err := Apply(raw, p); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}
