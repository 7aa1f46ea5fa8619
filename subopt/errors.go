/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package subopt

import (
	"errors"
	"fmt"
)

// Kind classifies a sub-option error.
type Kind int

const (
	// KindUnknownKey means a key, or a bare value, is not understood by the record.
	KindUnknownKey Kind = iota + 1

	// KindMissingValue means a key that requires a value was given bare.
	KindMissingValue

	// KindCustom is any record-specific conversion or validation failure.
	KindCustom
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnknownKey:
		return "unknown key"
	case KindMissingValue:
		return "missing value"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Sentinel errors for use with errors.Is.
var (
	// ErrUnknownKey matches any error of kind KindUnknownKey.
	ErrUnknownKey = errors.New("unknown key")

	// ErrMissingValue matches any error of kind KindMissingValue.
	ErrMissingValue = errors.New("missing value for key")

	// ErrCustom matches any error of kind KindCustom.
	ErrCustom = errors.New("custom sub-option error")
)

// Error is the error returned by Parse and Apply.
// Key is set for KindUnknownKey and KindMissingValue, Message for KindCustom.
type Error struct {
	Kind    Kind
	Key     string
	Message string
}

// UnknownKey returns an error reporting that key is not recognized.
func UnknownKey(key string) *Error {
	return &Error{Kind: KindUnknownKey, Key: key}
}

// MissingValue returns an error reporting that key was given without a value.
func MissingValue(key string) *Error {
	return &Error{Kind: KindMissingValue, Key: key}
}

// Custom returns a record-specific error carrying msg.
func Custom(msg string) *Error {
	return &Error{Kind: KindCustom, Message: msg}
}

// Customf is like Custom with a format string.
func Customf(format string, args ...any) *Error {
	return Custom(fmt.Sprintf(format, args...))
}

// Wrap turns err into a custom error holding its message.
// A nil err yields nil. An err that already is an *Error is returned as is.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return Custom(err.Error())
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnknownKey:
		return fmt.Sprintf("unknown key: %s", e.Key)
	case KindMissingValue:
		return fmt.Sprintf("missing value for key '%s'", e.Key)
	default:
		return e.Message
	}
}

// Is reports whether target is the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnknownKey:
		return e.Kind == KindUnknownKey
	case ErrMissingValue:
		return e.Kind == KindMissingValue
	case ErrCustom:
		return e.Kind == KindCustom
	}
	return false
}
