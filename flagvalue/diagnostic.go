/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package flagvalue

import (
	"errors"
	"fmt"

	"bennypowers.dev/subopt/subopt"
)

// Category is the kind of command-line diagnostic an error maps to.
type Category int

const (
	// UnknownArgument reports a key the option does not understand.
	UnknownArgument Category = iota + 1

	// EmptyValue reports a key given without its required value.
	EmptyValue

	// InvalidValue reports a value that could not be converted or validated.
	InvalidValue
)

// String returns the name of the category.
func (c Category) String() string {
	switch c {
	case UnknownArgument:
		return "unknown argument"
	case EmptyValue:
		return "empty value"
	case InvalidValue:
		return "invalid value"
	default:
		return "unknown"
	}
}

// Diagnostic is a sub-option error rendered for the command line.
type Diagnostic struct {
	Category Category
	Message  string
	err      error
}

func (d *Diagnostic) Error() string {
	return d.Message
}

// Unwrap returns the error the diagnostic was made from.
func (d *Diagnostic) Unwrap() error {
	return d.err
}

// Diagnose maps err onto a Diagnostic. Every error maps to exactly one
// category; errors outside the sub-option taxonomy are InvalidValue.
// A nil err yields nil.
func Diagnose(err error) *Diagnostic {
	if err == nil {
		return nil
	}

	var d *Diagnostic
	if errors.As(err, &d) {
		return d
	}

	var se *subopt.Error
	if !errors.As(err, &se) {
		return &Diagnostic{Category: InvalidValue, Message: err.Error(), err: err}
	}

	switch se.Kind {
	case subopt.KindUnknownKey:
		return &Diagnostic{
			Category: UnknownArgument,
			Message:  fmt.Sprintf("Unknown key: %s", se.Key),
			err:      err,
		}
	case subopt.KindMissingValue:
		return &Diagnostic{
			Category: EmptyValue,
			Message:  fmt.Sprintf("Missing value for key '%s'", se.Key),
			err:      err,
		}
	default:
		return &Diagnostic{
			Category: InvalidValue,
			Message:  fmt.Sprintf("Custom error: %s", se.Message),
			err:      err,
		}
	}
}
