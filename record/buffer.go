/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package record provides ready-made sub-option record types.
package record

import (
	"fmt"
	"strconv"

	"bennypowers.dev/subopt/subopt"
)

// Buffer is a buffer definition given as "source=N:offset=N".
// Both fields default to 0. A repeated key overwrites the earlier value.
type Buffer struct {
	Source uint `json:"source" yaml:"source"`
	Offset uint `json:"offset" yaml:"offset"`
}

var _ subopt.Record = (*Buffer)(nil)

// UpdateFromValue rejects every bare value: both keys need a value.
func (b *Buffer) UpdateFromValue(value string) error {
	switch value {
	case "source", "offset":
		return subopt.MissingValue(value)
	default:
		return subopt.UnknownKey(value)
	}
}

// UpdateFromKVPair sets source or offset.
func (b *Buffer) UpdateFromKVPair(key, value string) error {
	switch key {
	case "source":
		return parseUint(value, &b.Source)
	case "offset":
		return parseUint(value, &b.Offset)
	default:
		return subopt.UnknownKey(key)
	}
}

// String renders the buffer in sub-option syntax.
func (b Buffer) String() string {
	return fmt.Sprintf("source=%d:offset=%d", b.Source, b.Offset)
}

func parseUint(value string, dst *uint) error {
	n, err := strconv.ParseUint(value, 10, strconv.IntSize)
	if err != nil {
		return subopt.Wrap(err)
	}
	*dst = uint(n)
	return nil
}
