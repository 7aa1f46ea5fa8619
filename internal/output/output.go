/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package output renders command results as text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	// Text is the human readable format.
	Text Format = "text"
	// JSON is indented JSON.
	JSON Format = "json"
	// YAML is a YAML document.
	YAML Format = "yaml"
)

// ParseFormat returns the format named s. The empty string means Text.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "text":
		return Text, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (text, json, yaml)", s)
	}
}

// Choose parses the first non-empty value, so flag values can be listed
// before config values.
func Choose(values ...string) (Format, error) {
	for _, v := range values {
		if v != "" {
			return ParseFormat(v)
		}
	}
	return Text, nil
}

// Write renders v to w. For Text, text is called instead.
func Write(w io.Writer, format Format, v any, text func(io.Writer) error) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}
