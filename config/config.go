/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the subopt command.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/subopt/record"
	"bennypowers.dev/subopt/subopt"
)

// Config represents the subopt configuration file.
type Config struct {
	// Format is the default output format (text, json, yaml).
	Format string `yaml:"format" json:"format"`

	// Buffers are used by the buffers command when no --buf flag is given.
	Buffers []Entry `yaml:"buffers" json:"buffers"`

	// Endpoint is used by the endpoint command when no --endpoint flag is given.
	Endpoint Entry `yaml:"endpoint" json:"endpoint"`
}

// Entry is one sub-option string. In a config file it can be written either
// as the string itself or as a mapping, which is joined in document order:
//
//	buffers:
//	  - source=0:offset=1000
//	  - {source: 1, offset: 2048}
type Entry string

// UnmarshalYAML handles both string and mapping forms for Entry.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*e = Entry(node.Value)
		return nil
	case yaml.MappingNode:
		pairs := make([]string, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: sub-option %q must have a scalar value", v.Line, k.Value)
			}
			if v.ShortTag() == "!!bool" && v.Value == "true" {
				pairs = append(pairs, k.Value)
				continue
			}
			pairs = append(pairs, k.Value+subopt.Separator+v.Value)
		}
		*e = Entry(strings.Join(pairs, subopt.Delimiter))
		return nil
	default:
		return fmt.Errorf("line %d: sub-option entry must be a string or a mapping", node.Line)
	}
}

// UnmarshalJSON handles both string and object forms for Entry.
// Object keys keep their order.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Entry(s)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return fmt.Errorf("sub-option entry must be a string or an object")
	}

	var pairs []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		tok, err = dec.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case string:
			pairs = append(pairs, key+subopt.Separator+v)
		case json.Number:
			pairs = append(pairs, key+subopt.Separator+v.String())
		case bool:
			if v {
				pairs = append(pairs, key)
			} else {
				pairs = append(pairs, key+subopt.Separator+"false")
			}
		default:
			return fmt.Errorf("sub-option %q must have a scalar value", key)
		}
	}
	*e = Entry(strings.Join(pairs, subopt.Delimiter))
	return nil
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Format: "text",
	}
}

// BufferRecords parses every configured buffer.
func (c *Config) BufferRecords() ([]record.Buffer, error) {
	return parseAll[record.Buffer](c.Buffers)
}

// EndpointRecord parses the configured endpoint.
// The second result is false when no endpoint is configured.
func (c *Config) EndpointRecord() (record.Endpoint, bool, error) {
	if c.Endpoint == "" {
		return record.Endpoint{}, false, nil
	}
	ep, err := subopt.Parse[record.Endpoint](string(c.Endpoint))
	if err != nil {
		return record.Endpoint{}, true, fmt.Errorf("endpoint %q: %w", c.Endpoint, err)
	}
	return ep, true, nil
}

func parseAll[T any, P interface {
	*T
	subopt.Record
}](entries []Entry) ([]T, error) {
	out := make([]T, 0, len(entries))
	for i, entry := range entries {
		rec, err := subopt.Parse[T, P](string(entry))
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, entry, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
