/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package record

import (
	"net"
	"strconv"

	"bennypowers.dev/subopt/subopt"
)

// DefaultPort is the port of an Endpoint that does not name one.
const DefaultPort = 80

// Endpoint is a network endpoint given as "host=H:port=N:tls".
// The bare value "tls" enables TLS, "tls=false" turns it back off.
type Endpoint struct {
	Host string `json:"host" yaml:"host"`
	Port uint16 `json:"port" yaml:"port"`
	TLS  bool   `json:"tls" yaml:"tls"`
}

var (
	_ subopt.Record    = (*Endpoint)(nil)
	_ subopt.Defaulter = (*Endpoint)(nil)
)

// SetDefaults sets the port to DefaultPort.
func (e *Endpoint) SetDefaults() {
	e.Port = DefaultPort
}

// UpdateFromValue accepts the bare flag "tls".
func (e *Endpoint) UpdateFromValue(value string) error {
	switch value {
	case "tls":
		e.TLS = true
		return nil
	case "host", "port":
		return subopt.MissingValue(value)
	default:
		return subopt.UnknownKey(value)
	}
}

// UpdateFromKVPair sets host, port or tls.
func (e *Endpoint) UpdateFromKVPair(key, value string) error {
	switch key {
	case "host":
		if value == "" {
			return subopt.MissingValue(key)
		}
		e.Host = value
	case "port":
		n, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return subopt.Wrap(err)
		}
		e.Port = uint16(n)
	case "tls":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return subopt.Wrap(err)
		}
		e.TLS = b
	default:
		return subopt.UnknownKey(key)
	}
	return nil
}

// Address returns host:port.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}
