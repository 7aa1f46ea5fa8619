/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package subopt

import "strings"

const (
	// Delimiter separates sub-options.
	Delimiter = ":"

	// Separator separates a key from its value within a sub-option.
	Separator = "="
)

// TokenKind tells a bare value from a key/value pair.
type TokenKind int

const (
	// ValueToken is a sub-option without a separator.
	ValueToken TokenKind = iota

	// PairToken is a sub-option split at its first separator.
	PairToken
)

// String returns the name of the token kind.
func (k TokenKind) String() string {
	if k == PairToken {
		return "pair"
	}
	return "value"
}

// MarshalText renders the kind by name.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is one sub-option of a raw option value.
// Key is empty for ValueToken.
type Token struct {
	Kind  TokenKind `json:"kind" yaml:"kind"`
	Key   string    `json:"key,omitempty" yaml:"key,omitempty"`
	Value string    `json:"value" yaml:"value"`
}

// String renders the token back into sub-option syntax.
func (t Token) String() string {
	if t.Kind == PairToken {
		return t.Key + Separator + t.Value
	}
	return t.Value
}

// Split breaks raw into tokens in encounter order.
// Empty input yields a single empty ValueToken, and so does every empty
// span between two delimiters.
func Split(raw string) []Token {
	parts := strings.Split(raw, Delimiter)
	tokens := make([]Token, 0, len(parts))
	for _, part := range parts {
		tokens = append(tokens, classify(part))
	}
	return tokens
}

func classify(part string) Token {
	key, value, found := strings.Cut(part, Separator)
	if !found {
		return Token{Kind: ValueToken, Value: part}
	}
	return Token{Kind: PairToken, Key: key, Value: value}
}
