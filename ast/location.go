// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"

	"github.com/pkg/errors"
)

// Location records a span of source text that an AST node was parsed from.
// It mirrors the sourceref shape from the compiler's external interface:
// the original text fragment, the byte offsets it spans, an origin
// (typically a file or module name), and an optional parent for nested
// expressions.
type Location struct {
	Text   []byte    `json:"text"`
	Start  int       `json:"s"`
	End    int       `json:"e"`
	Origin string    `json:"origin"`
	Parent *Location `json:"parent,omitempty"`
}

// NewLocation returns a new Location object.
func NewLocation(text []byte, origin string, start, end int) *Location {
	return &Location{Text: text, Origin: origin, Start: start, End: end}
}

// Errorf returns a new error formatted with this location's position info.
func (loc *Location) Errorf(f string, a ...interface{}) error {
	return errors.New(loc.Format(f, a...))
}

// Wrapf wraps an existing error with a message formatted to include this
// location's position info.
func (loc *Location) Wrapf(err error, f string, a ...interface{}) error {
	return errors.Wrap(err, loc.Format(f, a...))
}

// Format returns a formatted string prefixed with the location information.
func (loc *Location) Format(f string, a ...interface{}) string {
	msg := fmt.Sprintf(f, a...)
	if loc == nil {
		return msg
	}
	if len(loc.Origin) > 0 {
		return fmt.Sprintf("%s:%d-%d: %s", loc.Origin, loc.Start, loc.End, msg)
	}
	return fmt.Sprintf("%d-%d: %s", loc.Start, loc.End, msg)
}

// String renders the location the same way Format would with an empty
// message, useful when a Location is interpolated directly (e.g. in a
// printed AST node).
func (loc *Location) String() string {
	if loc == nil {
		return "<no location>"
	}
	if len(loc.Origin) > 0 {
		return fmt.Sprintf("%s:%d-%d", loc.Origin, loc.Start, loc.End)
	}
	return fmt.Sprintf("%d-%d", loc.Start, loc.End)
}
