// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"
	"strings"
)

// Kind classifies a Violation the way callers are expected to filter on:
// syntax errors come from the (out of scope) parser and are only ever
// surfaced, never raised, by this module; compile is this module's own
// diagnostics; info and warning are non-fatal notes.
type Kind int

const (
	Compile Kind = iota
	Syntax
	Info
	Warning
)

func (k Kind) String() string {
	switch k {
	case Compile:
		return "compile"
	case Syntax:
		return "syntax"
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Violation is a single diagnostic record produced during compilation. It
// mirrors the wire shape named in the compiler's external interface: a
// kind, the component that raised it, a human-readable message, the
// offending AST node (for pretty-printing), and an optional source
// location.
type Violation struct {
	Kind    Kind
	Who     string
	Message string
	AST     Node
	Loc     *Location
}

// NewViolation builds a Violation with a formatted message.
func NewViolation(kind Kind, who string, loc *Location, node Node, f string, a ...interface{}) *Violation {
	return &Violation{
		Kind:    kind,
		Who:     who,
		Message: fmt.Sprintf(f, a...),
		AST:     node,
		Loc:     loc,
	}
}

func (v *Violation) Error() string {
	if v.Loc == nil {
		return v.Message
	}
	return v.Loc.Format("%s", v.Message)
}

// Violations is an accumulating, non-aborting diagnostic sink: components
// append to it instead of raising, so that compilation of the remaining
// bindings in a block can continue (§4.6, §7).
type Violations []*Violation

// Append records a new violation and returns the updated slice, mirroring
// the append-to-sink usage throughout the block/grammar compiler.
func (v Violations) Append(violation *Violation) Violations {
	return append(v, violation)
}

// HasErrors reports whether any recorded violation is a hard compile or
// syntax error (as opposed to info/warning notes).
func (v Violations) HasErrors() bool {
	for _, e := range v {
		if e.Kind == Compile || e.Kind == Syntax {
			return true
		}
	}
	return false
}

func (v Violations) Error() string {
	if len(v) == 0 {
		return "no violations"
	}
	if len(v) == 1 {
		return fmt.Sprintf("1 violation occurred: %v", v[0].Error())
	}
	s := make([]string, len(v))
	for i, e := range v {
		s[i] = e.Error()
	}
	return fmt.Sprintf("%d violations occurred:\n%s", len(v), strings.Join(s, "\n"))
}
