// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package env implements the compiler's lexically scoped symbol table: a
// stack of frames mapping Identifiers to Bindings, grounded on the
// teacher's type environment (ast/env.go's frame-chaining TypeEnv), but
// keyed on ast.Identifier and valued on the tagged Binding variant this
// compiler's data model requires instead of OPA's type lattice.
package env

import (
	"fmt"

	"github.com/vmorris/rosie-pattern-language/ast"
	"github.com/vmorris/rosie-pattern-language/peg"
)

// BindingKind tags which variant a Binding holds.
type BindingKind int

const (
	KindPattern BindingKind = iota
	KindString
	KindHashtag
	KindPrimFunction
	KindNovalue
)

func (k BindingKind) String() string {
	switch k {
	case KindPattern:
		return "pattern"
	case KindString:
		return "string"
	case KindHashtag:
		return "hashtag"
	case KindPrimFunction:
		return "function"
	case KindNovalue:
		return "novalue"
	default:
		return "unknown"
	}
}

// PrimFunctionImpl is the signature compiler builtins implement: given the
// already-compiled argument patterns, produce a result pattern or an
// error naming the failure (surfaced by the expression compiler as
// "error in function: '<msg>'").
type PrimFunctionImpl func(args []peg.Pattern) (peg.Pattern, error)

// Binding is the tagged variant stored in an Environment frame, per the
// data model's five binding kinds (§3). Exactly one of the kind-specific
// fields is meaningful, selected by Kind.
type Binding struct {
	Kind BindingKind

	// KindPattern
	Peg       peg.Pattern
	Uncap     peg.Pattern // set iff Peg == capture(label, Uncap); nil for alias bindings and grammars
	Alias     bool
	Exported  bool
	IsGrammar bool // true iff Peg is the result of the grammar compiler (C5); never re-wrapped (§4.7)
	OriginAST ast.Node

	// KindString
	StringValue string

	// KindHashtag
	HashtagValue string

	// KindPrimFunction
	AritySpec string
	Impl      PrimFunctionImpl
	Name      string // fully qualified name, reported in error messages

	// KindNovalue carries Exported/OriginAST above, no field of its own.
}

// NewPatternBinding returns a Pattern binding. uncap may be nil when the
// pattern was never capture-wrapped (e.g. an alias) or is a grammar,
// which per invariant 3 is never re-wrappable.
func NewPatternBinding(p peg.Pattern, uncap peg.Pattern, alias, exported bool, origin ast.Node) Binding {
	return Binding{Kind: KindPattern, Peg: p, Uncap: uncap, Alias: alias, Exported: exported, OriginAST: origin}
}

// NewGrammarBinding returns the Pattern binding produced by the grammar
// compiler (C5): uncap is always nil and IsGrammar is always true, so
// later wrap-policy decisions never re-wrap it implicitly (§4.5, §4.7).
func NewGrammarBinding(p peg.Pattern) Binding {
	return Binding{Kind: KindPattern, Peg: p, IsGrammar: true}
}

// NewStringBinding returns a String binding holding a decoded literal.
func NewStringBinding(value string) Binding {
	return Binding{Kind: KindString, StringValue: value}
}

// NewHashtagBinding returns a Hashtag binding holding the verbatim tag
// text.
func NewHashtagBinding(value string) Binding {
	return Binding{Kind: KindHashtag, HashtagValue: value}
}

// NewPrimFunctionBinding returns a compiler-provided builtin binding.
func NewPrimFunctionBinding(name, aritySpec string, impl PrimFunctionImpl) Binding {
	return Binding{Kind: KindPrimFunction, Name: name, AritySpec: aritySpec, Impl: impl}
}

// NewNovalueBinding returns the forward placeholder Pass 1 of block
// compilation installs before a statement's own RHS is compiled (§3
// invariant 4).
func NewNovalueBinding(exported bool, origin ast.Node) Binding {
	return Binding{Kind: KindNovalue, Exported: exported, OriginAST: origin}
}

// frame is one scope level: a mapping from Identifier to Binding, plus a
// non-owning link to the enclosing frame. Frames own their own bindings;
// the parent pointer never participates in ownership, so an Environment
// is always a simple chain, never a cycle.
type frame struct {
	bindings *bindingMap
	packages map[string]*frame // imported package name -> that package's top frame
	next     *frame
}

func newFrame(next *frame) *frame {
	return &frame{
		bindings: newBindingMap(),
		packages: map[string]*frame{},
		next:     next,
	}
}

// Environment is a stack of frames, innermost first, implementing the
// lookup/bind/extend operations the data model specifies (§3).
type Environment struct {
	top *frame
}

// New returns a fresh Environment with a single empty frame.
func New() *Environment {
	return &Environment{top: newFrame(nil)}
}

// Extend returns a new Environment with a fresh frame pushed in front of
// e's current frame, used when entering a grammar's rule scope (§4.5
// Pass 1) or a nested block.
func (e *Environment) Extend() *Environment {
	return &Environment{top: newFrame(e.top)}
}

// Bind assigns value to local in the innermost frame, overwriting any
// existing binding of the same name there. Bind does not enforce
// at-most-once; the block compiler only logs a Debug-level rebinding note
// (§4.6) and reports no violation for a re-bound name.
func (e *Environment) Bind(local string, value Binding) {
	e.top.bindings.Put(ast.NewIdentifier(local, ""), value)
}

// ImportPackage registers pkgEnv as the environment reachable when local
// appears as the package qualifier of a lookup.
func (e *Environment) ImportPackage(pkgName string, pkgEnv *Environment) {
	e.top.packages[pkgName] = pkgEnv.top
}

// Lookup resolves (local, pkg) to a Binding. A non-empty pkg is resolved
// only against imported packages in the current frame chain; an empty
// pkg walks frames from innermost to outermost.
func (e *Environment) Lookup(local, pkg string) (Binding, bool) {
	if pkg != "" {
		for f := e.top; f != nil; f = f.next {
			if pf, ok := f.packages[pkg]; ok {
				return pf.bindings.Get(ast.NewIdentifier(local, ""))
			}
		}
		return Binding{}, false
	}
	for f := e.top; f != nil; f = f.next {
		if b, ok := f.bindings.Get(ast.NewIdentifier(local, "")); ok {
			return b, true
		}
	}
	return Binding{}, false
}

// LookupIdentifier is Lookup taking an already-built ast.Identifier.
func (e *Environment) LookupIdentifier(id ast.Identifier) (Binding, bool) {
	return e.Lookup(id.LocalName, id.Package)
}

// Names returns every resolvable (non-Novalue) identifier visible from e,
// across the whole frame chain, rendered via Identifier.String(). Used to
// build the candidate list for an unbound-identifier "did you mean" hint
// (§4.2); it is not used for resolution, so duplicate names across shadowing
// frames are harmless.
func (e *Environment) Names() []string {
	var names []string
	for f := e.top; f != nil; f = f.next {
		f.bindings.Iter(func(id ast.Identifier, b Binding) {
			if b.Kind != KindNovalue {
				names = append(names, id.String())
			}
		})
	}
	return names
}

// String renders the innermost frame's bindings, for debugging.
func (e *Environment) String() string {
	return fmt.Sprintf("frame(%d bindings)", e.top.bindings.Len())
}
