// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package compile implements the expression (including character sets),
// grammar, and block compilers (C4-C6), and exposes the UTF-8 range
// compiler (package utf8range, C3) as the unicode_range builtin: it walks
// the AST the surface parser and macro
// expander hand it and produces Bindings in an env.Environment plus
// ast.Violations in a diagnostic sink, grounded on the teacher's own
// tree-walking compiler stages (topdown.go's rule-by-rule dispatch) but
// over this module's PEG data model instead of OPA's Rego AST.
package compile

import (
	"fmt"

	"github.com/vmorris/rosie-pattern-language/ast"
	"github.com/vmorris/rosie-pattern-language/config"
	"github.com/vmorris/rosie-pattern-language/env"
	"github.com/vmorris/rosie-pattern-language/internal/levenshtein"
	"github.com/vmorris/rosie-pattern-language/peg"
)

// Options is the compiler's configurable behavior, threaded down from the
// CLI/config layer into every compile stage that needs it.
type Options = config.Options

const componentName = "compile"

// requirePattern extracts b's Peg, or reports the type-mismatch message
// §4.2's ref/application/combinator handlers all share.
func requirePattern(b env.Binding, name string) (peg.Pattern, error) {
	if b.Kind != env.KindPattern {
		return nil, fmt.Errorf("type mismatch: expected a pattern, but '%s' is bound to %s", name, b.Kind)
	}
	return b.Peg, nil
}

func joinPrefix(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out == "" {
			out = p
		} else {
			out = out + "." + p
		}
	}
	return out
}

func refName(r *ast.Ref) string {
	if r.Package == "" {
		return r.LocalName
	}
	return r.Package + "." + r.LocalName
}

func describeNode(n ast.Node) string {
	return ast.Print(n)
}

// unboundIdentifierError reports §4.2's stable "unbound identifier: <name>"
// message, with a "did you mean" suggestion appended after that prefix when
// e has a name close enough in edit distance to be a plausible typo.
// Grounded on the teacher's FuzzyRuleNameMatchHint (internal/compile/
// compile.go), adapted from rule names scraped off a *ast.Compiler to
// identifiers visible in an env.Environment.
func unboundIdentifierError(e *env.Environment, name string) error {
	return fmt.Errorf("unbound identifier: %s%s", name, fuzzyIdentifierHint(e, name))
}

// maxHintDistance bounds how dissimilar a suggested name may be. The
// teacher's own hint runs with no cutoff (minDistance 65536) since it only
// ever scores real rule names against real references; here names are
// typically short RPL identifiers, so an unbounded search would just as
// happily suggest something unrelated as something mistyped.
const maxHintDistance = 3

func fuzzyIdentifierHint(e *env.Environment, name string) string {
	proposals := levenshtein.ClosestStrings(maxHintDistance+1, name, e.Names())
	switch len(proposals) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(" (did you mean %s?)", proposals[0])
	default:
		return fmt.Sprintf(" (did you mean one of %v?)", proposals)
	}
}
