// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package compile

import (
	"github.com/vmorris/rosie-pattern-language/ast"
	"github.com/vmorris/rosie-pattern-language/env"
	"github.com/vmorris/rosie-pattern-language/peg"
)

// anonymousLabel is the capture label §4.8 forces onto an ad-hoc top-level
// match expression when opts.CapturePrefixOverride is empty.
const anonymousLabel = "*"

// CompileTopLevel implements §4.8: compiling an expression a caller wants
// to match directly, rather than bind into a package. Unlike the block
// compiler, it force-wraps even a grammar, since there is no later
// rebinding site to defer the wrap to.
func CompileTopLevel(e *env.Environment, node ast.Node, opts Options) (env.Binding, error) {
	result, err := CompileExpr(e, node, opts)
	if err != nil {
		return env.Binding{}, err
	}

	label := anonymousLabel
	if opts.CapturePrefixOverride != "" {
		label = opts.CapturePrefixOverride
	}

	_, isRef := node.(*ast.Ref)
	switch {
	case isRef && result.Alias:
		result = WrapPattern(label, result)
	case !isRef:
		if result.IsGrammar {
			result.Peg = peg.Capture(label, result.Peg)
			result.Uncap = nil
		} else {
			result = WrapPattern(label, result)
		}
	}
	result.Alias = false
	return result, nil
}
