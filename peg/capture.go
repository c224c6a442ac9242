// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package peg

import "fmt"

// CaptureSpan is a labeled byte span produced by a successful match, with
// any nested sub-captures in match order.
type CaptureSpan struct {
	Label string
	Start int
	End   int
	Subs  []CaptureSpan
}

// capturePattern wraps pat so that, on match, a CaptureSpan record tagged
// label with pat's byte span and sub-captures is produced.
type capturePattern struct {
	label string
	pat   Pattern
}

// Capture wraps pat so matches are tagged label.
func Capture(label string, pat Pattern) Pattern {
	return &capturePattern{label: label, pat: pat}
}

func (p *capturePattern) match(ctx *matchCtx, pos int) matchResult {
	r := p.pat.match(ctx, pos)
	if !r.ok {
		return matchResult{ok: false}
	}
	span := CaptureSpan{Label: p.label, Start: pos, End: r.end, Subs: r.caps}
	return matchResult{ok: true, end: r.end, caps: []CaptureSpan{span}}
}

func (p *capturePattern) String() string {
	return fmt.Sprintf("%s:%s", p.label, p.pat)
}
