// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package peg

import (
	"bytes"
	"fmt"
	"strings"
)

// litPattern matches a literal byte string.
type litPattern struct {
	bytes []byte
}

// Lit returns a pattern matching the literal byte string exactly.
func Lit(b []byte) Pattern {
	return &litPattern{bytes: b}
}

func (p *litPattern) match(ctx *matchCtx, pos int) matchResult {
	end := pos + len(p.bytes)
	if end > len(ctx.input) || !bytes.Equal(ctx.input[pos:end], p.bytes) {
		return matchResult{ok: false}
	}
	return matchResult{ok: true, end: end}
}

func (p *litPattern) String() string {
	return fmt.Sprintf("%q", string(p.bytes))
}

// LiteralBytes returns the bytes a lit() pattern matches, for callers
// (primitive function implementations) that need to recover a compiled
// string-literal argument's text rather than just match against it. ok is
// false if p is not a lit() pattern.
func LiteralBytes(p Pattern) ([]byte, bool) {
	lp, ok := p.(*litPattern)
	if !ok {
		return nil, false
	}
	return lp.bytes, true
}

// byteRangePattern matches a single byte within [lo,hi] inclusive.
type byteRangePattern struct {
	lo, hi byte
}

// ByteRange returns a pattern matching one byte in [lo,hi].
func ByteRange(lo, hi byte) Pattern {
	return &byteRangePattern{lo: lo, hi: hi}
}

func (p *byteRangePattern) match(ctx *matchCtx, pos int) matchResult {
	if pos >= len(ctx.input) {
		return matchResult{ok: false}
	}
	b := ctx.input[pos]
	if b < p.lo || b > p.hi {
		return matchResult{ok: false}
	}
	return matchResult{ok: true, end: pos + 1}
}

func (p *byteRangePattern) String() string {
	if p.lo == p.hi {
		return fmt.Sprintf("[%02X]", p.lo)
	}
	return fmt.Sprintf("[%02X-%02X]", p.lo, p.hi)
}

// seqPattern matches an ordered sequence of sub-patterns.
type seqPattern struct {
	pats []Pattern
}

// Seq matches patterns in order; it succeeds only if every sub-pattern
// matches in turn, threading the cursor and accumulating captures.
func Seq(pats ...Pattern) Pattern {
	flat := flattenSeq(pats)
	if len(flat) == 1 {
		return flat[0]
	}
	return &seqPattern{pats: flat}
}

func flattenSeq(pats []Pattern) []Pattern {
	out := make([]Pattern, 0, len(pats))
	for _, p := range pats {
		if s, ok := p.(*seqPattern); ok {
			out = append(out, s.pats...)
		} else {
			out = append(out, p)
		}
	}
	return out
}

func (p *seqPattern) match(ctx *matchCtx, pos int) matchResult {
	var caps []CaptureSpan
	cur := pos
	for _, sub := range p.pats {
		r := sub.match(ctx, cur)
		if !r.ok {
			return matchResult{ok: false}
		}
		cur = r.end
		caps = append(caps, r.caps...)
	}
	return matchResult{ok: true, end: cur, caps: caps}
}

func (p *seqPattern) String() string {
	strs := make([]string, len(p.pats))
	for i, s := range p.pats {
		strs[i] = s.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(strs, " "))
}

// altPattern matches the first sub-pattern that matches, in order (PEG
// ordered choice: no backtracking once a branch is committed past its
// prefix — each alternative is tried wholesale, not interleaved).
type altPattern struct {
	pats []Pattern
}

// Alt matches the first matching pattern, trying choices in order.
func Alt(pats ...Pattern) Pattern {
	flat := flattenAlt(pats)
	if len(flat) == 1 {
		return flat[0]
	}
	return &altPattern{pats: flat}
}

func flattenAlt(pats []Pattern) []Pattern {
	out := make([]Pattern, 0, len(pats))
	for _, p := range pats {
		if a, ok := p.(*altPattern); ok {
			out = append(out, a.pats...)
		} else {
			out = append(out, p)
		}
	}
	return out
}

func (p *altPattern) match(ctx *matchCtx, pos int) matchResult {
	for _, sub := range p.pats {
		if r := sub.match(ctx, pos); r.ok {
			return r
		}
	}
	return matchResult{ok: false}
}

func (p *altPattern) String() string {
	strs := make([]string, len(p.pats))
	for i, s := range p.pats {
		strs[i] = s.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(strs, " | "))
}

// repAtLeastPattern matches its body greedily, requiring at least n
// repetitions.
type repAtLeastPattern struct {
	n   int
	pat Pattern
}

// RepAtLeast matches pat repeated at least n times, greedily. Construction
// fails if pat can match the empty string, since that would loop forever.
func RepAtLeast(n int, pat Pattern) (Pattern, error) {
	if MatchesEmpty(pat) {
		return nil, errf("pattern being repeated can match the empty string")
	}
	return &repAtLeastPattern{n: n, pat: pat}, nil
}

func (p *repAtLeastPattern) match(ctx *matchCtx, pos int) matchResult {
	var caps []CaptureSpan
	cur := pos
	count := 0
	for count < ctx.cfg.LoopLimit {
		r := p.pat.match(ctx, cur)
		if !r.ok {
			break
		}
		cur = r.end
		caps = append(caps, r.caps...)
		count++
	}
	if count < p.n {
		return matchResult{ok: false}
	}
	return matchResult{ok: true, end: cur, caps: caps}
}

func (p *repAtLeastPattern) String() string {
	switch p.n {
	case 0:
		return fmt.Sprintf("%s*", p.pat)
	case 1:
		return fmt.Sprintf("%s+", p.pat)
	default:
		return fmt.Sprintf("%s{%d,}", p.pat, p.n)
	}
}

// repAtMostPattern matches its body greedily, at most n repetitions.
type repAtMostPattern struct {
	n   int
	pat Pattern
}

// RepAtMost matches pat repeated at most n times, greedily (0..n).
// Construction fails if pat can match the empty string: an empty match
// repeated up to n times is well-defined, but the compiler's contract
// treats it the same as rep_atleast (§4.1) since an empty-matching body
// being "repeated" is never the caller's intent.
func RepAtMost(n int, pat Pattern) (Pattern, error) {
	if MatchesEmpty(pat) {
		return nil, errf("pattern being repeated can match the empty string")
	}
	return &repAtMostPattern{n: n, pat: pat}, nil
}

func (p *repAtMostPattern) match(ctx *matchCtx, pos int) matchResult {
	var caps []CaptureSpan
	cur := pos
	for count := 0; count < p.n; count++ {
		r := p.pat.match(ctx, cur)
		if !r.ok {
			break
		}
		cur = r.end
		caps = append(caps, r.caps...)
	}
	return matchResult{ok: true, end: cur, caps: caps}
}

func (p *repAtMostPattern) String() string {
	return fmt.Sprintf("%s{0,%d}", p.pat, p.n)
}
