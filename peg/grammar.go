// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package peg

import "fmt"

// ruleTable is the mutable map backing a grammar's fixpoint. Pass 1 of the
// grammar compiler (§4.5) creates V-ref placeholders that point at it
// before any rule body exists; Pass 2 fills in the bodies by mutating the same map
// instance, so that every V ref created in Pass 1 observes the final
// bodies once Pass 3 builds the fixpoint. This mutable-map trick is the
// standard way to tie a recursive-descent PEG knot without a second
// indirection layer per call.
type ruleTable struct {
	rules map[string]Pattern
	start string
}

// NewRuleTable returns an empty rule table for a grammar under
// construction.
func NewRuleTable() *ruleTable {
	return &ruleTable{rules: map[string]Pattern{}}
}

// vrefPattern is a placeholder reference to a grammar rule, resolved
// against the shared rule table at match time.
type vrefPattern struct {
	table *ruleTable
	name  string
}

// V returns a placeholder pattern for rule name within table, to be bound
// to a concrete body via SetBody before the table is passed to Grammar.
func V(table *ruleTable, name string) Pattern {
	return &vrefPattern{table: table, name: name}
}

// SetBody installs the compiled body for a rule name, once per name.
func (rt *ruleTable) SetBody(name string, body Pattern) {
	rt.rules[name] = body
}

func (p *vrefPattern) match(ctx *matchCtx, pos int) matchResult {
	body, ok := p.table.rules[p.name]
	if !ok {
		return matchResult{ok: false}
	}
	ctx.depth++
	if ctx.depth > ctx.cfg.CallstackLimit {
		ctx.depth--
		return matchResult{ok: false}
	}
	r := body.match(ctx, pos)
	ctx.depth--
	return r
}

func (p *vrefPattern) String() string { return fmt.Sprintf("V(%s)", p.name) }

// grammarPattern is the fixpoint over a rule table, entered at start.
type grammarPattern struct {
	table *ruleTable
}

func (p *grammarPattern) match(ctx *matchCtx, pos int) matchResult {
	body, ok := p.table.rules[p.table.start]
	if !ok {
		return matchResult{ok: false}
	}
	return body.match(ctx, pos)
}

func (p *grammarPattern) String() string { return fmt.Sprintf("grammar(%s)", p.table.start) }

// Grammar builds the fixpoint pattern over table, entered at the rule
// named start. Table must already have every rule's body installed via
// SetBody. Grammar rejects undefined rule references and left-recursive
// rules (both caught statically rather than probed at match time).
func Grammar(table *ruleTable, start string) (Pattern, error) {
	if _, ok := table.rules[start]; !ok {
		return nil, errf("undefined start rule: %s", start)
	}
	for name, body := range table.rules {
		for ref := range referencedRules(body) {
			if _, ok := table.rules[ref]; !ok {
				return nil, errf("undefined rule reference %q in rule %q", ref, name)
			}
		}
	}
	if name := findLeftRecursion(table.rules); name != "" {
		return nil, errf("rule %q may be left recursive", name)
	}
	table.start = start
	return &grammarPattern{table: table}, nil
}

// referencedRules collects every rule name referenced anywhere inside
// pat's tree, used to validate that a grammar has no dangling V refs.
func referencedRules(pat Pattern) map[string]bool {
	out := map[string]bool{}
	var walk func(Pattern)
	walk = func(p Pattern) {
		switch x := p.(type) {
		case *vrefPattern:
			out[x.name] = true
		case *seqPattern:
			for _, s := range x.pats {
				walk(s)
			}
		case *altPattern:
			for _, s := range x.pats {
				walk(s)
			}
		case *repAtLeastPattern:
			walk(x.pat)
		case *repAtMostPattern:
			walk(x.pat)
		case *capturePattern:
			walk(x.pat)
		case *lookAheadPattern:
			walk(x.pat)
		case *negationPattern:
			walk(x.pat)
		case *lookBehindPattern:
			walk(x.pat)
		}
	}
	walk(pat)
	return out
}

// leftSet collects the rule names that could be entered at the very
// start of matching pat, before any mandatory byte is consumed — the set
// a left-recursion check must follow.
func leftSet(pat Pattern) map[string]bool {
	out := map[string]bool{}
	switch p := pat.(type) {
	case *vrefPattern:
		out[p.name] = true
	case *seqPattern:
		for _, sub := range p.pats {
			for k := range leftSet(sub) {
				out[k] = true
			}
			if !MatchesEmpty(sub) {
				break
			}
		}
	case *altPattern:
		for _, sub := range p.pats {
			for k := range leftSet(sub) {
				out[k] = true
			}
		}
	case *repAtLeastPattern:
		out = leftSet(p.pat)
	case *repAtMostPattern:
		out = leftSet(p.pat)
	case *capturePattern:
		out = leftSet(p.pat)
	case *lookAheadPattern:
		out = leftSet(p.pat)
	case *negationPattern:
		out = leftSet(p.pat)
	}
	return out
}

// findLeftRecursion returns the name of a rule reachable from itself via
// leftSet edges without consuming input, or "" if none is found.
func findLeftRecursion(rules map[string]Pattern) string {
	edges := map[string]map[string]bool{}
	for name, body := range rules {
		edges[name] = leftSet(body)
	}
	for start := range rules {
		seen := map[string]bool{}
		var reaches func(string) bool
		reaches = func(cur string) bool {
			if seen[cur] {
				return false
			}
			seen[cur] = true
			for next := range edges[cur] {
				if next == start {
					return true
				}
				if reaches(next) {
					return true
				}
			}
			return false
		}
		if reaches(start) {
			return start
		}
	}
	return ""
}
