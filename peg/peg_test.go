// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package peg

import "testing"

func TestSeqAlt(t *testing.T) {
	pat := Alt(Lit([]byte("hi")), Lit([]byte("hiya")))
	r := MatchString(pat, "hiya")
	if !r.Matched || r.N != 2 {
		t.Fatalf("expected PEG first-match semantics to stop at %q, got matched=%v n=%d", "hi", r.Matched, r.N)
	}
}

func TestSeqFails(t *testing.T) {
	pat := Seq(Lit([]byte("a")), Lit([]byte("b")))
	if MatchString(pat, "ac").Matched {
		t.Fatal("expected sequence to fail on second element mismatch")
	}
}

func TestCaptureLabel(t *testing.T) {
	digit := ByteRange('0', '9')
	atLeastOne, err := RepAtLeast(1, digit)
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	pat := Capture("num", atLeastOne)
	r := MatchString(pat, "42x")
	if !r.Matched || r.N != 2 {
		t.Fatalf("expected to match \"42\", got matched=%v n=%d", r.Matched, r.N)
	}
	if len(r.Captures) != 1 || r.Captures[0].Label != "num" {
		t.Fatalf("expected single capture labeled num, got %+v", r.Captures)
	}
}

func TestRepAtLeastRejectsEmptyBody(t *testing.T) {
	empty := Lit([]byte(""))
	if _, err := RepAtLeast(1, empty); err == nil {
		t.Fatal("expected rep_atleast over an empty-matching body to be rejected")
	}
}

func TestRepAtMostRejectsEmptyBody(t *testing.T) {
	opt, _ := RepAtMost(1, Lit([]byte("")))
	_ = opt
	if _, err := RepAtMost(3, Lit([]byte(""))); err == nil {
		t.Fatal("expected rep_atmost over an empty-matching body to be rejected")
	}
}

func TestLookBehindRejectsVariableLength(t *testing.T) {
	variable := Alt(Lit([]byte("a")), Lit([]byte("bb")))
	if _, err := LookBehind(variable); err == nil {
		t.Fatal("expected lookbehind over a variable-length body to be rejected")
	}
}

func TestLookBehindRejectsCaptures(t *testing.T) {
	capturing := Capture("x", Lit([]byte("ab")))
	if _, err := LookBehind(capturing); err == nil {
		t.Fatal("expected lookbehind over a capturing body to be rejected")
	}
}

func TestNegationConsumesNothing(t *testing.T) {
	pat := Negation(Lit([]byte("hi")))
	r := MatchString(pat, "bye")
	if !r.Matched || r.N != 0 {
		t.Fatalf("expected negation to succeed consuming 0 bytes, got matched=%v n=%d", r.Matched, r.N)
	}
	if MatchString(pat, "hi").Matched {
		t.Fatal("expected negation to fail when body matches")
	}
}

func TestGrammarRecursiveBalanced(t *testing.T) {
	table := NewRuleTable()
	start := V(table, "S")
	body := Alt(
		Seq(Lit([]byte("a")), start, Lit([]byte("b"))),
		Lit([]byte("")),
	)
	table.SetBody("S", body)
	grammar, err := Grammar(table, "S")
	if err != nil {
		t.Fatalf("unexpected grammar construction error: %v", err)
	}
	if !IsFullMatch(grammar, []byte("aaabbb")) {
		t.Fatal("expected grammar to fully match \"aaabbb\"")
	}
	if IsFullMatch(grammar, []byte("aab")) {
		t.Fatal("expected grammar to reject unbalanced \"aab\"")
	}
}

func TestGrammarRejectsLeftRecursion(t *testing.T) {
	table := NewRuleTable()
	self := V(table, "S")
	table.SetBody("S", Seq(self, Lit([]byte("a"))))
	if _, err := Grammar(table, "S"); err == nil {
		t.Fatal("expected left-recursive grammar to be rejected")
	}
}

func TestGrammarRejectsUndefinedRef(t *testing.T) {
	table := NewRuleTable()
	table.SetBody("S", V(table, "Undefined"))
	if _, err := Grammar(table, "S"); err == nil {
		t.Fatal("expected undefined rule reference to be rejected")
	}
}
