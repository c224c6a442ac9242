// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempBlock(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "block.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func freshCompileCommand() *compileParams {
	return &compileParams{format: newOutputFormatFlag("text", "text", "json")}
}

func TestRunCompileReportsBindings(t *testing.T) {
	path := writeTempBlock(t, `{
		"type": "block",
		"stmts": [
			{"type": "binding", "ref": {"type": "ref", "localname": "digit"},
			 "exp": {"type": "cs_range", "first": "0", "last": "9"}},
			{"type": "binding", "ref": {"type": "ref", "localname": "num"},
			 "exp": {"type": "atleast", "exp": {"type": "ref", "localname": "digit"}, "min": 1}}
		]
	}`)

	var stdout, stderr bytes.Buffer
	p := freshCompileCommand()
	p.matchBinding = "num"
	p.matchInput = "42x"
	err := runCompile(compileCommand, []string{path}, p, &stdout, &stderr)
	if err != nil {
		t.Fatalf("runCompile: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "bound: digit") || !strings.Contains(out, "bound: num") {
		t.Fatalf("expected both bindings reported, got %q", out)
	}
	if !strings.Contains(out, "matched=true") {
		t.Fatalf("expected a successful match, got %q", out)
	}
}

func TestRunCompileReportsViolations(t *testing.T) {
	path := writeTempBlock(t, `{
		"type": "block",
		"stmts": [
			{"type": "binding", "ref": {"type": "ref", "localname": "a"},
			 "exp": {"type": "ref", "localname": "b"}},
			{"type": "binding", "ref": {"type": "ref", "localname": "b"},
			 "exp": {"type": "ref", "localname": "a"}}
		]
	}`)

	var stdout, stderr bytes.Buffer
	p := freshCompileCommand()
	err := runCompile(compileCommand, []string{path}, p, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected a non-nil error for a block with compile violations")
	}
	exitErr, ok := err.(*ExitError)
	if !ok || exitErr.Exit != 1 {
		t.Fatalf("err = %v, want an ExitError with exit 1", err)
	}
	if !strings.Contains(stderr.String(), "unbound identifier") {
		t.Fatalf("expected unbound identifier diagnostics on stderr, got %q", stderr.String())
	}
}

func TestRunCompileJSONFormat(t *testing.T) {
	path := writeTempBlock(t, `{
		"type": "block",
		"stmts": [
			{"type": "binding", "ref": {"type": "ref", "localname": "x"},
			 "exp": {"type": "literal", "value": "hi"}}
		]
	}`)

	var stdout, stderr bytes.Buffer
	p := freshCompileCommand()
	p.format.value = "json"
	if err := runCompile(compileCommand, []string{path}, p, &stdout, &stderr); err != nil {
		t.Fatalf("runCompile: %v", err)
	}
	if !strings.Contains(stdout.String(), `"bindings"`) {
		t.Fatalf("expected JSON output, got %q", stdout.String())
	}
}

func TestRunRangesCompilesAndSamples(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	f, err := os.Create(out)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	p := &rangesParams{strictSurrogates: true, sample: "5"}
	if err := runRanges([]string{"48", "57"}, p, f); err != nil {
		t.Fatalf("runRanges: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "matched=true") {
		t.Fatalf("expected the sample to match, got %q", string(data))
	}
}

func TestRunRangesRejectsSurrogatesWhenStrict(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	f, err := os.Create(out)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	p := &rangesParams{strictSurrogates: true}
	err = runRanges([]string{"55000", "56000"}, p, f)
	if err == nil {
		t.Fatal("expected an error for a surrogate-overlapping range")
	}
}
