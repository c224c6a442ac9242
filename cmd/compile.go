// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmorris/rosie-pattern-language/ast"
	"github.com/vmorris/rosie-pattern-language/compile"
	"github.com/vmorris/rosie-pattern-language/config"
	"github.com/vmorris/rosie-pattern-language/env"
	"github.com/vmorris/rosie-pattern-language/peg"
	"github.com/vmorris/rosie-pattern-language/wire"
)

type compileParams struct {
	configFile       string
	strictSurrogates bool
	capturePrefix    string
	importPath       string
	prefix           string
	matchBinding     string
	matchInput       string
	format           *outputFormat
}

var configuredCompileParams = compileParams{
	format: newOutputFormatFlag("text", "text", "json"),
}

var compileCommand = &cobra.Command{
	Use:   "compile <path>",
	Short: "Compile a wire-format RPL block into patterns",
	Long: `compile reads a JSON-encoded block document (the tagged-variant AST
named in the compiler's external interface) from path, or from stdin when
path is "-", and runs it through the block compiler.

Any compile diagnostics are printed to stderr; the process exits non-zero
if at least one compile or syntax violation was recorded. With
--match-binding and --match-input, the named top-level binding is also
matched against the given input and the resulting capture tree is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompile(cmd, args, &configuredCompileParams, os.Stdout, os.Stderr)
	},
}

func init() {
	fs := compileCommand.Flags()
	addConfigFileFlag(fs, &configuredCompileParams.configFile)
	addStrictSurrogatesFlag(fs, &configuredCompileParams.strictSurrogates)
	addCapturePrefixFlag(fs, &configuredCompileParams.capturePrefix)
	addImportPathFlag(fs, &configuredCompileParams.importPath)
	addPrefixFlag(fs, &configuredCompileParams.prefix)
	addOutputFormatFlag(fs, configuredCompileParams.format)
	fs.StringVar(&configuredCompileParams.matchBinding, "match-binding", "", "name of a top-level binding to match against --match-input")
	fs.StringVar(&configuredCompileParams.matchInput, "match-input", "", "input text to match --match-binding against")

	RootCommand.AddCommand(compileCommand)
}

func runCompile(cmd *cobra.Command, args []string, p *compileParams, stdout, stderr io.Writer) error {
	opts, err := config.Load(cmd, p.configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("strict-surrogates") {
		opts.StrictSurrogates = p.strictSurrogates
	}
	if cmd.Flags().Changed("capture-prefix") {
		opts.CapturePrefixOverride = p.capturePrefix
	}

	data, err := readCompileInput(args[0])
	if err != nil {
		return err
	}

	block, err := wire.DecodeBlock(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}

	pkgEnv := env.New()
	compile.RegisterBuiltins(pkgEnv, opts)

	req := &compile.LoadRequest{ImportPath: p.importPath, Prefix: p.prefix}
	violations := compile.CompileBlock(pkgEnv, block, req, opts)

	result := buildCompileOutput(block, pkgEnv, violations, p)
	if err := writeCompileOutput(stdout, p.format.String(), result); err != nil {
		return err
	}
	for _, v := range violations {
		fmt.Fprintln(stderr, v.Error())
	}
	if violations.HasErrors() {
		return newExitError(1)
	}
	return nil
}

func readCompileInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

type compileOutput struct {
	Bindings   []string     `json:"bindings"`
	Violations []string     `json:"violations,omitempty"`
	Match      *matchOutput `json:"match,omitempty"`
}

type matchOutput struct {
	Binding  string         `json:"binding"`
	Matched  bool           `json:"matched"`
	Consumed int            `json:"consumed"`
	Captures []captureEntry `json:"captures,omitempty"`
}

type captureEntry struct {
	Label string         `json:"label"`
	Start int            `json:"start"`
	End   int            `json:"end"`
	Subs  []captureEntry `json:"subs,omitempty"`
}

func toCaptureEntries(spans []peg.CaptureSpan) []captureEntry {
	entries := make([]captureEntry, 0, len(spans))
	for _, s := range spans {
		entries = append(entries, captureEntry{
			Label: s.Label,
			Start: s.Start,
			End:   s.End,
			Subs:  toCaptureEntries(s.Subs),
		})
	}
	return entries
}

func buildCompileOutput(block *ast.Block, pkgEnv *env.Environment, violations ast.Violations, p *compileParams) compileOutput {
	out := compileOutput{}
	for _, stmt := range block.Stmts {
		out.Bindings = append(out.Bindings, stmt.Ref.LocalName)
	}
	for _, v := range violations {
		out.Violations = append(out.Violations, v.Error())
	}

	if p.matchBinding == "" {
		return out
	}
	b, ok := pkgEnv.Lookup(p.matchBinding, "")
	if !ok || b.Kind != env.KindPattern {
		return out
	}
	r := peg.MatchString(b.Peg, p.matchInput)
	out.Match = &matchOutput{
		Binding:  p.matchBinding,
		Matched:  r.Matched,
		Consumed: r.N,
		Captures: toCaptureEntries(r.Captures),
	}
	return out
}

func writeCompileOutput(stdout io.Writer, format string, out compileOutput) error {
	if format == "json" {
		bs, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(bs))
		return err
	}

	for _, name := range out.Bindings {
		fmt.Fprintf(stdout, "bound: %s\n", name)
	}
	if out.Match != nil {
		m := out.Match
		fmt.Fprintf(stdout, "match %s: matched=%v consumed=%d\n", m.Binding, m.Matched, m.Consumed)
		for _, c := range m.Captures {
			printCaptureEntry(stdout, c, 1)
		}
	}
	return nil
}

func printCaptureEntry(w io.Writer, c captureEntry, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, "  ")
	}
	fmt.Fprintf(w, "%s: %d-%d\n", c.Label, c.Start, c.End)
	for _, sub := range c.Subs {
		printCaptureEntry(w, sub, depth+1)
	}
}
