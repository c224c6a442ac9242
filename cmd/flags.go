// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
)

func addConfigFileFlag(fs *pflag.FlagSet, file *string) {
	fs.StringVarP(file, "config-file", "c", "", "set path of a config file (YAML/JSON/TOML) providing compiler options")
}

func addStrictSurrogatesFlag(fs *pflag.FlagSet, strict *bool) {
	fs.BoolVar(strict, "strict-surrogates", true, "reject unicode codepoint ranges overlapping the surrogate block D800-DFFF")
}

func addCapturePrefixFlag(fs *pflag.FlagSet, prefix *string) {
	fs.StringVar(prefix, "capture-prefix", "*", "anonymous capture label used when force-wrapping a top-level expression")
}

func addImportPathFlag(fs *pflag.FlagSet, importPath *string) {
	fs.StringVar(importPath, "import-path", "", "import path to attribute to an anonymous block's package prefix (§4.6)")
}

func addPrefixFlag(fs *pflag.FlagSet, prefix *string) {
	fs.StringVar(prefix, "prefix", "", `override the package prefix used to build capture labels ("." selects no prefix)`)
}

// outputFormat is a small closed enum flag, the same shape as the
// teacher's util.EnumFlag but scoped to just the formats rplc supports; a
// general-purpose EnumFlag type isn't worth porting for two values.
type outputFormat struct {
	value   string
	allowed []string
}

func newOutputFormatFlag(def string, allowed ...string) *outputFormat {
	return &outputFormat{value: def, allowed: allowed}
}

func (f *outputFormat) String() string { return f.value }

func (f *outputFormat) Set(s string) error {
	for _, a := range f.allowed {
		if s == a {
			f.value = s
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: expected one of %v", s, f.allowed)
}

func (f *outputFormat) Type() string { return "format" }

func addOutputFormatFlag(fs *pflag.FlagSet, f *outputFormat) {
	fs.VarP(f, "format", "f", fmt.Sprintf("set output format: %v", f.allowed))
}
