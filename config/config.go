// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package config loads the small set of options that steer the compiler's
// handling of Open Questions left unspecified by the grammar itself
// (surrogate codepoints, the anonymous capture label for top-level
// expressions). Options are bound from flags, environment variables (with an
// "RPLC_" prefix, mirroring the teacher's "OPA_<command>_" convention),
// and an optional config file, via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options holds the compiler's configurable behavior.
type Options struct {
	// StrictSurrogates rejects UTF-8 codepoint ranges that include the
	// surrogate block D800..DFFF instead of silently compiling a pattern
	// for them.
	StrictSurrogates bool

	// CapturePrefixOverride replaces the conventional "*" anonymous
	// capture label that compile.CompileTopLevel applies when it wraps a
	// top-level expression (§4.8); an empty value keeps "*".
	CapturePrefixOverride string
}

// Default returns the option set the CLI starts from before flags,
// environment, or a config file are applied.
func Default() Options {
	return Options{
		StrictSurrogates:      true,
		CapturePrefixOverride: "*",
	}
}

const envPrefix = "RPLC"

// Load builds a Viper instance bound to cmd's flags and to environment
// variables under the RPLC_ prefix, reads configPath if non-empty, and
// returns the resulting Options.
func Load(cmd *cobra.Command, configPath string) (Options, error) {
	opts := Default()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("strict-surrogates", opts.StrictSurrogates)
	v.SetDefault("capture-prefix", opts.CapturePrefixOverride)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return opts, fmt.Errorf("reading config file %q: %w", configPath, err)
		}
	}

	if err := bindEnvironmentToFlags(cmd, v); err != nil {
		return opts, err
	}

	opts.StrictSurrogates = v.GetBool("strict-surrogates")
	opts.CapturePrefixOverride = v.GetString("capture-prefix")
	return opts, nil
}

// bindEnvironmentToFlags overwrites any unset flag on cmd with the
// corresponding RPLC_ environment variable, the same flag/env reconciliation
// the teacher's cmd/internal/env.CmdFlags performs.
func bindEnvironmentToFlags(cmd *cobra.Command, v *viper.Viper) error {
	var errs []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		name := strings.ReplaceAll(f.Name, "-", "_")
		if !f.Changed && v.IsSet(name) {
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(name))); err != nil {
				errs = append(errs, err.Error())
			}
		}
	})
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("error mapping environment variables to command flags: %s", strings.Join(errs, "; "))
}
