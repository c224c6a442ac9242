// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package cmd wires the compiler into a cobra-based command-line tool,
// rplc, following the teacher's own cmd package layout: one file per
// subcommand, a shared RootCommand the subcommands register themselves
// onto from an init(), and small flag helpers factored out into flags.go.
package cmd

import (
	"github.com/spf13/cobra"
)

// RootCommand is the base CLI command every subcommand attaches itself
// to via AddCommand in its own init().
var RootCommand = &cobra.Command{
	Use:   "rplc",
	Short: "Rosie Pattern Language compiler",
	Long:  "rplc compiles Rosie Pattern Language source into executable PEG patterns.",
}
