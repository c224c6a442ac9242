// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/vmorris/rosie-pattern-language/cmd"
)

func main() {
	if err := cmd.RootCommand.Execute(); err != nil {
		if exit, ok := err.(*cmd.ExitError); ok {
			os.Exit(exit.Exit)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
