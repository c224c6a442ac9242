// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import "fmt"

// ExitError carries a process exit code past cobra's Execute() so main can
// report the right status without every command calling os.Exit directly.
type ExitError struct {
	Exit int
}

func newExitError(exit int) error {
	return &ExitError{Exit: exit}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Exit)
}
