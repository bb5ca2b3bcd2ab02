//go:build !windows

// Package process stops the browser started for PDF output together with
// its helper processes.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, which
// takes Chrome's renderer and GPU children down with it.
func KillProcessGroup(pid int) {
	// A pid that leads no group fails with ESRCH; the launcher kills the
	// browser itself afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
