//go:build windows

// Package process stops the browser started for PDF output together with
// its helper processes.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup terminates pid and its child processes with taskkill
// (/F forces, /T includes the process tree).
func KillProcessGroup(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- numeric pid
}
