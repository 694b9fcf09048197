//go:build !windows

package process

import "syscall"

// KillTree sends SIGKILL to the process group led by pid, taking the browser
// and its helper processes down together. Errors are ignored: the group may
// already be gone.
func KillTree(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
