//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree force-kills pid and every child it spawned (taskkill /F /T).
// Errors are ignored: the tree may already be gone.
func KillTree(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
}
