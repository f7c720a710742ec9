//go:build !windows

package session

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

func shellCommand(shell, command string) *exec.Cmd {
	return exec.Command(shell, "-c", command)
}

// configureProcess puts the child in its own process group so Shutdown can
// signal everything the command spawned.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func terminate(pid int) error {
	return unix.Kill(-pid, unix.SIGTERM)
}
