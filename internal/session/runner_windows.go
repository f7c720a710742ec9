//go:build windows

package session

import (
	"os"
	"os/exec"
)

func shellCommand(shell, command string) *exec.Cmd {
	return exec.Command(shell, "/C", command)
}

func configureProcess(*exec.Cmd) {}

func terminate(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return p.Kill()
}
