// Package process runs external tools (git, npx) so that cancelling the
// context terminates the whole child process tree.
package process

import (
	"context"
	"os/exec"
	"time"
)

// WaitDelay bounds how long Wait blocks on I/O after the context is cancelled.
const WaitDelay = 2 * time.Second

// Command returns an exec.Cmd for name run in dir. On cancellation the child
// and its descendants are killed, not just the direct child.
func Command(ctx context.Context, dir, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- fixed tool names, user-provided args
	cmd.Dir = dir
	cmd.WaitDelay = WaitDelay
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	return cmd
}
