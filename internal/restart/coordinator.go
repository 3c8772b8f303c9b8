// Package restart signals the process supervisor after a mutating lifecycle
// operation. Newly installed or removed extension code only takes effect on
// the next host startup, so mutations request a restart rather than a live
// reload.
package restart

import (
	"os/exec"
	"sync/atomic"

	"go.uber.org/zap"
)

// Coordinator receives fire-and-forget restart requests. The caller does not
// wait for the restart to happen and cannot verify that it did.
type Coordinator interface {
	// RequestRestart asks the supervisor to restart the host. Reason is for
	// logging only.
	RequestRestart(reason string)

	// Pending reports whether a restart has been requested but, as far as
	// this process knows, not yet performed. When no supervisor is
	// configured this stays set until a manual restart.
	Pending() bool
}

// Exec is a Coordinator that runs a configured shell command asynchronously.
// With an empty command it only records the pending state; the caller is
// expected to surface "restart required" to the operator.
type Exec struct {
	command string
	logger  *zap.Logger
	pending atomic.Bool
}

// NewExec returns a Coordinator that runs command via the shell. An empty
// command means no supervisor is present.
func NewExec(command string, logger *zap.Logger) *Exec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exec{command: command, logger: logger}
}

var _ Coordinator = (*Exec)(nil)

// RequestRestart marks the pending flag and, when a command is configured,
// launches it in the background. Command failures are logged, never
// returned: the lifecycle operation that triggered the restart has already
// succeeded.
func (e *Exec) RequestRestart(reason string) {
	e.pending.Store(true)

	if e.command == "" {
		e.logger.Warn("restart requested but no restart command configured; manual restart required",
			zap.String("reason", reason))
		return
	}

	e.logger.Info("requesting host restart",
		zap.String("reason", reason),
		zap.String("command", e.command))

	cmd := exec.Command("sh", "-c", e.command)
	go func() {
		if err := cmd.Run(); err != nil {
			e.logger.Error("restart command failed; manual restart required",
				zap.String("command", e.command),
				zap.Error(err))
		}
	}()
}

// Pending reports whether a restart request is outstanding.
func (e *Exec) Pending() bool {
	return e.pending.Load()
}
