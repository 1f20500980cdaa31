package process

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/wbuild/internal/errors"
	"git.home.luguber.info/inful/wbuild/internal/logfields"
)

// Runner executes a descriptor once and reports how it ended. Output is
// streamed to the configured writers; nothing is buffered or restarted.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// NewRunner creates a runner writing child output to the process's own stdout/stderr.
func NewRunner() *Runner {
	return &Runner{
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: slog.Default(),
	}
}

// WithOutput redirects child stdout and stderr.
func (r *Runner) WithOutput(stdout, stderr io.Writer) *Runner {
	r.stdout = stdout
	r.stderr = stderr
	return r
}

// WithLogger replaces the logger used for run lifecycle messages.
func (r *Runner) WithLogger(l *slog.Logger) *Runner {
	if l != nil {
		r.logger = l
	}
	return r
}

// Run starts d and waits for it. raw is the command text as the user wrote
// it; it is only used for logging and error context.
func (r *Runner) Run(ctx context.Context, raw string, d Descriptor) error {
	runID := uuid.NewString()
	start := time.Now()

	cmd := d.Cmd(ctx)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	r.logger.Info("Running build command",
		logfields.RunID(runID),
		logfields.Command(raw),
		logfields.Program(d.Program),
		logfields.Dir(d.Dir))

	err := cmd.Run()
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		code := exitCode(err)
		r.logger.Error("Build command failed",
			logfields.RunID(runID),
			logfields.Command(raw),
			logfields.ExitCode(code),
			logfields.DurationMS(elapsed),
			logfields.Error(err))
		return errors.BuildFailed(raw, err).
			WithContext("exit_code", code).
			WithContext("dir", d.Dir)
	}

	r.logger.Info("Build command finished",
		logfields.RunID(runID),
		logfields.DurationMS(elapsed))
	return nil
}

// exitCode extracts the child's exit status, or -1 when it never ran.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
