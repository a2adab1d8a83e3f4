package render

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Execute runs args[0] with the remaining arguments. Stderr is captured for
// error reporting and tee'd to os.Stderr when verbose is set.
func Execute(ctx context.Context, args []string, verbose bool) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// LastLine returns the last non-empty line of ffmpeg stderr, which usually
// carries the actual error.
func (r ExecResult) LastLine() string {
	lines := strings.Split(strings.TrimSpace(r.Stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
