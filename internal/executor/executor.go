// Package executor runs external build tools with scoped working directories
// and environment overlays, streaming their output into the logger.
package executor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/oshokin/release-forge/internal/logger"
)

// Command describes one external tool invocation.
type Command struct {
	// Name is the tool binary, looked up on PATH when not absolute.
	Name string
	// Args is the tool's argument vector, excluding the binary itself.
	Args []string
	// Dir is the working directory for the invocation; empty means inherit.
	Dir string
	// Env is the full environment in "KEY=VALUE" form; nil means inherit.
	Env []string
}

// Executor runs Commands sequentially. The zero value is usable.
type Executor struct {
	// DryRun logs what would run without executing anything.
	DryRun bool
}

// errEmptyCommand is returned when a Command without a binary name is run.
var errEmptyCommand = errors.New("command name must be provided")

// New returns an Executor.
func New(dryRun bool) *Executor {
	return &Executor{DryRun: dryRun}
}

// Run executes the command, blocking until it exits.
// Tool output goes to the logger line by line: stdout at info, stderr at warn.
// A non-zero exit or a canceled context surfaces as an error wrapping the tool name.
func (e *Executor) Run(ctx context.Context, c Command) error {
	if c.Name == "" {
		return errEmptyCommand
	}

	logger.InfoKV(ctx, "Running command",
		"command", c.Name,
		"args", strings.Join(c.Args, " "),
		"dir", c.Dir)

	if e.DryRun {
		logger.Info(ctx, "Dry run, skipping execution")
		return nil
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%s: stdout pipe: %w", c.Name, err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("%s: stderr pipe: %w", c.Name, err)
	}

	if err = cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", c.Name, err)
	}

	var wg sync.WaitGroup

	wg.Add(2)

	go streamOutput(ctx, &wg, c.Name, stdout, false)
	go streamOutput(ctx, &wg, c.Name, stderr, true)

	// Drain pipes before Wait closes them.
	wg.Wait()

	if err = cmd.Wait(); err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}

	return nil
}

// streamOutput forwards one output pipe to the logger until it is exhausted.
func streamOutput(ctx context.Context, wg *sync.WaitGroup, name string, r io.Reader, isStderr bool) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if isStderr {
			logger.Warnf(ctx, "[%s] %s", name, line)
		} else {
			logger.Infof(ctx, "[%s] %s", name, line)
		}
	}

	if err := scanner.Err(); err != nil {
		logger.WarnKV(ctx, "Reading tool output failed", "command", name, "error", err)
	}
}
