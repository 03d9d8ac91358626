// Package runner executes the installed tailwindcss binary with a
// profile's arguments and environment, streaming its output as it is
// produced.
package runner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/RobinBoers/tailwind/internal/config"
)

// Tailwind shells out to browserslist, which exits nonzero when its
// vendored database is stale. That failure mode is useless for a
// pinned binary, so every child gets this unless the profile sets it.
const browserslistIgnoreOldData = "BROWSERSLIST_IGNORE_OLD_DATA"

// Runner executes the tailwindcss binary for a profile.
type Runner struct {
	logger hclog.Logger
	output io.Writer
}

// New creates a runner that writes the child's combined output to
// output. A nil output means os.Stdout.
func New(logger hclog.Logger, output io.Writer) *Runner {
	if logger == nil {
		logger = hclog.Default()
	}
	if output == nil {
		output = os.Stdout
	}
	return &Runner{
		logger: logger.Named("run"),
		output: output,
	}
}

// Run invokes the binary at binPath with the profile's arguments
// followed by extraArgs, in the profile's directory, with the merged
// environment. stdout and stderr are combined into a single stream and
// relayed line by line. The child's exit code is returned; a nonzero
// exit is not an error.
func (r *Runner) Run(binPath string, profile config.Profile, extraArgs []string) (int, error) {
	args := make([]string, 0, len(profile.Args)+len(extraArgs))
	args = append(args, profile.Args...)
	args = append(args, extraArgs...)

	cmd := exec.Command(binPath, args...)
	cmd.Dir = profile.Dir
	cmd.Env = mergeEnv(os.Environ(), profile.Env)
	cmd.Stdin = os.Stdin

	pr, pw, err := os.Pipe()
	if err != nil {
		return -1, fmt.Errorf("create output pipe: %w", err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	r.logger.Debug("running tailwindcss", "path", binPath, "args", args, "dir", profile.Dir)

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return -1, fmt.Errorf("start %s: %w", binPath, err)
	}

	// The child holds its own copy of the write end; closing ours lets
	// the scanner see EOF when the child exits.
	pw.Close()

	done := make(chan error, 1)
	go func() {
		done <- r.relay(pr)
	}()

	waitErr := cmd.Wait()
	relayErr := <-done
	pr.Close()

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("run %s: %w", binPath, waitErr)
	}
	if relayErr != nil {
		return -1, fmt.Errorf("relay output: %w", relayErr)
	}

	return 0, nil
}

// relay copies the combined stream to the output writer one line at a
// time, so partial output is visible during long builds.
func (r *Runner) relay(pr io.Reader) error {
	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(r.output, scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// mergeEnv layers the forced defaults and the profile's environment
// over the inherited one. Profile entries win over the forced
// defaults, and both win over inherited values.
func mergeEnv(base []string, overrides map[string]string) []string {
	index := make(map[string]int, len(base))
	merged := make([]string, 0, len(base)+len(overrides)+1)

	set := func(name, value string) {
		if i, ok := index[name]; ok {
			merged[i] = name + "=" + value
			return
		}
		index[name] = len(merged)
		merged = append(merged, name+"="+value)
	}

	for _, kv := range base {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		set(name, value)
	}

	set(browserslistIgnoreOldData, "1")

	for name, value := range overrides {
		set(name, value)
	}

	return merged
}
