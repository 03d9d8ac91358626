package binary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"time"
)

// ErrVersionUnknown is returned when the installed binary's version
// cannot be determined: the file is absent, the probe run fails, or its
// output carries no version token. Callers treat this as "not
// installed" / "unknown version", never as a fatal condition.
var ErrVersionUnknown = errors.New("tailwindcss version could not be determined")

// probeTimeout bounds the --help invocation; a healthy binary answers
// in milliseconds.
const probeTimeout = 30 * time.Second

// versionPattern matches the version token the CLI prints in its help
// banner, e.g. "tailwindcss v4.0.9".
var versionPattern = regexp.MustCompile(`tailwindcss v(\S+)`)

// InstalledVersion probes the executable at path by running it with
// --help and extracting its self-reported version from stdout.
//
// Every failure mode wraps ErrVersionUnknown so callers can branch with
// errors.Is without caring why the probe failed.
func InstalledVersion(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s does not exist", ErrVersionUnknown, path)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrVersionUnknown, path)
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	// Output only captures stdout; a non-zero exit surfaces as err.
	out, err := exec.CommandContext(ctx, path, "--help").Output()
	if err != nil {
		return "", fmt.Errorf("%w: probe run failed: %v", ErrVersionUnknown, err)
	}

	match := versionPattern.FindSubmatch(out)
	if match == nil {
		return "", fmt.Errorf("%w: no version token in probe output", ErrVersionUnknown)
	}

	return string(match[1]), nil
}
