// Package testutil provides helpers for testing the wrapper in isolation.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// proxyVars are every environment variable the fetcher consults for
// proxy resolution.
var proxyVars = []string{"HTTP_PROXY", "http_proxy", "HTTPS_PROXY", "https_proxy", "NO_PROXY", "no_proxy"}

// ClearProxyEnv unsets all proxy-related environment variables for the
// duration of a test, so fetch tests never route through a developer's
// real proxy. t.Setenv registers the restore automatically.
func ClearProxyEnv(t *testing.T) {
	t.Helper()
	for _, name := range proxyVars {
		t.Setenv(name, "")
	}
}

// WriteFakeTool writes an executable shell script into dir that prints
// the given stdout, prints the given stderr, and exits with the given
// code. It returns the script path. Tests using it must skip on Windows.
func WriteFakeTool(t *testing.T, dir, name, stdout, stderr string, exitCode int) string {
	t.Helper()

	script := "#!/bin/sh\n"
	if stdout != "" {
		script += "cat <<'FAKE_STDOUT'\n" + stdout + "\nFAKE_STDOUT\n"
	}
	if stderr != "" {
		script += "cat >&2 <<'FAKE_STDERR'\n" + stderr + "\nFAKE_STDERR\n"
	}
	script += fmt.Sprintf("exit %d\n", exitCode)

	return WriteFakeScript(t, dir, name, script)
}

// WriteFakeScript writes body into dir as an executable script and
// returns its path. Tests using it must skip on Windows.
func WriteFakeScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts require a POSIX shell")
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}

	return path
}
