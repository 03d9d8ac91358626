package binary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/RobinBoers/tailwind/internal/config"
	"github.com/RobinBoers/tailwind/internal/platform"
	"github.com/RobinBoers/tailwind/internal/testutil"
)

func linuxX64Info() *platform.Info {
	return &platform.Info{
		OS:       "linux",
		Arch:     "x86_64",
		ArchRaw:  "amd64",
		ABI:      platform.ABIGnu,
		WordSize: 64,
	}
}

func newTestManager(t *testing.T, cfg *config.Config, workDir string) *Manager {
	t.Helper()
	m, err := NewManager(ManagerConfig{
		Config:   cfg,
		Platform: linuxX64Info(),
		Logger:   testLogger(),
		WorkDir:  workDir,
	})
	if err != nil {
		t.Fatalf("NewManager() failed: %v", err)
	}
	return m
}

func TestManagerVersionResolution(t *testing.T) {
	cfg := config.Default()
	cfg.Profiles["pinned"] = config.Profile{Name: "pinned", Version: "3.4.17"}

	m := newTestManager(t, cfg, t.TempDir())

	// No overrides anywhere: compiled-in latest.
	version, err := m.Version("default")
	if err != nil {
		t.Fatal(err)
	}
	if version != LatestVersion {
		t.Errorf("default version = %q, want %q", version, LatestVersion)
	}

	// Profile override beats everything.
	version, err = m.Version("pinned")
	if err != nil {
		t.Fatal(err)
	}
	if version != "3.4.17" {
		t.Errorf("pinned version = %q, want 3.4.17", version)
	}

	// Global override fills in for profiles without one.
	cfg.Version = "4.1.0"
	version, err = m.Version("default")
	if err != nil {
		t.Fatal(err)
	}
	if version != "4.1.0" {
		t.Errorf("default version with global override = %q, want 4.1.0", version)
	}
	version, err = m.Version("pinned")
	if err != nil {
		t.Fatal(err)
	}
	if version != "3.4.17" {
		t.Errorf("profile override must still win, got %q", version)
	}
}

func TestManagerVersionUnknownProfile(t *testing.T) {
	m := newTestManager(t, config.Default(), t.TempDir())

	_, err := m.Version("nope")
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
	var unknownErr *config.UnknownProfileError
	if !errors.As(err, &unknownErr) {
		t.Errorf("expected *config.UnknownProfileError, got %T", err)
	}
}

func TestManagerTarget(t *testing.T) {
	cfg := config.Default()
	m := newTestManager(t, cfg, t.TempDir())

	target, err := m.Target(LatestVersion)
	if err != nil {
		t.Fatal(err)
	}
	if target != "linux-x64" {
		t.Errorf("target = %q, want linux-x64", target)
	}

	cfg.Target = "linux-arm64-musl"
	target, err = m.Target(LatestVersion)
	if err != nil {
		t.Fatal(err)
	}
	if target != "linux-arm64-musl" {
		t.Errorf("target override = %q, want linux-arm64-musl", target)
	}
}

// The musl suffix is gated on the version actually being downloaded,
// so a profile pinned to a pre-4.0 release on a musl host must resolve
// a suffix-free target even though the global version would carry one.
func TestManagerProfileVersionDrivesMuslGate(t *testing.T) {
	cfg := config.Default()
	cfg.Profiles["legacy"] = config.Profile{Name: "legacy", Version: "3.4.17"}

	workDir := t.TempDir()
	m, err := NewManager(ManagerConfig{
		Config: cfg,
		Platform: &platform.Info{
			OS:       "linux",
			Arch:     "x86_64",
			ArchRaw:  "amd64",
			ABI:      platform.ABIMusl,
			WordSize: 64,
		},
		Logger:  testLogger(),
		WorkDir: workDir,
	})
	if err != nil {
		t.Fatalf("NewManager() failed: %v", err)
	}

	target, err := m.Target("3.4.17")
	if err != nil {
		t.Fatal(err)
	}
	if target != "linux-x64" {
		t.Errorf("target for 3.4.17 = %q, want linux-x64 (no musl suffix below 4.0)", target)
	}

	path, err := m.BinPath("legacy")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(workDir, "_build", "tailwindcss-linux-x64-3.4.17")
	if path != want {
		t.Errorf("BinPath(legacy) = %q, want %q", path, want)
	}

	// The default profile stays on the 4.x global version and keeps
	// the suffix.
	path, err = m.BinPath("default")
	if err != nil {
		t.Fatal(err)
	}
	want = filepath.Join(workDir, "_build", "tailwindcss-linux-x64-musl-"+LatestVersion)
	if path != want {
		t.Errorf("BinPath(default) = %q, want %q", path, want)
	}

	// The download URL must use the same version and target pair.
	testutil.ClearProxyEnv(t)
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		w.Write([]byte("binary"))
	}))
	defer server.Close()

	cfg.BaseURL = server.URL + "/v$version/tailwindcss-$target"
	if err := m.Install(context.Background(), "legacy"); err != nil {
		t.Fatalf("Install(legacy) failed: %v", err)
	}
	if len(requests) != 1 || requests[0] != "/v3.4.17/tailwindcss-linux-x64" {
		t.Errorf("requests = %v, want [/v3.4.17/tailwindcss-linux-x64]", requests)
	}
}

func TestManagerBinPath(t *testing.T) {
	workDir := t.TempDir()
	cfg := config.Default()
	m := newTestManager(t, cfg, workDir)

	path, err := m.BinPath("default")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(workDir, "_build", "tailwindcss-linux-x64-"+LatestVersion)
	if path != want {
		t.Errorf("BinPath() = %q, want %q", path, want)
	}

	// Explicit path short-circuits the managed layout entirely.
	cfg.Path = "/usr/local/bin/tailwindcss"
	path, err = m.BinPath("default")
	if err != nil {
		t.Fatal(err)
	}
	if path != "/usr/local/bin/tailwindcss" {
		t.Errorf("BinPath() with explicit path = %q", path)
	}
}

func TestManagerIsInstalled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	workDir := t.TempDir()
	m := newTestManager(t, config.Default(), workDir)

	installed, err := m.IsInstalled("default")
	if err != nil {
		t.Fatal(err)
	}
	if installed {
		t.Error("IsInstalled() = true before anything was written")
	}

	path, err := m.BinPath("default")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	// Present but not executable does not count.
	if err := os.WriteFile(path, []byte("binary"), 0o644); err != nil {
		t.Fatal(err)
	}
	installed, err = m.IsInstalled("default")
	if err != nil {
		t.Fatal(err)
	}
	if installed {
		t.Error("IsInstalled() = true for a non-executable file")
	}

	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatal(err)
	}
	installed, err = m.IsInstalled("default")
	if err != nil {
		t.Fatal(err)
	}
	if !installed {
		t.Error("IsInstalled() = false for an executable file")
	}
}

func TestManagerEnsureInstalled(t *testing.T) {
	testutil.ClearProxyEnv(t)

	payload := []byte("downloaded tailwindcss binary")
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		w.Write(payload)
	}))
	defer server.Close()

	workDir := t.TempDir()
	cfg := config.Default()
	cfg.BaseURL = server.URL + "/v$version/tailwindcss-$target"
	m := newTestManager(t, cfg, workDir)

	path, err := m.EnsureInstalled(context.Background(), "default")
	if err != nil {
		t.Fatalf("EnsureInstalled() failed: %v", err)
	}

	wantReq := "/v" + LatestVersion + "/tailwindcss-linux-x64"
	if len(requests) != 1 || requests[0] != wantReq {
		t.Errorf("requests = %v, want [%s]", requests, wantReq)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(payload) {
		t.Error("installed binary does not match served body")
	}

	// Second call finds the binary and performs no network I/O.
	again, err := m.EnsureInstalled(context.Background(), "default")
	if err != nil {
		t.Fatalf("second EnsureInstalled() failed: %v", err)
	}
	if again != path {
		t.Errorf("path changed between calls: %q vs %q", again, path)
	}
	if len(requests) != 1 {
		t.Errorf("expected no additional requests, got %d total", len(requests))
	}
}

func TestManagerEnsureInstalledExplicitPathMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Path = filepath.Join(t.TempDir(), "no-such-binary")
	m := newTestManager(t, cfg, t.TempDir())

	if _, err := m.EnsureInstalled(context.Background(), "default"); err == nil {
		t.Fatal("expected error: explicit path must never be downloaded over")
	}
}
