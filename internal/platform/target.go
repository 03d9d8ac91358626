package platform

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// muslRange is the release range that publishes separate musl assets.
// Earlier majors bundled a static binary and never used the suffix;
// requesting it there produces a 404.
var muslRange = mustConstraint(">= 4.0.0, < 5.0.0")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// UnsupportedPlatformError is returned when the host platform tuple does
// not map onto any published release target.
type UnsupportedPlatformError struct {
	OS       string
	Arch     string
	WordSize int
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("tailwindcss is not available for architecture %q on %s (%d-bit)",
		e.Arch, e.OS, e.WordSize)
}

// KnownTargets lists every target identifier the release server
// publishes assets for. Explicit `target` config overrides must be one
// of these.
var KnownTargets = []string{
	"windows-x64.exe",
	"macos-arm64",
	"macos-x64",
	"freebsd-arm64",
	"freebsd-x64",
	"linux-arm64",
	"linux-arm64-musl",
	"linux-x64",
	"linux-x64-musl",
	"linux-armv7",
}

// IsKnownTarget reports whether s is one of the published release targets.
func IsKnownTarget(s string) bool {
	for _, t := range KnownTargets {
		if s == t {
			return true
		}
	}
	return false
}

// ResolveTarget maps a host platform tuple onto the release target
// identifier for the given tool version. It is a pure function of the
// Info tuple and the version string; unmatched tuples return an
// *UnsupportedPlatformError.
//
// The version participates only in the musl suffix rule: 4.x releases
// publish separate -musl assets for 64-bit Linux, earlier and later
// majors do not.
func ResolveTarget(info *Info, version string) (string, error) {
	switch {
	case info.OS == "windows" && info.WordSize == 64:
		return "windows-x64.exe", nil

	case info.OS == "darwin" && info.WordSize == 64 && isARM64(info.Arch):
		return "macos-arm64", nil
	case info.OS == "darwin" && info.WordSize == 64 && info.Arch == "x86_64":
		return "macos-x64", nil

	case info.OS == "freebsd" && info.WordSize == 64 && info.Arch == "aarch64":
		return "freebsd-arm64", nil
	case info.OS == "freebsd" && info.WordSize == 64 && isX64(info.Arch):
		return "freebsd-x64", nil

	case info.OS == "linux" && info.WordSize == 64 && info.Arch == "aarch64":
		return "linux-arm64" + muslSuffix(info, version), nil
	case info.OS == "linux" && info.WordSize == 64 && isX64(info.Arch):
		return "linux-x64" + muslSuffix(info, version), nil

	case info.OS == "linux" && info.WordSize == 32 && isARMv7(info.Arch):
		return "linux-armv7", nil
	}

	return "", &UnsupportedPlatformError{OS: info.OS, Arch: info.Arch, WordSize: info.WordSize}
}

func isARM64(arch string) bool {
	return arch == "arm" || arch == "aarch64"
}

func isX64(arch string) bool {
	return arch == "x86_64" || arch == "amd64"
}

func isARMv7(arch string) bool {
	return arch == "arm" || len(arch) >= 5 && arch[:5] == "armv7"
}

// muslSuffix returns "-musl" when the host libc is musl and the version
// is in the range that publishes musl assets. Versions that don't parse
// as semver get no suffix.
func muslSuffix(info *Info, version string) string {
	if info.ABI != ABIMusl {
		return ""
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return ""
	}
	if !muslRange.Check(v) {
		return ""
	}
	return "-musl"
}
