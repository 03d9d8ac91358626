// Package platform provides host platform detection and release target
// resolution for the tailwindcss standalone CLI.
//
// It detects OS, CPU architecture, libc ABI, and pointer width, maps the
// result onto the fixed set of release target identifiers published by
// the Tailwind release server, and injects the detected information as a
// read-only table into Lua configurations. Linux distribution details
// come from gopsutil and degrade gracefully when detection fails.
package platform

import "context"

// Linux distribution family constants.
// These represent canonical family names for grouping related distributions.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// ABI constants for the libc variant a Linux host is running.
const (
	ABIGnu  = "gnu"  // glibc-based systems
	ABIMusl = "musl" // musl-based systems (Alpine and friends)
)

// Info contains the detected host platform tuple used for target
// resolution: OS family, architecture, ABI, and word size.
type Info struct {
	OS       string // "linux", "darwin", "windows", "freebsd"
	Arch     string // release arch token: "x86_64", "aarch64", "armv7", ...
	ArchRaw  string // original GOARCH value (e.g. "amd64", "arm64")
	ABI      string // "gnu", "musl", or "" when not applicable/unknown
	WordSize int    // pointer width in bits: 32 or 64

	Platform string // distro ID (Linux only, e.g. "ubuntu", "alpine")
	Family   string // canonical family (e.g. "debian", "alpine")
	Version  string // distro version (Linux only, e.g. "22.04")
}

// Distro contains Linux distribution information.
// This is nil on non-Linux platforms.
type Distro struct {
	ID      string // distro ID (e.g. "alpine")
	Family  string // canonical family (e.g. "alpine")
	Version string // version (e.g. "3.19")
}

// GetDistro returns distro information if this is a Linux platform.
// Returns nil for non-Linux platforms or if distro detection failed.
func (i *Info) GetDistro() *Distro {
	if i.OS != "linux" || i.Platform == "" {
		return nil
	}
	return &Distro{
		ID:      i.Platform,
		Family:  i.Family,
		Version: i.Version,
	}
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsFreeBSD returns true if the platform is FreeBSD.
func (i *Info) IsFreeBSD() bool {
	return i.OS == "freebsd"
}

// IsMusl returns true if the host libc is musl.
func (i *Info) IsMusl() bool {
	return i.ABI == ABIMusl
}

// IsAppleSilicon returns true if running on Apple Silicon (macOS + aarch64).
func (i *Info) IsAppleSilicon() bool {
	return i.OS == "darwin" && i.Arch == "aarch64"
}

// IsAlpine returns true if the Linux distribution is Alpine.
func (i *Info) IsAlpine() bool {
	return i.OS == "linux" && i.Family == FamilyAlpine
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
