package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual host introspection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect performs platform detection and returns platform information.
// It uses runtime.GOOS and runtime.GOARCH for OS and architecture,
// strconv.IntSize for the word size, and gopsutil for Linux
// distribution details.
//
// On Linux the libc ABI is derived from the distribution family (Alpine
// implies musl) with a filesystem probe for the musl dynamic loader as
// backup. If gopsutil fails to detect the distribution, distro fields
// stay empty and detection continues; the binary target can still be
// resolved from OS, arch, and word size alone.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:       runtime.GOOS,
		ArchRaw:  runtime.GOARCH,
		WordSize: strconv.IntSize,
	}

	arch, err := releaseArch(runtime.GOARCH)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}
	info.Arch = arch

	if runtime.GOOS != "linux" {
		return info, nil
	}

	info.ABI = detectABI()

	platform, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		// Context cancellation is a hard failure; plain detection
		// failures fall back to OS/arch-only information.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}

	platform = normalizePlatform(platform)
	family = mapFamily(family)
	version = normalizePlatform(version)

	if platform != "" {
		info.Platform = platform
		info.Family = family
		info.Version = version
	}

	// Alpine ships musl even when the loader glob misses it.
	if info.Family == FamilyAlpine {
		info.ABI = ABIMusl
	}

	return info, nil
}

// detectABI probes the filesystem for the musl dynamic loader.
// Glibc systems get ABIGnu; anything with /lib/ld-musl-*.so* is musl.
func detectABI() string {
	matches, err := filepath.Glob("/lib/ld-musl-*.so*")
	if err == nil && len(matches) > 0 {
		return ABIMusl
	}
	return ABIGnu
}
