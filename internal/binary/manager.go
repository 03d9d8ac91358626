package binary

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/RobinBoers/tailwind/internal/config"
	"github.com/RobinBoers/tailwind/internal/platform"
)

// Manager orchestrates version resolution, target resolution, path
// computation, and installation for the wrapped binary.
type Manager struct {
	cfg       *config.Config
	info      *platform.Info
	logger    hclog.Logger
	workDir   string
	fetcher   *Fetcher
	installer *Installer
}

// ManagerConfig holds everything a Manager needs. Config and Platform
// are required.
type ManagerConfig struct {
	Config   *config.Config
	Platform *platform.Info
	Logger   hclog.Logger
	// WorkDir anchors the default install root. Empty means the
	// process working directory.
	WorkDir string
}

// NewManager creates a new binary manager.
func NewManager(mc ManagerConfig) (*Manager, error) {
	if mc.Config == nil {
		return nil, fmt.Errorf("Config is required")
	}
	if mc.Platform == nil {
		return nil, fmt.Errorf("Platform is required")
	}

	logger := mc.Logger
	if logger == nil {
		logger = hclog.Default()
	}

	workDir := mc.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		workDir = wd
	}

	fetcher := NewFetcher(logger)
	verifier := &Verifier{Checksum: mc.Config.Checksum}
	if mc.Config.Signature != nil {
		verifier.KeyPath = mc.Config.Signature.Key
	}

	return &Manager{
		cfg:       mc.Config,
		info:      mc.Platform,
		logger:    logger,
		workDir:   workDir,
		fetcher:   fetcher,
		installer: NewInstaller(fetcher, verifier, logger),
	}, nil
}

// Version resolves the tool version for a profile: the profile override
// if set, else the global override, else the compiled-in latest.
// Unknown profiles are a configuration error, never a silent default.
func (m *Manager) Version(profileName string) (string, error) {
	profile, err := m.cfg.Profile(profileName)
	if err != nil {
		return "", err
	}

	if profile.Version != "" {
		return profile.Version, nil
	}
	return m.GlobalVersion(), nil
}

// GlobalVersion resolves the process-wide tool version: the global
// override if set, else the compiled-in latest.
func (m *Manager) GlobalVersion() string {
	if m.cfg.Version != "" {
		return m.cfg.Version
	}
	return LatestVersion
}

// Target resolves the release target identifier: the configured
// override when present, otherwise the detected host platform mapped
// through the resolution matrix. version must be the same resolved
// version the caller downloads or paths with; it drives the musl
// suffix rule, and a mismatch there means the download URL names an
// asset that does not exist.
func (m *Manager) Target(version string) (string, error) {
	if m.cfg.Target != "" {
		return m.cfg.Target, nil
	}
	return platform.ResolveTarget(m.info, version)
}

// BinPath computes the executable path for a profile. An explicit
// `path` config entry short-circuits managed installation entirely.
func (m *Manager) BinPath(profileName string) (string, error) {
	if m.cfg.Path != "" {
		return m.cfg.Path, nil
	}

	version, err := m.Version(profileName)
	if err != nil {
		return "", err
	}

	target, err := m.Target(version)
	if err != nil {
		return "", err
	}

	return BinPath(DefaultInstallRoot(m.workDir), target, version), nil
}

// IsInstalled reports whether the binary for a profile exists as a
// regular executable file.
func (m *Manager) IsInstalled(profileName string) (bool, error) {
	path, err := m.BinPath(profileName)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat binary: %w", err)
	}

	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0, nil
}

// Install downloads and installs the binary for a profile, replacing
// any existing file at the computed path.
func (m *Manager) Install(ctx context.Context, profileName string) error {
	version, err := m.Version(profileName)
	if err != nil {
		return err
	}

	target, err := m.Target(version)
	if err != nil {
		return err
	}

	url, err := BuildDownloadURL(m.cfg.BaseURL, version, target)
	if err != nil {
		return err
	}

	var sigURL string
	if m.cfg.Signature != nil {
		sigURL, err = BuildDownloadURL(m.cfg.Signature.URL, version, target)
		if err != nil {
			return fmt.Errorf("signature URL: %w", err)
		}
	}

	path, err := m.BinPath(profileName)
	if err != nil {
		return err
	}

	return m.installer.Install(ctx, url, sigURL, path)
}

// EnsureInstalled returns the binary path for a profile, installing it
// first when missing. Network and filesystem writes happen only on the
// missing path.
func (m *Manager) EnsureInstalled(ctx context.Context, profileName string) (string, error) {
	path, err := m.BinPath(profileName)
	if err != nil {
		return "", err
	}

	installed, err := m.IsInstalled(profileName)
	if err != nil {
		return "", err
	}
	if installed {
		return path, nil
	}

	if m.cfg.Path != "" {
		// An explicit path is the user's responsibility; never
		// download over it.
		return "", fmt.Errorf("configured tailwindcss path %s does not exist or is not executable", path)
	}

	if err := m.Install(ctx, profileName); err != nil {
		return "", err
	}
	return path, nil
}

// CheckDrift probes the installed binary and warns when its
// self-reported version differs from the configured one. Probe failures
// and drift are never fatal: execution proceeds with the installed
// binary regardless.
func (m *Manager) CheckDrift(ctx context.Context, profileName, path string) {
	if !m.cfg.VersionCheck {
		return
	}

	expected, err := m.Version(profileName)
	if err != nil {
		return
	}

	actual, err := InstalledVersion(ctx, path)
	if err != nil {
		m.logger.Debug("version probe failed", "path", path, "error", err)
		return
	}

	if actual != expected {
		m.logger.Warn("outdated tailwindcss version",
			"expected", expected,
			"installed", actual,
			"hint", "run `tailwind install` or update the version in tailwind.lua")
	}
}
