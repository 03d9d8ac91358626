package binary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// Installer materializes a fetched release body as an executable file.
type Installer struct {
	fetcher  *Fetcher
	verifier *Verifier
	logger   hclog.Logger
}

// NewInstaller creates an installer that downloads with fetcher and,
// when verifier is non-nil, verifies before writing.
func NewInstaller(fetcher *Fetcher, verifier *Verifier, logger hclog.Logger) *Installer {
	if logger == nil {
		logger = hclog.Default()
	}
	return &Installer{
		fetcher:  fetcher,
		verifier: verifier,
		logger:   logger.Named("install"),
	}
}

// Install downloads url (optionally verifying it against sigURL and the
// verifier's pins) and writes the body to destPath with execute
// permission bits set.
//
// The body is written to a temp file next to the destination and renamed
// into place, so no partial binary is ever visible at destPath. Any
// existing file is removed first rather than overwritten: macOS keys its
// code-signing cache by inode, and an in-place overwrite would keep
// serving the stale signature. Re-running with the same inputs replaces
// the file identically.
func (i *Installer) Install(ctx context.Context, url, sigURL, destPath string) error {
	i.logger.Info("downloading tailwindcss", "url", url)

	body, err := i.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	if i.verifier != nil {
		if err := i.verifier.VerifyChecksum(body); err != nil {
			return err
		}

		if sigURL != "" {
			signature, err := i.fetcher.Fetch(ctx, sigURL)
			if err != nil {
				return fmt.Errorf("download signature: %w", err)
			}
			if err := i.verifier.VerifySignature(body, signature); err != nil {
				return err
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create install directory: %w", err)
	}

	tmpPath := destPath + ".tmp"
	if err := os.WriteFile(tmpPath, body, 0o755); err != nil {
		return fmt.Errorf("write binary: %w", err)
	}

	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("remove stale binary: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("install binary: %w", err)
	}

	// WriteFile applies the umask; make the bits explicit.
	if err := os.Chmod(destPath, 0o755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}

	i.logger.Info("installed tailwindcss", "path", destPath, "size", len(body))
	return nil
}
