package binary

import (
	"fmt"
	"path/filepath"
)

// BinPath computes the install path for a (target, version) pair:
// <root>/tailwindcss-<target>-<version>. It is a pure function of its
// inputs; the same tuple always yields the same path.
func BinPath(root, target, version string) string {
	name := fmt.Sprintf("%s-%s-%s", ToolName, target, version)
	return filepath.Join(root, name)
}

// DefaultInstallRoot returns the managed install root for a project
// working directory.
func DefaultInstallRoot(workDir string) string {
	return filepath.Join(workDir, DefaultInstallDir)
}
