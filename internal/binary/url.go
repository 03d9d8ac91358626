package binary

import (
	"fmt"
	"strings"
)

// BuildDownloadURL substitutes the version and target into a release URL
// template. Both placeholders are required so a misconfigured base URL
// fails fast instead of producing a well-formed request for the wrong
// asset.
func BuildDownloadURL(base, version, target string) (string, error) {
	if base == "" {
		base = DefaultBaseURL
	}

	if !strings.Contains(base, "$version") {
		return "", fmt.Errorf("base URL %q is missing the required $version placeholder", base)
	}
	if !strings.Contains(base, "$target") {
		return "", fmt.Errorf("base URL %q is missing the required $target placeholder", base)
	}

	url := strings.ReplaceAll(base, "$version", version)
	url = strings.ReplaceAll(url, "$target", target)
	return url, nil
}
