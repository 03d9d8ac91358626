package config

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/RobinBoers/tailwind/internal/platform"
)

// Config is the process-wide configuration, loaded once at startup and
// read-only afterwards.
type Config struct {
	// Version is the global tool version override. Empty means "use the
	// compiled-in latest version".
	Version string

	// VersionCheck controls the startup drift warning. Defaults to true.
	VersionCheck bool

	// Path is an explicit path to the tailwindcss executable. When set,
	// managed installation is skipped entirely.
	Path string

	// Target overrides the detected platform target identifier. Must be
	// one of the published release targets.
	Target string

	// BaseURL is the download URL template. Must contain the $version
	// and $target placeholders. Empty means the default release URL.
	BaseURL string

	// Checksum is an optional hex-encoded SHA256 digest the downloaded
	// binary must match.
	Checksum string

	// Signature optionally configures detached PGP signature
	// verification of downloads.
	Signature *SignatureConfig

	// Profiles maps profile names to their invocation configuration.
	Profiles map[string]Profile
}

// SignatureConfig configures PGP verification of downloaded binaries.
type SignatureConfig struct {
	// Key is the path to an armored public key file.
	Key string
	// URL is the detached signature URL template. Supports the same
	// $version/$target placeholders as the base URL.
	URL string
}

// Profile is a named, read-only invocation unit.
type Profile struct {
	Name    string
	Args    []string
	Dir     string            // working directory ("cd" in the Lua schema)
	Env     map[string]string // extra environment variables
	Version string            // optional per-profile version override
}

// Default returns the configuration used when no config file exists:
// no overrides and a single empty "default" profile.
func Default() *Config {
	return &Config{
		VersionCheck: true,
		Profiles: map[string]Profile{
			DefaultProfileName: {Name: DefaultProfileName},
		},
	}
}

// UnknownProfileError is returned when a profile name has no
// configuration. It lists the known profiles so the message is
// actionable.
type UnknownProfileError struct {
	Name  string
	Known []string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown tailwind profile %q (known profiles: %s)",
		e.Name, strings.Join(e.Known, ", "))
}

// Profile looks up a profile by name. Unknown names are a configuration
// error, never a silent default.
func (c *Config) Profile(name string) (Profile, error) {
	if p, ok := c.Profiles[name]; ok {
		return p, nil
	}

	known := make([]string, 0, len(c.Profiles))
	for n := range c.Profiles {
		known = append(known, n)
	}
	sort.Strings(known)

	return Profile{}, &UnknownProfileError{Name: name, Known: known}
}

// ProfileNames returns the configured profile names, sorted.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for n := range c.Profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}

// profileNamePattern matches valid profile names.
var profileNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// envNamePattern matches valid environment variable names.
var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate performs structural validation on a Config.
func (c *Config) Validate() error {
	if c.Version != "" {
		if _, err := semver.NewVersion(c.Version); err != nil {
			return &ValidationError{Field: "version", Message: fmt.Sprintf("%q is not a semantic version", c.Version)}
		}
	}

	if c.Target != "" && !platform.IsKnownTarget(c.Target) {
		return &ValidationError{
			Field:   "target",
			Message: fmt.Sprintf("%q is not a published release target (expected one of %s)", c.Target, strings.Join(platform.KnownTargets, ", ")),
		}
	}

	if c.BaseURL != "" {
		if err := validateBaseURL(c.BaseURL); err != nil {
			return &ValidationError{Field: "base_url", Message: err.Error()}
		}
	}

	if c.Checksum != "" && !isHexDigest(c.Checksum) {
		return &ValidationError{Field: "checksum", Message: "must be a 64-character hex SHA256 digest"}
	}

	if c.Signature != nil {
		if c.Signature.Key == "" {
			return &ValidationError{Field: "signature.key", Message: "public key path is required"}
		}
		if c.Signature.URL == "" {
			return &ValidationError{Field: "signature.url", Message: "signature URL is required"}
		}
	}

	if len(c.Profiles) > MaxProfileCount {
		return &ValidationError{
			Field:   "profiles",
			Message: fmt.Sprintf("too many profiles (%d), maximum is %d", len(c.Profiles), MaxProfileCount),
		}
	}

	for name, p := range c.Profiles {
		if err := validateProfile(name, p); err != nil {
			return err
		}
	}

	return nil
}

func validateProfile(name string, p Profile) error {
	field := fmt.Sprintf("profiles.%s", name)

	if !profileNamePattern.MatchString(name) {
		return &ValidationError{Field: "profiles", Message: fmt.Sprintf("invalid profile name %q", name)}
	}

	if len(p.Args) > MaxArgCount {
		return &ValidationError{
			Field:   field + ".args",
			Message: fmt.Sprintf("too many arguments (%d), maximum is %d", len(p.Args), MaxArgCount),
		}
	}

	if len(p.Env) > MaxEnvCount {
		return &ValidationError{
			Field:   field + ".env",
			Message: fmt.Sprintf("too many environment variables (%d), maximum is %d", len(p.Env), MaxEnvCount),
		}
	}

	for k := range p.Env {
		if !envNamePattern.MatchString(k) {
			return &ValidationError{Field: field + ".env", Message: fmt.Sprintf("invalid environment variable name %q", k)}
		}
	}

	if p.Version != "" {
		if _, err := semver.NewVersion(p.Version); err != nil {
			return &ValidationError{Field: field + ".version", Message: fmt.Sprintf("%q is not a semantic version", p.Version)}
		}
	}

	return nil
}

// validateBaseURL checks that a download URL template is usable: it must
// parse, use http(s), and carry both substitution placeholders.
func validateBaseURL(base string) error {
	if !strings.Contains(base, "$version") {
		return fmt.Errorf("missing required $version placeholder")
	}
	if !strings.Contains(base, "$target") {
		return fmt.Errorf("missing required $target placeholder")
	}

	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("must use https:// or http:// scheme (got: %s)", u.Scheme)
	}

	return nil
}

func isHexDigest(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
