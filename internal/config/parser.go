package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/RobinBoers/tailwind/internal/platform"
)

// Parser parses Lua config files with platform detection injected.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a new config parser with the given platform detector.
// A nil detector disables the platform table (used by some tests).
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseFile parses a Lua config file from disk. A missing file is not an
// error: it yields the default configuration, matching the behavior of
// running the wrapper in a project with no tailwind.lua.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return p.ParseString(ctx, string(data))
}

// ParseString parses a Lua config from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()

	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractConfig extracts the config from a Lua state.
// It expects a global "tailwind" table with the config structure.
func extractConfig(L *lua.LState) (*Config, error) {
	root := L.GetGlobal(luaGlobalTailwind)
	if root.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'tailwind' table",
			Detail:  fmt.Sprintf("expected table, got %s", root.Type()),
		}
	}

	config := Default()
	table := root.(*lua.LTable)

	if v := table.RawGetString(luaFieldVersion); v.Type() == lua.LTString {
		config.Version = v.String()
	}

	if v := table.RawGetString(luaFieldVersionChk); v.Type() == lua.LTBool {
		config.VersionCheck = bool(v.(lua.LBool))
	}

	if v := table.RawGetString(luaFieldPath); v.Type() == lua.LTString {
		config.Path = v.String()
	}

	if v := table.RawGetString(luaFieldTarget); v.Type() == lua.LTString {
		config.Target = v.String()
	}

	if v := table.RawGetString(luaFieldBaseURL); v.Type() == lua.LTString {
		config.BaseURL = v.String()
	}

	if v := table.RawGetString(luaFieldChecksum); v.Type() == lua.LTString {
		config.Checksum = strings.ToLower(v.String())
	}

	if v := table.RawGetString(luaFieldSignature); v.Type() == lua.LTTable {
		config.Signature = extractSignature(v.(*lua.LTable))
	}

	if v := table.RawGetString(luaFieldProfiles); v.Type() == lua.LTTable {
		profiles, err := extractProfiles(v.(*lua.LTable))
		if err != nil {
			return nil, err
		}
		config.Profiles = profiles
	}

	if err := config.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return config, nil
}

func extractSignature(table *lua.LTable) *SignatureConfig {
	sig := &SignatureConfig{}

	if v := table.RawGetString(luaFieldSigKey); v.Type() == lua.LTString {
		sig.Key = v.String()
	}
	if v := table.RawGetString(luaFieldSigURL); v.Type() == lua.LTString {
		sig.URL = v.String()
	}

	return sig
}

// extractProfiles extracts the profiles map from a Lua table. A config
// that defines profiles replaces the implicit default profile entirely.
func extractProfiles(table *lua.LTable) (map[string]Profile, error) {
	profiles := make(map[string]Profile)
	var extractErr error

	table.ForEach(func(key, value lua.LValue) {
		if extractErr != nil {
			return
		}

		if key.Type() != lua.LTString {
			extractErr = &ParseError{
				Message: "invalid profile name",
				Detail:  fmt.Sprintf("profile keys must be strings, got %s", key.Type()),
			}
			return
		}

		if value.Type() != lua.LTTable {
			extractErr = &ParseError{
				Message: fmt.Sprintf("invalid profile %q", key.String()),
				Detail:  fmt.Sprintf("expected table, got %s", value.Type()),
			}
			return
		}

		profile, err := extractProfile(key.String(), value.(*lua.LTable))
		if err != nil {
			extractErr = err
			return
		}
		profiles[profile.Name] = profile
	})

	if extractErr != nil {
		return nil, extractErr
	}

	if len(profiles) == 0 {
		profiles[DefaultProfileName] = Profile{Name: DefaultProfileName}
	}

	return profiles, nil
}

func extractProfile(name string, table *lua.LTable) (Profile, error) {
	profile := Profile{Name: name}

	if v := table.RawGetString(luaFieldArgs); v.Type() == lua.LTTable {
		profile.Args = extractArgs(v.(*lua.LTable))
	}

	if v := table.RawGetString(luaFieldCd); v.Type() == lua.LTString {
		profile.Dir = v.String()
	}

	if v := table.RawGetString(luaFieldEnv); v.Type() == lua.LTTable {
		profile.Env = extractEnv(v.(*lua.LTable))
	}

	if v := table.RawGetString(luaFieldVersion); v.Type() == lua.LTString {
		profile.Version = v.String()
	}

	return profile, nil
}

// extractArgs extracts an ordered argument list, skipping nil holes left
// by platform conditionals like: platform.when(platform.is_linux, "--flag")
func extractArgs(table *lua.LTable) []string {
	var args []string

	table.ForEach(func(key, value lua.LValue) {
		if value.Type() != lua.LTString {
			return
		}
		args = append(args, value.String())
	})

	return args
}

func extractEnv(table *lua.LTable) map[string]string {
	env := make(map[string]string)

	table.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}
		switch value.Type() {
		case lua.LTString, lua.LTNumber:
			env[key.String()] = value.String()
		}
	})

	return env
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	if parseErr, ok := err.(*ParseError); ok {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
