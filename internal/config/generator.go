package config

import (
	"fmt"
	"os"
)

// starterConfig is the commented config written by `tailwind init`.
// It documents every supported key without enabling anything beyond a
// bare default profile.
const starterConfig = `-- tailwind.lua
--
-- Configuration for the tailwind wrapper. Everything here is optional;
-- deleting this file falls back to a single empty "default" profile and
-- the compiled-in latest tailwindcss version.
--
-- A read-only ` + "`platform`" + ` table is available for conditionals:
--   platform.os, platform.arch, platform.abi, platform.word_size
--   platform.is_linux, platform.is_macos, platform.is_windows,
--   platform.is_musl, platform.when(cond, value)

tailwind = {
  -- Pin the tailwindcss release to download and run.
  -- version = "4.0.9",

  -- Warn at startup when the installed binary reports a different
  -- version than configured (default: true).
  -- version_check = true,

  -- Use an existing executable instead of the managed install.
  -- path = "/usr/local/bin/tailwindcss",

  -- Override the detected release target.
  -- target = "linux-x64-musl",

  -- Alternate release server. Both placeholders are required.
  -- base_url = "https://example.com/releases/v$version/tailwindcss-$target",

  profiles = {
    default = {
      args = {
        "--input=css/app.css",
        "--output=../priv/static/assets/app.css",
      },
      cd = "assets",
      -- env = { TAILWIND_MODE = "watch" },
      -- version = "4.1.0",
    },
  },
}
`

// WriteStarterConfig writes the commented starter config to path.
// It refuses to overwrite an existing file unless force is set.
func WriteStarterConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
