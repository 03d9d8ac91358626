// Package config provides Lua configuration parsing, generation, and
// lookup for the tailwind wrapper.
//
// Configuration lives in a single tailwind.lua file that defines a
// global "tailwind" table with optional global settings (version, path,
// target, base_url, integrity options) and a set of named profiles, each
// carrying CLI arguments, a working directory, environment overrides,
// and an optional version override. Configs execute in a sandboxed
// gopher-lua VM with a read-only platform table injected so profiles can
// branch on OS, architecture, and ABI.
//
// A Config is constructed once at startup and read-only afterwards;
// components receive it by reference and never consult globals.
package config
