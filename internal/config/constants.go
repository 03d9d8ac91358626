package config

// Lua schema field names and globals
const (
	luaGlobalTailwind  = "tailwind"
	luaFieldVersion    = "version"
	luaFieldVersionChk = "version_check"
	luaFieldPath       = "path"
	luaFieldTarget     = "target"
	luaFieldBaseURL    = "base_url"
	luaFieldChecksum   = "checksum"
	luaFieldSignature  = "signature"
	luaFieldSigKey     = "key"
	luaFieldSigURL     = "url"
	luaFieldProfiles   = "profiles"
	luaFieldArgs       = "args"
	luaFieldCd         = "cd"
	luaFieldEnv        = "env"
)

// Validation limits. Generous, but they keep a runaway config from
// producing absurd process invocations.
const (
	MaxProfileCount = 64
	MaxArgCount     = 256
	MaxEnvCount     = 128
)

// DefaultProfileName is the profile used when the caller names none.
const DefaultProfileName = "default"

// DefaultFileName is the config file looked up in the working directory
// when no explicit config path is given.
const DefaultFileName = "tailwind.lua"
