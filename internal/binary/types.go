package binary

// ToolName is the basename of the wrapped executable family.
const ToolName = "tailwindcss"

// LatestVersion is the release installed when no version is configured.
// Bumped with wrapper releases after the new binary is exercised.
const LatestVersion = "4.0.9"

// DefaultBaseURL is the release asset URL template. $version and
// $target are substituted at download time; both are required.
const DefaultBaseURL = "https://github.com/tailwindlabs/tailwindcss/releases/download/v$version/tailwindcss-$target"

// DefaultInstallDir is the directory under the working directory where
// managed binaries are cached when no explicit path is configured.
const DefaultInstallDir = "_build"
