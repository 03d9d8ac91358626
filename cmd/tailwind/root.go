package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/RobinBoers/tailwind/internal/binary"
	"github.com/RobinBoers/tailwind/internal/config"
	"github.com/RobinBoers/tailwind/internal/platform"
)

var (
	configFlag  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "tailwind",
	Short: "Download, pin, and run the standalone tailwindcss CLI",
	Long: `tailwind wraps the standalone tailwindcss binary so projects never
need a Node.js toolchain. It picks the right release for the host
platform, installs the version pinned in tailwind.lua, and runs it
with per-profile arguments and environment.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to tailwind.lua (default: ./tailwind.lua, or $TAILWIND_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(targetCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger honoring --verbose.
func newLogger() hclog.Logger {
	level := hclog.Info
	if verboseFlag {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "tailwind",
		Level:  level,
		Output: os.Stderr,
	})
}

// configPath resolves which config file to read: the --config flag,
// then $TAILWIND_CONFIG, then tailwind.lua in the working directory.
func configPath() string {
	if configFlag != "" {
		return configFlag
	}
	if env := os.Getenv("TAILWIND_CONFIG"); env != "" {
		return env
	}
	return config.DefaultFileName
}

// loadConfig parses the config file against the detected platform. A
// missing file yields the defaults, so every command works in an
// unconfigured project. $TAILWIND_PATH overrides the binary path for
// one-off runs against a system binary.
func loadConfig(ctx context.Context) (*config.Config, *platform.Info, error) {
	detector := platform.NewDetector()
	info, err := detector.Detect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("detect platform: %w", err)
	}

	parser := config.NewParser(detector)
	cfg, err := parser.ParseFile(ctx, configPath())
	if err != nil {
		return nil, nil, fmt.Errorf("%s", config.FormatError(err, verboseFlag))
	}

	if path := os.Getenv("TAILWIND_PATH"); path != "" {
		cfg.Path = path
	}

	return cfg, info, nil
}

// newManager wires the config and platform into a binary manager.
func newManager(ctx context.Context, logger hclog.Logger) (*binary.Manager, *config.Config, error) {
	cfg, info, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	mgr, err := binary.NewManager(binary.ManagerConfig{
		Config:   cfg,
		Platform: info,
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, err
	}

	return mgr, cfg, nil
}
