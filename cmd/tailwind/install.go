package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var installIfMissingFlag bool

var installCmd = &cobra.Command{
	Use:   "install [profile]",
	Short: "Download and install the pinned tailwindcss binary",
	Long: `Download the tailwindcss release for the resolved target and version
and install it under _build/. Without a profile argument the default
profile's version is installed. An existing binary is replaced unless
--if-missing is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := defaultProfileArg(args)
		logger := newLogger()

		mgr, cfg, err := newManager(cmd.Context(), logger)
		if err != nil {
			return err
		}

		if cfg.Path != "" {
			return fmt.Errorf("config sets an explicit path (%s); nothing to install", cfg.Path)
		}

		if installIfMissingFlag {
			path, err := mgr.EnsureInstalled(cmd.Context(), profile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", path)
			return nil
		}

		if err := mgr.Install(cmd.Context(), profile); err != nil {
			return err
		}

		path, err := mgr.BinPath(profile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", path)
		return nil
	},
}

func init() {
	installCmd.Flags().BoolVar(&installIfMissingFlag, "if-missing", false, "skip the download when the binary is already installed")
}

func defaultProfileArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "default"
}
