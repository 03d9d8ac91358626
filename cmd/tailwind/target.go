package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var targetCmd = &cobra.Command{
	Use:   "target [profile]",
	Short: "Print the resolved release target for this machine",
	Long: `Print the release target identifier that downloads would use, after
applying the config override, the detected OS, architecture, ABI, and
the musl suffix rule for the profile's pinned version.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager(cmd.Context(), newLogger())
		if err != nil {
			return err
		}

		version, err := mgr.Version(defaultProfileArg(args))
		if err != nil {
			return err
		}

		target, err := mgr.Target(version)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), target)
		return nil
	},
}
