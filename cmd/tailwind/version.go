package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RobinBoers/tailwind/internal/binary"
)

var versionCmd = &cobra.Command{
	Use:   "version [profile]",
	Short: "Show wrapper, pinned, and installed versions",
	Long: `Show the wrapper's own version, the tailwindcss version pinned for
the profile, and the version the installed binary reports about
itself, when one is installed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := defaultProfileArg(args)
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "tailwind %s\n", Version)

		mgr, _, err := newManager(cmd.Context(), newLogger())
		if err != nil {
			return err
		}

		pinned, err := mgr.Version(profile)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "pinned:    tailwindcss v%s\n", pinned)

		path, err := mgr.BinPath(profile)
		if err != nil {
			return err
		}

		installed, err := binary.InstalledVersion(cmd.Context(), path)
		if err != nil {
			fmt.Fprintf(out, "installed: (not installed at %s)\n", path)
			return nil
		}
		fmt.Fprintf(out, "installed: tailwindcss v%s\n", installed)
		return nil
	},
}
