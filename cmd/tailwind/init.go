package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RobinBoers/tailwind/internal/config"
)

var initForceFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter tailwind.lua",
	Long: `Write a commented starter tailwind.lua into the current directory
(or the path given with --config). The generated file pins no version
and defines a single default profile, ready to edit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if err := config.WriteStarterConfig(path, initForceFlag); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "overwrite an existing config file")
}
