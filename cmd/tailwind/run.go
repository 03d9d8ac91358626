package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/RobinBoers/tailwind/internal/runner"
)

var runCmd = &cobra.Command{
	Use:   "run [profile] [-- args...]",
	Short: "Run tailwindcss with a profile's arguments",
	Long: `Run the installed tailwindcss binary with the named profile's
arguments and environment, installing it first when missing. Extra
arguments after -- are appended to the profile's. The child's exit
code becomes this command's exit code.

Examples:
  tailwind run
  tailwind run default -- --watch
  tailwind run minified`,
	Args: func(cmd *cobra.Command, args []string) error {
		// Everything after -- belongs to tailwindcss; at most one
		// positional argument (the profile) is ours.
		if cmd.ArgsLenAtDash() >= 0 {
			args = args[:cmd.ArgsLenAtDash()]
		}
		return cobra.MaximumNArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		extraArgs := []string{}
		if at := cmd.ArgsLenAtDash(); at >= 0 {
			extraArgs = args[at:]
			args = args[:at]
		}
		profileName := defaultProfileArg(args)

		logger := newLogger()
		mgr, cfg, err := newManager(cmd.Context(), logger)
		if err != nil {
			return err
		}

		profile, err := cfg.Profile(profileName)
		if err != nil {
			return err
		}

		binPath, err := mgr.EnsureInstalled(cmd.Context(), profileName)
		if err != nil {
			return err
		}

		mgr.CheckDrift(cmd.Context(), profileName, binPath)

		code, err := runner.New(logger, os.Stdout).Run(binPath, profile, extraArgs)
		if err != nil {
			return err
		}
		if code != 0 {
			os.Exit(code)
		}
		return nil
	},
}
