package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oukeidos/quickpaths/internal/crash"
	"github.com/oukeidos/quickpaths/internal/version"
)

type rootOptions struct {
	install      bool
	uninstall    bool
	purge        bool
	debug        bool
	dataDir      string
	restartCount int

	exitCode int
}

// Replaced in tests.
var (
	runWidget    = runApp
	runInstall   = installApp
	runUninstall = uninstallApp
)

func execute(args []string) int {
	opts := &rootOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return crash.ExitRunFailure
	}
	return opts.exitCode
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quickpaths",
		Short: "Floating dot with a list of favorite folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.purge && !opts.uninstall {
				return fmt.Errorf("--purge requires --uninstall")
			}
			switch {
			case opts.install:
				return runInstall(cmd, opts)
			case opts.uninstall:
				return runUninstall(cmd, opts)
			}
			opts.exitCode = runWidget(opts)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Version = version.Info()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetUsageTemplate(rootUsageTemplate)

	flags := cmd.Flags()
	flags.BoolVar(&opts.install, "install", false, "Register automatic start at login and launch the widget")
	flags.BoolVar(&opts.uninstall, "uninstall", false, "Remove automatic start and stop running instances")
	flags.BoolVar(&opts.purge, "purge", false, "With --uninstall, delete saved favorites and window settings without asking")
	flags.BoolVar(&opts.debug, "debug", false, "Write debug-level records to the log")
	flags.StringVar(&opts.dataDir, "data-dir", "", "Directory for paths.json, config.json and the log (default: next to the executable)")
	flags.IntVar(&opts.restartCount, crash.RestartFlag, 0, "Restart attempt number")
	_ = flags.MarkHidden(crash.RestartFlag)
	cmd.SetGlobalNormalizationFunc(lowerFlagName)
	cmd.MarkFlagsMutuallyExclusive("install", "uninstall")

	return cmd
}

func lowerFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ToLower(name))
}

func executablePath() string {
	exe, err := os.Executable()
	if err != nil {
		return os.Args[0]
	}
	return exe
}
