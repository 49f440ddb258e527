// cmd/swap-manager/root.go
package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aadashti/swap-manager/internal/config"
	"github.com/aadashti/swap-manager/internal/executor"
	"github.com/aadashti/swap-manager/internal/interp"
)

var verboseFlag bool

const longHelp = `Manage swap: show, set, empty, recommend. Commands may be chained.

This tool manipulates swap devices and files: run as root (sudo). Test in
a VM or container before using on production systems.

ACTIONS:
  show                                Print the live swap table with totals
  empty                               Cycle swap off and on to reclaim fragmented pages
  set <size> [--replace] [--persist]  Create and activate a swapfile
  recommend                           Suggest a swap size for this host

USAGE EXAMPLES:
  swap-manager show
  swap-manager set 5G --replace --persist
  swap-manager set 512M show
  swap-manager set 1G --replace show empty

NOTES:
- 'set' creates a swapfile at /swap-manager.swap by default; paths can be
  overridden in /etc/swap-manager/config.yaml.
- Sizes take a K/M/G/T suffix (powers of 1024) or plain bytes.`

var rootCmd = &cobra.Command{
	Use:          "swap-manager [ACTION...]",
	Short:        "Manage swap: show, set, empty. Commands may be chained.",
	Long:         longHelp,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println("No actions provided. Try: swap-manager --help")
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		in := interp.New(executor.NewLocalExecutor(), cfg)
		return in.Run(context.Background(), args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "log every spawned command")
	// Tokens after the first action must reach the interpreter untouched,
	// including --replace and --persist.
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print swap-manager version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("swap-manager", version)
	},
}
