// Package app wires jjz's cobra command tree to the core engine, store, and
// output layer.
package app

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jjzio/jjz/pkg/config"
	"github.com/jjzio/jjz/pkg/logger"
)

var (
	jsonOutput    bool
	silentOutput  bool
	verbosity     int
	debugMode     bool
	configPath    string
	rootViper     = viper.New()
)

// NewRootCmd creates the jjz CLI's root command and its full subcommand tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "jjz",
		DisableAutoGenTag: true,
		Short:             "jjz manages parallel Jujutsu workspaces bound to zellij tabs",
		Long: `jjz manages parallel developer working contexts ("sessions"), each one binding a
Jujutsu workspace, a zellij multiplexer tab, and a persistent session record so
you can juggle several lines of work without losing track of any of them.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				logger.Errorf("error displaying help: %v", err)
			}
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger.InitializeWithDebug(debugMode || verbosity > 0)
			return loadConfigFile(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit a machine-readable JSON envelope")
	rootCmd.PersistentFlags().BoolVar(&silentOutput, "silent", false, "emit minimal tab-separated output")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: XDG config dir)")
	rootCmd.PersistentFlags().Bool("help-json", false, "describe the command tree as a single JSON envelope")

	if err := config.BindFlags(rootViper, rootCmd.PersistentFlags()); err != nil {
		logger.Errorf("error binding config flags: %v", err)
	}

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newFocusCmd())
	rootCmd.AddCommand(newDoneCmd())
	rootCmd.AddCommand(newDoctorCmd())

	rootCmd.SilenceUsage = true

	originalRunE := rootCmd.RunE
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		helpJSON, _ := cmd.Flags().GetBool("help-json")
		if helpJSON {
			return emitHelpJSON(cmd)
		}
		if originalRunE != nil {
			return originalRunE(cmd, args)
		}
		return cmd.Help()
	}

	return rootCmd
}

func loadConfigFile(_ *cobra.Command) error {
	if configPath != "" {
		rootViper.SetConfigFile(configPath)
	} else if defaultPath, err := xdg.ConfigFile("jjz/config.yaml"); err == nil {
		rootViper.SetConfigFile(defaultPath)
	}

	if err := rootViper.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
