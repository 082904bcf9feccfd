package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/batben/batben/pkg/config"
	"github.com/batben/batben/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version",
		GroupID: gOther,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show or create the config file",
		GroupID: gOther,
		Long: `Show or create the config file.

The config file is JSON. Every field is optional, missing fields use the
defaults shown by 'batben config show'. Command line flags take precedence
over the config file.`,
	}

	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with all defaults",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				logrus.Errorf("%s already exists, use --force to overwrite it", configPath)
				return os.ErrExist
			}

			f := config.NewFileFromConfig(config.DefaultRawFileConfig(), configPath)
			if err := f.Save(); err != nil {
				return err
			}

			logrus.Infof("successfully wrote default config to %s", configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective config",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				conf, err := loadConfig()
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(conf.Raw())
			},
		},
		initCmd,
	)

	return cmd
}
