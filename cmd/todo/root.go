package main

import (
	"github.com/spf13/cobra"

	"github.com/zeusync/jecs/internal/config"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Todo list driven by an entity-component-system tick engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	load := func() (*config.Config, error) {
		return config.Load(configPath)
	}
	root.AddCommand(
		NewServeCmd(load),
		NewReplCmd(load),
	)
	return root
}
