package main

import (
	"fmt"

	"github.com/andaru/nodl/index"
	"github.com/andaru/nodl/nodlerr"
	"github.com/andaru/nodl/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func showCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "show PACKAGE [EXECUTABLE...]",
		Short: "Show the NoDL nodes of a package",
		Long: `Show the nodes described by the NoDL documents a package installs.
With executables given, only their nodes are shown; executables with no
node are reported on stderr without failing the command.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			ix := index.New(cfg.PrefixPath...)
			pkg, executables := args[0], args[1:]

			var nodes []types.Node
			if len(executables) > 0 {
				var missing []string
				if nodes, missing, err = ix.NodesByExecutables(pkg, executables); err != nil {
					return err
				}
				for _, exe := range missing {
					fmt.Fprintln(cmd.ErrOrStderr(), nodlerr.ExecutableNotFound(pkg, exe))
				}
			} else if nodes, err = ix.Nodes(pkg); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), cfg.Output, nodes)
		},
	}
}
