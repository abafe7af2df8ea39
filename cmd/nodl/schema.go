package main

import (
	"github.com/andaru/nodl/schema"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var schemaFiles = map[string]string{
	"interface": schema.InterfaceFile,
	"v1":        schema.V1File,
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [interface|v1]",
		Short:     "Print a bundled XML schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"interface", "v1"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "v1"
			if len(args) > 0 {
				name = args[0]
			}
			b, err := schema.Source(schemaFiles[name])
			if err != nil {
				return errors.WithStack(err)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
