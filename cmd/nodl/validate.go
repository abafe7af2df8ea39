package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/andaru/nodl"
	"github.com/andaru/nodl/index"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func validateCmd(v *viper.Viper) *cobra.Command {
	var printNodes bool
	cmd := &cobra.Command{
		Use:   "validate [FILE...]",
		Short: "Validate NoDL documents",
		Long: `Validate NoDL documents, by default every *` + index.FileExtension + ` file in the
working directory. Validation stops at the first invalid document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

			paths := args
			if len(paths) == 0 {
				if paths, err = filepath.Glob("*" + index.FileExtension); err != nil {
					return errors.WithStack(err)
				}
				glog.V(1).Infof("validating %d files from the working directory", len(paths))
			}
			if len(paths) == 0 {
				fmt.Fprintln(stderr, "No files to validate")
				return errReported
			}

			for _, path := range paths {
				if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
					fmt.Fprintf(stderr, "%s is not a file\n", path)
					return errReported
				}
				fmt.Fprintf(stdout, "Validating %s...\n", path)
				nodes, err := nodl.Parse(path)
				if err != nil {
					fmt.Fprintf(stderr, "Failed to parse %s\n%v\n", path, err)
					return errReported
				}
				fmt.Fprintln(stdout, "  Success")
				if printNodes {
					if err := render(stdout, cfg.Output, nodes); err != nil {
						return err
					}
				}
			}
			fmt.Fprintln(stdout, "All files validated")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&printNodes, "print", "p", false, "print parsed nodes")
	return cmd
}
