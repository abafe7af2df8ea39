// Command nodl shows and validates NoDL documents.
//
//	nodl show PACKAGE [EXECUTABLE...]
//	nodl validate [FILE...] [-p]
//	nodl schema [interface|v1]
//
// Packages are looked up in the prefixes listed by AMENT_PREFIX_PATH,
// or --prefix-path. Flags may also be set from NODL_ prefixed
// environment variables, e.g. NODL_OUTPUT=yaml.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andaru/nodl/index"
	"github.com/go-playground/validator/v10"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	defer glog.Flush()

	root := newRootCmd(viper.New(), stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(stderr, "error:", err)
		}
		return 1
	}
	return 0
}

// errReported is returned by commands which already wrote their
// diagnostics to stderr.
var errReported = errors.New("reported")

// Config is the command line configuration.
type Config struct {
	Output     string   `validate:"oneof=pretty json yaml table"`
	PrefixPath []string `validate:"dive,required"`
}

var validate = validator.New()

func loadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Output:     v.GetString("output"),
		PrefixPath: index.SplitPrefixPath(v.GetString("prefix-path")),
	}
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Output" {
			return cfg, errors.Errorf("invalid output format %q: must be one of pretty, json, yaml, table", cfg.Output)
		}
		return cfg, errors.Wrap(err, "invalid configuration")
	}
	glog.V(1).Infof("config: %+v", cfg)
	return cfg, nil
}

func newRootCmd(v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "nodl",
		Short:         "Access node interface descriptions exported from packages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	v.SetEnvPrefix("NODL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := root.PersistentFlags()
	flags.StringP("output", "o", "pretty", "output format: pretty, json, yaml or table")
	flags.String("prefix-path", "", "package install prefixes, "+index.PrefixPathEnv+" format")
	flags.AddGoFlagSet(flag.CommandLine)
	_ = v.BindPFlag("output", flags.Lookup("output"))
	_ = v.BindPFlag("prefix-path", flags.Lookup("prefix-path"))
	_ = v.BindEnv("prefix-path", "NODL_PREFIX_PATH", index.PrefixPathEnv)

	root.AddCommand(showCmd(v))
	root.AddCommand(validateCmd(v))
	root.AddCommand(schemaCmd())
	return root
}
