package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/MartinBloedorn/pmu/params"
	"github.com/spf13/cobra"
)

const defaultConf = "pmu.conf"

var rootCmd = &cobra.Command{
	Use:   "pmu",
	Short: "PCB milling utility",
	Long: `pmu plans probing grids that avoid drilled holes and levels
milling G-code against a probed heightmap.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("conf", defaultConf, "Parameter file (conf or YAML).")
	rootCmd.PersistentFlags().StringArray("set", nil, "Override a parameter, as name=value. May be repeated.")
}

// loadParams reads the parameter file and applies --set overrides. A
// missing default file is not an error.
func loadParams(cmd *cobra.Command) (params.Params, error) {
	path, _ := cmd.Flags().GetString("conf")
	sets, _ := cmd.Flags().GetStringArray("set")

	p, err := params.Load(path)
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("conf") {
		p, err = params.Default(), nil
	}
	if err != nil {
		return p, err
	}

	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return p, fmt.Errorf("--set %q: expected name=value", s)
		}
		err = p.Set(name, value)
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

// pathArg returns args[i] if present, else the named extra parameter.
func pathArg(args []string, i int, p params.Params, extra string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	if v, ok := p.Extra[extra]; ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("no file given and %s is not set", extra)
}
