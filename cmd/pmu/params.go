package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List the effective parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadParams(cmd)
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range p.Names() {
			v, _ := p.Get(name)
			fmt.Fprintf(tw, "%s\t%s\n", name, v)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}
