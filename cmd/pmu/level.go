package main

import (
	"github.com/MartinBloedorn/pmu/gcode"
	"github.com/MartinBloedorn/pmu/hmap"
	"github.com/MartinBloedorn/pmu/meshlevel"
	"github.com/MartinBloedorn/pmu/planner"
	"github.com/spf13/cobra"
)

var levelCmd = &cobra.Command{
	Use:   "level [gcode file] [heightmap csv]",
	Short: "Level G-code against a probed heightmap",
	Long: `Splits the moves of a G-code file where the probed surface changes
height and offsets every emitted Z by it. Without arguments the fcu_path
and hmap_path parameters are used.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadParams(cmd)
		if err != nil {
			return err
		}
		gpath, err := pathArg(args, 0, p, "fcu_path")
		if err != nil {
			return err
		}
		hpath, err := pathArg(args, 1, p, "hmap_path")
		if err != nil {
			return err
		}

		prog, err := readProgram(gpath)
		if err != nil {
			return err
		}
		samples, err := hmap.ReadFile(hpath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("zref") {
			zref, _ := cmd.Flags().GetFloat64("zref")
			samples = meshlevel.OffsetFrom(zref, samples)
		}

		pl, err := planner.New(p)
		if err != nil {
			return err
		}
		out, err := pl.Level(prog, samples)
		if err != nil {
			return err
		}

		outPath, _ := cmd.Flags().GetString("out")
		w, err := create(outPath)
		if err != nil {
			return err
		}
		err = gcode.WriteProgram(w, out, p.Precision)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(levelCmd)
	levelCmd.Flags().StringP("out", "o", "-", "Output file for the leveled G-code.")
	levelCmd.Flags().Float64("zref", 0, "Subtract this height from every heightmap sample.")
}
