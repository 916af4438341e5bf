package main

import (
	"fmt"
	"log"

	"github.com/MartinBloedorn/pmu/gcode"
	"github.com/MartinBloedorn/pmu/hmap"
	"github.com/MartinBloedorn/pmu/planner"
	"github.com/MartinBloedorn/pmu/probe"
	"github.com/MartinBloedorn/pmu/view"
	"github.com/spf13/cobra"
)

var gridCmd = &cobra.Command{
	Use:   "grid [drill file]",
	Short: "Plan a probing grid that avoids drilled holes",
	Long: `Reads an Excellon (or DXF) drill file and writes the probe points
as x,y CSV. Without an argument the excellon_path parameter is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadParams(cmd)
		if err != nil {
			return err
		}
		path, err := pathArg(args, 0, p, "excellon_path")
		if err != nil {
			return err
		}
		drills, err := readDrills(path)
		if err != nil {
			return err
		}

		pl, err := planner.New(p)
		if err != nil {
			return err
		}
		grid, err := pl.GenerateGrid(drills)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		w, err := create(out)
		if err != nil {
			return err
		}
		err = hmap.WriteGrid(w, grid, p.Precision)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}

		if progPath, _ := cmd.Flags().GetString("program"); progPath != "" {
			var opt probe.Options
			opt.TravelZ, _ = cmd.Flags().GetFloat64("travel")
			opt.Depth, _ = cmd.Flags().GetFloat64("depth")
			opt.FeedRate, _ = cmd.Flags().GetFloat64("feed")
			opt.ZeroFirst, _ = cmd.Flags().GetBool("zero")
			opt.Precision = p.Precision

			prog, err := probe.Program(grid, p.ProbeTick[1], opt)
			if err != nil {
				return err
			}
			w, err := create(progPath)
			if err != nil {
				return err
			}
			err = gcode.WriteProgram(w, prog, p.Precision)
			if cerr := w.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("write probe program: %w", err)
			}
			log.Printf("Wrote probe program for %d points to %s", len(grid), progPath)
		}

		if plotPath, _ := cmd.Flags().GetString("plot"); plotPath != "" {
			cfg, _ := planner.GridConfig(p)
			pt, err := view.Plot(drills, grid, view.Options{
				Bounds:  cfg.Bounds,
				Tol:     p.DrlTol,
				ShowTol: true,
				Title:   path,
			})
			if err != nil {
				return err
			}
			err = view.Save(pt, plotPath)
			if err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(gridCmd)
	gridCmd.Flags().StringP("out", "o", "-", "Output CSV for the probe points.")
	gridCmd.Flags().String("program", "", "Also write a G38.2 probing program to this file.")
	gridCmd.Flags().Float64("travel", 2, "Travel height between probe points.")
	gridCmd.Flags().Float64("depth", -2, "Lowest Z a probe may reach.")
	gridCmd.Flags().Float64("feed", 50, "Probing feed rate.")
	gridCmd.Flags().Bool("zero", false, "Set work Z zero at the first probe point.")
	gridCmd.Flags().String("plot", "", "Also render drills and grid to this image file.")
}
