package main

import (
	"os"

	"github.com/MartinBloedorn/pmu/hmap"
	"github.com/MartinBloedorn/pmu/planner"
	"github.com/MartinBloedorn/pmu/record"
	"github.com/MartinBloedorn/pmu/view"
	"github.com/spf13/cobra"
)

var plotCmd = &cobra.Command{
	Use:   "plot [drill file]",
	Short: "Render drills and an optional probe grid",
	Args:  cobra.MaximumNArgs(1),
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

		var grid []record.GridPoint
		if gridPath, _ := cmd.Flags().GetString("grid"); gridPath != "" {
			f, err := os.Open(gridPath)
			if err != nil {
				return err
			}
			grid, err = hmap.ReadGrid(f)
			f.Close()
			if err != nil {
				return err
			}
		}

		cfg, err := planner.GridConfig(p)
		if err != nil {
			return err
		}
		showTol, _ := cmd.Flags().GetBool("tol")
		pt, err := view.Plot(drills, grid, view.Options{
			Bounds:  cfg.Bounds,
			Tol:     p.DrlTol,
			ShowTol: showTol,
			Title:   path,
		})
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		return view.Save(pt, out)
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringP("out", "o", "drills.png", "Image file to write; the extension selects the format.")
	plotCmd.Flags().String("grid", "", "Probe grid CSV to overlay.")
	plotCmd.Flags().Bool("tol", true, "Draw the drill tolerance rings.")
}
