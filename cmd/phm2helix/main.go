// Command phm2helix scans a phantom the way phm2pj does, then stamps
// each view with a linearly advancing table position, producing a
// helical-trajectory projection file for Helical180LI to interpolate.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/cliio"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/projections"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/scanner"
)

func main() {
	app := &cli.App{
		Name:  "phm2helix",
		Usage: "scan a phantom along a helical trajectory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "phantom", Aliases: []string{"p"}, Value: "shepplogan"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true},
			&cli.StringFlag{Name: "geometry", Value: "equiangular", Usage: "equilinear or equiangular (helical scans are fan-beam)"},
			&cli.IntFlag{Name: "ndet", Value: 367},
			&cli.IntFlag{Name: "nview", Value: 320},
			&cli.IntFlag{Name: "nsample", Value: 1},
			&cli.Float64Flag{Name: "rot", Value: 2 * math.Pi, Usage: "total rotation angle in radians"},
			&cli.Float64Flag{Name: "focal-length-ratio", Value: 2.0},
			&cli.Float64Flag{Name: "center-detector-ratio", Value: 2.0},
			&cli.Float64Flag{Name: "view-ratio", Value: 1.0},
			&cli.Float64Flag{Name: "scan-ratio", Value: 1.0},
			&cli.Float64Flag{Name: "pitch", Value: 1.0, Usage: "table advance per full rotation, in phantom units"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "phm2helix:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	phm, err := cliio.LoadPhantom(c.String("phantom"))
	if err != nil {
		return err
	}
	s, err := scanner.New(phm, c.String("geometry"), c.Int("ndet"), c.Int("nview"), 0, c.Int("nsample"),
		c.Float64("rot"), c.Float64("focal-length-ratio"), c.Float64("center-detector-ratio"), c.Float64("view-ratio"), c.Float64("scan-ratio"))
	if err != nil {
		return err
	}

	pitch := c.Float64("pitch")

	var proj *projections.Projections
	calcTime, err := cliio.Timed(func() error {
		proj = projections.Collect(s, phm)
		proj.ZOffsets = make([]float64, proj.NView)
		for v := 0; v < proj.NView; v++ {
			revolutions := proj.ViewAngles[v] / (2 * math.Pi)
			proj.ZOffsets[v] = pitch * revolutions
		}
		return nil
	})
	if err != nil {
		return err
	}
	return cliio.WriteProjections(c.String("out"), proj, fmt.Sprintf("phm2helix: helical scan of %s, pitch=%v", c.String("phantom"), pitch), calcTime)
}
