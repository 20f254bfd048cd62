// Command phm2pj scans a phantom through a simulated CT geometry and
// writes the resulting sinogram as a Projections file.
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
		Name:  "phm2pj",
		Usage: "scan a phantom into a projection (sinogram) file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "phantom", Aliases: []string{"p"}, Value: "shepplogan"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true},
			&cli.StringFlag{Name: "geometry", Value: "parallel", Usage: "parallel, equilinear, equiangular, or linogram"},
			&cli.IntFlag{Name: "ndet", Value: 367},
			&cli.IntFlag{Name: "nview", Value: 320},
			&cli.IntFlag{Name: "offset-view", Value: 0},
			&cli.IntFlag{Name: "nsample", Value: 1},
			&cli.Float64Flag{Name: "rot", Value: math.Pi, Usage: "total rotation angle in radians"},
			&cli.Float64Flag{Name: "focal-length-ratio", Value: 2.0},
			&cli.Float64Flag{Name: "center-detector-ratio", Value: 2.0},
			&cli.Float64Flag{Name: "view-ratio", Value: 1.0},
			&cli.Float64Flag{Name: "scan-ratio", Value: 1.0},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "phm2pj:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	p, err := cliio.LoadPhantom(c.String("phantom"))
	if err != nil {
		return err
	}
	s, err := scanner.New(p, c.String("geometry"), c.Int("ndet"), c.Int("nview"), c.Int("offset-view"), c.Int("nsample"),
		c.Float64("rot"), c.Float64("focal-length-ratio"), c.Float64("center-detector-ratio"), c.Float64("view-ratio"), c.Float64("scan-ratio"))
	if err != nil {
		return err
	}
	var proj *projections.Projections
	calcTime, err := cliio.Timed(func() error {
		proj = projections.Collect(s, p)
		return nil
	})
	if err != nil {
		return err
	}
	return cliio.WriteProjections(c.String("out"), proj, "phm2pj: scanned phantom "+c.String("phantom"), calcTime)
}
