// Command linogram scans a phantom using the linogram geometry, which
// sweeps tan(view angle) linearly rather than the angle itself.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/cliio"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/projections"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/scanner"
)

func main() {
	app := &cli.App{
		Name:  "linogram",
		Usage: "scan a phantom into a linogram-geometry projection file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "phantom", Aliases: []string{"p"}, Value: "shepplogan"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true},
			&cli.IntFlag{Name: "ndet", Value: 367},
			&cli.IntFlag{Name: "nview", Value: 320, Usage: "split evenly across the two quadrant passes"},
			&cli.IntFlag{Name: "nsample", Value: 1},
			&cli.Float64Flag{Name: "view-ratio", Value: 1.0},
			&cli.Float64Flag{Name: "scan-ratio", Value: 1.0},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "linogram:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	phm, err := cliio.LoadPhantom(c.String("phantom"))
	if err != nil {
		return err
	}
	s, err := scanner.New(phm, "linogram", c.Int("ndet"), c.Int("nview"), 0, c.Int("nsample"),
		0, 0, 0, c.Float64("view-ratio"), c.Float64("scan-ratio"))
	if err != nil {
		return err
	}
	var proj *projections.Projections
	calcTime, err := cliio.Timed(func() error {
		proj = projections.Collect(s, phm)
		return nil
	})
	if err != nil {
		return err
	}
	return cliio.WriteProjections(c.String("out"), proj, "linogram: scanned phantom "+c.String("phantom"), calcTime)
}
