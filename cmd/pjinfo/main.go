// Command pjinfo prints a Projections file's header and per-view angle
// table.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/cliio"
)

func main() {
	app := &cli.App{
		Name:  "pjinfo",
		Usage: "print a projection file's header and view angles",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true},
			&cli.BoolFlag{Name: "angles", Usage: "also print every view's angle"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pjinfo:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	p, err := cliio.ReadProjections(c.String("in"))
	if err != nil {
		return err
	}
	fmt.Printf("geometry=%v ndet=%d nview=%d\n", p.Geometry, p.NDet, p.NView)
	fmt.Printf("rotStart=%v rotInc=%v detStart=%v detInc=%v\n", p.RotStart, p.RotInc, p.DetStart, p.DetInc)
	fmt.Printf("focalLength=%v sourceDetectorLength=%v viewDiameter=%v\n", p.FocalLength, p.SourceDetectorLength, p.ViewDiameter)
	fmt.Printf("calcTime=%vs remark=%q\n", p.CalcTime, p.Remark)
	if c.Bool("angles") {
		for v, a := range p.ViewAngles {
			fmt.Printf("  view %d: angle=%v\n", v, a)
		}
	}
	return nil
}
