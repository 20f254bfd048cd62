// Command pjHinterp applies helical linear interpolation or half-scan
// feathering to a projection file in place.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/cliio"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/ctserr"
)

func main() {
	app := &cli.App{
		Name:  "pjHinterp",
		Usage: "helical rebin or half-scan feather a projection file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true},
			&cli.StringFlag{Name: "op", Required: true, Usage: "helical, feather"},
			&cli.IntFlag{Name: "interp-view", Usage: "helical: blend weight toward the opposite view, as interp-view/nview"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pjHinterp:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	proj, err := cliio.ReadProjections(c.String("in"))
	if err != nil {
		return err
	}
	var calcTime float64
	switch c.String("op") {
	case "helical":
		calcTime, err = cliio.Timed(func() error { return proj.Helical180LI(c.Int("interp-view")) })
	case "feather":
		calcTime, err = cliio.Timed(func() error { return proj.HalfScanFeather() })
	default:
		return ctserr.Invalid("unknown --op %q", c.String("op"))
	}
	if err != nil {
		return err
	}
	return cliio.WriteProjections(c.String("out"), proj, "pjHinterp: "+c.String("op")+" of "+c.String("in"), calcTime)
}
