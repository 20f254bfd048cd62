// Command phm2if rasterizes a phantom definition onto a pixel grid and
// writes it as an Array2dFile image.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/cliio"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/image"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/phantom"
)

func main() {
	app := &cli.App{
		Name:  "phm2if",
		Usage: "rasterize a phantom into an image file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "phantom", Aliases: []string{"p"}, Value: "shepplogan", Usage: "shepplogan, herman, unitpulse, or a phantom definition file"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "output image file"},
			&cli.IntFlag{Name: "nx", Value: 256},
			&cli.IntFlag{Name: "ny", Value: 256},
			&cli.Float64Flag{Name: "view-ratio", Value: 1.0, Usage: "rasterized field of view as a fraction of the phantom's bounding circle"},
			&cli.IntFlag{Name: "nsample", Value: 1, Usage: "subsamples per pixel per axis"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "phm2if:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	p, err := cliio.LoadPhantom(c.String("phantom"))
	if err != nil {
		return err
	}
	im, err := image.New(c.Int("nx"), c.Int("ny"), false)
	if err != nil {
		return err
	}
	calcTime, err := cliio.Timed(func() error {
		return phantom.Rasterize(p, im.File, c.Float64("view-ratio"), c.Int("nsample"))
	})
	if err != nil {
		return err
	}
	return cliio.WriteImage(c.String("out"), im.File, "phm2if: rasterized phantom "+c.String("phantom"), calcTime)
}
