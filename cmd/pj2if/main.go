// Command pj2if reconstructs an image from a projection file via direct
// Fourier inversion (polar-to-cartesian resampling of each view's
// spectrum followed by a 2-D inverse FFT), distinct from pjrec's
// filtered-backprojection path.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/array2d"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/cliio"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/fourier"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/projections"
)

func main() {
	app := &cli.App{
		Name:  "pj2if",
		Usage: "reconstruct an image from a projection file via direct Fourier inversion",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true},
			&cli.IntFlag{Name: "nx", Value: 256, Usage: "must be a power of two"},
			&cli.IntFlag{Name: "ny", Value: 256, Usage: "must be a power of two"},
			&cli.IntFlag{Name: "zeropad", Value: 1},
			&cli.Float64Flag{Name: "extent", Value: 2.0, Usage: "frequency-domain grid span"},
			&cli.StringFlag{Name: "interp", Value: "bilinear", Usage: "nearest, bilinear"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pj2if:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	proj, err := cliio.ReadProjections(c.String("in"))
	if err != nil {
		return err
	}
	interp := projections.PolarBilinear
	if c.String("interp") == "nearest" {
		interp = projections.PolarNearest
	}
	nx, ny := c.Int("nx"), c.Int("ny")

	var img *array2d.File
	calcTime, err := cliio.Timed(func() error {
		plane, err := proj.ConvertFFTPolar(nx, ny, c.Int("zeropad"), c.Float64("extent"), interp)
		if err != nil {
			return err
		}
		plane.ShuffleNaturalToFourier2D()
		for ix := 0; ix < plane.NX; ix++ {
			plane.SetColumn(ix, fourier.IFFT(plane.Column(ix)))
		}
		for iy := 0; iy < plane.NY; iy++ {
			plane.SetRow(iy, fourier.IFFT(plane.Row(iy)))
		}
		plane.ShuffleFourierToNatural2D()

		img, err = array2d.New(nx, ny, false, array2d.PixelFloat64, 8)
		if err != nil {
			return err
		}
		for i, v := range plane.Data {
			img.Real[i] = real(v)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return cliio.WriteImage(c.String("out"), img, "pj2if: direct Fourier reconstruction from "+c.String("in"), calcTime)
}
