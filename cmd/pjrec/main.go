// Command pjrec reconstructs an image from a projection file by filtered
// backprojection.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/cliio"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/filter"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/image"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/reconstruct"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/signal"
)

func main() {
	app := &cli.App{
		Name:  "pjrec",
		Usage: "reconstruct an image from a projection file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true},
			&cli.StringFlag{Name: "filter", Value: "abs_bandlimit", Usage: "abs_bandlimit, abs_g_hamming, abs_hanning, abs_cosine, abs_sinc, shepp, bandlimit, sinc, g_hamming, hanning, cosine, triangle"},
			&cli.Float64Flag{Name: "filter-param", Value: 1.0},
			&cli.StringFlag{Name: "filter-method", Value: "fft", Usage: "convolution, fourier, fourier-table, fft"},
			&cli.StringFlag{Name: "generation", Value: "direct", Usage: "direct, inverse-fourier"},
			&cli.IntFlag{Name: "zeropad", Value: 1},
			&cli.IntFlag{Name: "nintegral", Value: 0, Usage: "spatial-response integration points, 0 selects the default"},
			&cli.StringFlag{Name: "backproj", Value: "trig", Usage: "trig, table, diff, idiff"},
			&cli.StringFlag{Name: "interp", Value: "linear", Usage: "nearest, linear, cubic, freq-preinterpolation"},
			&cli.IntFlag{Name: "preinterpolation-factor", Value: 1},
			&cli.BoolFlag{Name: "rebin", Usage: "resample fan-beam views to parallel geometry before reconstructing"},
			&cli.IntFlag{Name: "nx", Value: 256},
			&cli.IntFlag{Name: "ny", Value: 256},
			&cli.Float64Flag{Name: "xmin", Value: -1},
			&cli.Float64Flag{Name: "xmax", Value: 1},
			&cli.Float64Flag{Name: "ymin", Value: -1},
			&cli.Float64Flag{Name: "ymax", Value: 1},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pjrec:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	proj, err := cliio.ReadProjections(c.String("in"))
	if err != nil {
		return err
	}
	filterID, err := filter.ParseID(c.String("filter"))
	if err != nil {
		return err
	}
	method, err := signal.ParseMethod(c.String("filter-method"))
	if err != nil {
		return err
	}
	generation, err := signal.ParseGeneration(c.String("generation"))
	if err != nil {
		return err
	}
	opts := reconstruct.Options{
		FilterID:     filterID,
		FilterParam:  c.Float64("filter-param"),
		FilterMethod: method,
		Generation:   generation,
		Zeropad:      c.Int("zeropad"),
		NIntegral:    c.Int("nintegral"),
		BackprojAlgo: c.String("backproj"),
		Interp:       c.String("interp"),
		InterpFactor: c.Int("preinterpolation-factor"),
		Rebin:        c.Bool("rebin"),
		NX:           c.Int("nx"), NY: c.Int("ny"),
		XMin: c.Float64("xmin"), XMax: c.Float64("xmax"),
		YMin: c.Float64("ymin"), YMax: c.Float64("ymax"),
	}
	rec, err := reconstruct.New(proj, opts)
	if err != nil {
		return err
	}
	var im *image.ImageFile
	calcTime, err := cliio.Timed(func() error {
		var runErr error
		im, runErr = rec.Run(proj)
		return runErr
	})
	if err != nil {
		return err
	}
	return cliio.WriteImage(c.String("out"), im.File, "pjrec: reconstructed from "+c.String("in"), calcTime)
}
