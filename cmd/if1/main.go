// Command if1 applies a unary operation (arithmetic, Fourier transform,
// rescale, or summary statistics) to one image file.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/cliio"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/ctserr"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/image"
)

func main() {
	app := &cli.App{
		Name:  "if1",
		Usage: "unary image operation",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "required unless --op=stats"},
			&cli.StringFlag{Name: "op", Required: true, Usage: "sqrt,log,exp,square,invert,magnitude,phase,real,imaginary,fft,ifft,scaleimage,stats"},
			&cli.IntFlag{Name: "newnx", Usage: "scaleimage target width"},
			&cli.IntFlag{Name: "newny", Usage: "scaleimage target height"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "if1:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	im, err := cliio.ReadImageFile(c.String("in"))
	if err != nil {
		return err
	}

	if c.String("op") == "stats" {
		fmt.Printf("min=%v max=%v mean=%v stddev=%v median=%v mode=%v\n",
			im.Min(), im.Max(), im.Mean(), im.StdDev(), im.Median(), im.Mode(256))
		return nil
	}

	out, err := applyOp(im, c)
	if err != nil {
		return err
	}
	outPath := c.String("out")
	if outPath == "" {
		return ctserr.Invalid("--out is required unless --op=stats")
	}
	return cliio.WriteImage(outPath, out.File, "if1: "+c.String("op")+" of "+c.String("in"), 0)
}

func applyOp(im *image.ImageFile, c *cli.Context) (*image.ImageFile, error) {
	switch c.String("op") {
	case "sqrt":
		return im.Sqrt(), nil
	case "log":
		return im.Log(), nil
	case "exp":
		return im.Exp(), nil
	case "square":
		return im.Square(), nil
	case "invert":
		return im.Invert(), nil
	case "magnitude":
		return im.Magnitude(), nil
	case "phase":
		return im.Phase(), nil
	case "real":
		return im.RealPart(), nil
	case "imaginary":
		return im.ImagPart(), nil
	case "fft":
		im.FFT2D()
		return im, nil
	case "ifft":
		im.IFFT2D()
		return im, nil
	case "scaleimage":
		newNX, newNY := c.Int("newnx"), c.Int("newny")
		if newNX < 1 || newNY < 1 {
			return nil, ctserr.Invalid("--newnx and --newny must both be >= 1 for scaleimage")
		}
		return im.ScaleImage(newNX, newNY)
	default:
		return nil, ctserr.Invalid("unknown --op %q", c.String("op"))
	}
}
