// Command if2 applies a binary operation, or comparative statistics,
// across a pair of image files.
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
		Name:  "if2",
		Usage: "binary image operation or comparative statistics",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in1", Required: true},
			&cli.StringFlag{Name: "in2", Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "required unless --op=comparativestatistics"},
			&cli.StringFlag{Name: "op", Required: true, Usage: "add,sub,mul,div,comparativestatistics"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "if2:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	a, err := cliio.ReadImageFile(c.String("in1"))
	if err != nil {
		return err
	}
	b, err := cliio.ReadImageFile(c.String("in2"))
	if err != nil {
		return err
	}

	if c.String("op") == "comparativestatistics" {
		stats, err := a.ComparativeStatistics(b)
		if err != nil {
			return err
		}
		fmt.Printf("correlation=%v rmse=%v maxabsdiff=%v\n", stats.Correlation, stats.RMSE, stats.MaxAbsDiff)
		return nil
	}

	out, err := applyOp(a, b, c.String("op"))
	if err != nil {
		return err
	}
	outPath := c.String("out")
	if outPath == "" {
		return ctserr.Invalid("--out is required unless --op=comparativestatistics")
	}
	return cliio.WriteImage(outPath, out.File, "if2: "+c.String("op")+" of "+c.String("in1")+" and "+c.String("in2"), 0)
}

func applyOp(a, b *image.ImageFile, op string) (*image.ImageFile, error) {
	switch op {
	case "add":
		return a.Add(b)
	case "sub":
		return a.Sub(b)
	case "mul":
		return a.Mul(b)
	case "div":
		return a.Div(b)
	default:
		return nil, ctserr.Invalid("unknown --op %q", op)
	}
}
