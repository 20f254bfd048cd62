// Command ifexport dumps an image file's real plane as CSV, one row of
// text per y-line. This is the only export format CTSim implements; PNG
// and other display formats belong to the out-of-scope GUI collaborator.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/cliio"
)

func main() {
	app := &cli.App{
		Name:  "ifexport",
		Usage: "export an image file's real plane as CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ifexport:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	f, err := cliio.ReadImage(c.String("in"))
	if err != nil {
		return err
	}
	out, err := os.Create(c.String("out"))
	if err != nil {
		return fmt.Errorf("create %s: %w", c.String("out"), err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	nx, ny := f.NX(), f.NY()
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			if ix > 0 {
				w.WriteByte(',')
			}
			w.WriteString(strconv.FormatFloat(f.At(ix, iy), 'g', -1, 64))
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}
