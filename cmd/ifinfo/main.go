// Command ifinfo prints an Array2dFile's header fields and label history.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/cliio"
)

func main() {
	app := &cli.App{
		Name:  "ifinfo",
		Usage: "print an image file's header and label history",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ifinfo:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	f, err := cliio.ReadImage(c.String("in"))
	if err != nil {
		return err
	}
	h := f.Header
	fmt.Printf("nx=%d ny=%d pixelFormat=%d pixelSize=%d dataType=%d\n", h.NX, h.NY, h.PixelFormat, h.PixelSize, h.DataType)
	if h.AxisExtentKnown != 0 {
		fmt.Printf("extent: x=[%v,%v] y=[%v,%v]\n", h.MinX, h.MaxX, h.MinY, h.MaxY)
	}
	if h.AxisIncrementKnown != 0 {
		fmt.Printf("increment: x=%v y=%v\n", h.AxisIncrementX, h.AxisIncrementY)
	}
	fmt.Printf("labels: %d\n", len(f.Labels))
	for i, l := range f.Labels {
		fmt.Printf("  [%d] %04d-%02d-%02d %02d:%02d:%02d calcTime=%vs: %s\n",
			i, l.Year, l.Month, l.Day, l.Hour, l.Minute, l.Second, l.CalcTime, l.Text)
	}
	return nil
}
