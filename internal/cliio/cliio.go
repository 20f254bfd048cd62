// Package cliio holds the file-opening, history-labeling, and phantom
// file reading helpers shared by every cmd/* tool, so each tool's main.go
// stays a thin urfave/cli wiring layer over the internal/* packages.
package cliio

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/array2d"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/image"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/phantom"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/projections"
)

// ReadImage opens and decodes an Array2dFile from path.
func ReadImage(path string) (*array2d.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return array2d.Read(bufio.NewReader(f))
}

// WriteImage encodes file to path, stamping a history label first.
func WriteImage(path string, file *array2d.File, remark string, calcTime float64) error {
	file.AddLabel(array2d.NewHistoryLabel(remark, calcTime, time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := file.Write(w); err != nil {
		return err
	}
	return w.Flush()
}

// ReadImageFile is ReadImage wrapped as an image.ImageFile, for tools
// that need arithmetic/statistics rather than raw header access.
func ReadImageFile(path string) (*image.ImageFile, error) {
	f, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return &image.ImageFile{File: f}, nil
}

// ReadProjections opens and decodes a Projections file from path.
func ReadProjections(path string) (*projections.Projections, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return projections.Read(bufio.NewReader(f))
}

// WriteProjections encodes p to path, recording remark/calcTime.
func WriteProjections(path string, p *projections.Projections, remark string, calcTime float64) error {
	p.Remark = remark
	p.CalcTime = calcTime
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := p.Write(w); err != nil {
		return err
	}
	return w.Flush()
}

// LoadPhantom resolves name either against the three built-in phantoms
// ("shepplogan", "herman", "unitpulse") or, failing that, as a path to a
// phantom definition file (SPEC_FULL.md 4.1).
func LoadPhantom(name string) (*phantom.Phantom, error) {
	if p, err := phantom.NewByName(name); err == nil {
		return p, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%s is neither a known phantom name nor a readable file: %w", name, err)
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return phantom.FromDefinition(lines)
}

// Timed runs fn and returns its wall-clock duration in seconds, the unit
// Array2dFile/Projections labels record calcTime in.
func Timed(fn func() error) (float64, error) {
	start := time.Now()
	err := fn()
	return time.Since(start).Seconds(), err
}
