package coco

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// BBox is [x, y, width, height], measured in pixels from the top-left image corner (0-indexed)
type BBox [4]float64

func (b BBox) X() float64      { return b[0] }
func (b BBox) Y() float64      { return b[1] }
func (b BBox) Width() float64  { return b[2] }
func (b BBox) Height() float64 { return b[3] }

func (b BBox) Area() float64 {
	return b[2] * b[3]
}

// Corners is a box in corner form, as used by the TT100K family of datasets.
// In that convention ymax is the edge that becomes our "y".
type Corners struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// ToBBox converts corner form into [x, y, width, height]
func (c Corners) ToBBox() BBox {
	return BBox{
		c.XMin,
		c.YMax,
		c.XMax - c.XMin,
		c.YMax - c.YMin,
	}
}

// ImageIDFromFileName returns the integer in front of the first '.' of the file name.
// For example "12345.jpg" -> 12345.
// Image IDs are derived from file names so that re-running a conversion produces the same IDs.
func ImageIDFromFileName(fileName string) (int64, error) {
	base := filepath.Base(fileName)
	prefix, _, _ := strings.Cut(base, ".")
	id, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("Image file name '%v' does not start with a number", fileName)
	}
	return id, nil
}
