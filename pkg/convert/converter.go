// Package convert turns dataset-specific annotation formats into COCO-style annotation files,
// one file per split (train/test/validation).
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/cyclopcam/logs"
)

var ErrMissingInput = errors.New("Missing input")
var ErrNotSupported = errors.New("Dataset type is not supported yet")
var ErrUnknownCategory = errors.New("Unknown category")
var ErrNotConverted = errors.New("Dataset has not been converted yet")

// Kind is the source dataset format
type Kind string

const (
	KindTT100K            Kind = "tt100k"
	KindCaltechPedestrian Kind = "caltech_pedestrian"
	KindKitti             Kind = "kitti"
	KindVkitti            Kind = "vkitti"
)

// AllKinds is the closed set of dataset formats that we know about
var AllKinds = []Kind{KindTT100K, KindCaltechPedestrian, KindKitti, KindVkitti}

func ParseKind(s string) (Kind, error) {
	if slices.Contains(AllKinds, Kind(s)) {
		return Kind(s), nil
	}
	return "", fmt.Errorf("Unknown dataset type '%v'. Valid types are %v", s, AllKinds)
}

// Split is the role that a partition of a dataset plays
type Split string

const (
	SplitTrain      Split = "train"
	SplitTest       Split = "test"
	SplitValidation Split = "validation"
)

// OutputFile is a COCO file produced by Convert
type OutputFile struct {
	Split    Split
	Filename string
}

type Options struct {
	// If true, objects whose category is not in the dataset's category list are skipped
	// with a warning. If false, such an object fails the conversion.
	SkipUnknownCategories bool
}

// Converter converts one dataset on disk into COCO files
type Converter interface {
	Kind() Kind

	// Convert reads the source dataset and writes one COCO file per split into the dataset's
	// root directory. Nothing is written unless every split converts successfully and every
	// output file has been staged next to its destination. The staged files are then renamed into place.
	Convert() error

	// OutputFiles returns the files written by the most recent successful Convert, in split order
	OutputFiles() []OutputFile

	// Validate loads every output file through the COCO reader and reports what it finds.
	// A failure in one file does not stop validation of the others.
	Validate() []*ValidationReport

	// CreateOverfitSubset writes a small training file with the first numImages training images,
	// which is useful for checking that a model can overfit. Returns the filename.
	CreateOverfitSubset(numImages int) (string, error)
}

// New creates a converter for the dataset at rootDir
func New(log logs.Log, kind Kind, rootDir string, options Options) (Converter, error) {
	if st, err := os.Stat(rootDir); err != nil || !st.IsDir() {
		return nil, fmt.Errorf("%w: dataset directory %v does not exist", ErrMissingInput, rootDir)
	}
	switch kind {
	case KindTT100K:
		return newTT100K(log, rootDir, options), nil
	case KindCaltechPedestrian:
		return newUnsupported(log, kind, rootDir, "caltech_original"), nil
	case KindKitti:
		return newUnsupported(log, kind, rootDir, "kitti"), nil
	case KindVkitti:
		return newUnsupported(log, kind, rootDir, "vkitti"), nil
	}
	return nil, fmt.Errorf("Unknown dataset type '%v'", kind)
}

// base holds what every converter shares: where the dataset lives, and what was written
type base struct {
	log        logs.Log
	kind       Kind
	rootDir    string
	filePrefix string // eg "tt100k" -> tt100k_train.json
	outputs    []OutputFile
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) OutputFiles() []OutputFile {
	return slices.Clone(b.outputs)
}

func (b *base) outputFilename(name string) string {
	return filepath.Join(b.rootDir, b.filePrefix+"_"+name+".json")
}

func (b *base) outputFor(split Split) (OutputFile, bool) {
	for _, o := range b.outputs {
		if o.Split == split {
			return o, true
		}
	}
	return OutputFile{}, false
}
