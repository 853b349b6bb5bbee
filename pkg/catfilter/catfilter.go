// Package catfilter removes categories from a COCO annotation file, for example
// categories that should be ignored during testing.
package catfilter

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cyclopcam/cococonv/pkg/coco"
	"github.com/cyclopcam/cococonv/pkg/iox"
	"github.com/cyclopcam/logs"
)

var ErrMissingFile = errors.New("File does not exist")
var ErrConflictingLists = errors.New("Specify either a remove list or a keep list, not both")
var ErrNoList = errors.New("You have to specify either a remove list or a keep list")

// OutputSuffix is appended to the input's base name to form the output filename
const OutputSuffix = "_ignore"

type Mode int

const (
	ModeRemove Mode = iota // Keep everything except the named categories
	ModeKeep               // Keep only the named categories
)

// Options selects the category list. Exactly one of the two files must be set.
// Each file holds comma-separated category names.
type Options struct {
	RemoveFile string
	KeepFile   string
}

// OutputFilename returns the filename that Run writes for the given input
func OutputFilename(inputFile string) string {
	return strings.TrimSuffix(inputFile, filepath.Ext(inputFile)) + OutputSuffix + ".json"
}

// Run filters inputFile and writes the result next to it.
// All arguments are checked before anything is written, so a failed Run leaves no output behind.
func Run(log logs.Log, inputFile string, options Options) (string, error) {
	mode, listFile, err := options.resolve()
	if err != nil {
		return "", err
	}
	if !iox.FileExists(inputFile) {
		return "", fmt.Errorf("%w: %v", ErrMissingFile, inputFile)
	}
	if !iox.FileExists(listFile) {
		return "", fmt.Errorf("%w: %v", ErrMissingFile, listFile)
	}

	names, err := iox.ReadCommaList(listFile)
	if err != nil {
		return "", fmt.Errorf("Error reading category list %v: %w", listFile, err)
	}
	ds, err := coco.Load(inputFile)
	if err != nil {
		return "", err
	}

	filtered := Filter(ds, mode, names)

	outputFile := OutputFilename(inputFile)
	if err := coco.Save(outputFile, filtered); err != nil {
		return "", err
	}
	log.Infof("Wrote %v: kept %v of %v categories, %v of %v annotations", outputFile,
		len(filtered.Categories), len(ds.Categories), len(filtered.Annotations), len(ds.Annotations))
	return outputFile, nil
}

func (o Options) resolve() (Mode, string, error) {
	switch {
	case o.RemoveFile != "" && o.KeepFile != "":
		return 0, "", ErrConflictingLists
	case o.RemoveFile != "":
		return ModeRemove, o.RemoveFile, nil
	case o.KeepFile != "":
		return ModeKeep, o.KeepFile, nil
	}
	return 0, "", ErrNoList
}

// Filter returns a copy of ds with a reduced category list, and only the annotations that
// refer to surviving categories. Info, licenses and images are passed through.
// An empty result is not an error: it produces a dataset with no categories and no annotations.
func Filter(ds *coco.Dataset, mode Mode, names []string) *coco.Dataset {
	categories := []coco.Category{}
	keepIDs := map[int]bool{}
	for _, cat := range ds.Categories {
		listed := slices.Contains(names, cat.Name)
		if (mode == ModeRemove && !listed) || (mode == ModeKeep && listed) {
			categories = append(categories, cat)
			keepIDs[cat.ID] = true
		}
	}

	annotations := []coco.Annotation{}
	for _, ann := range ds.Annotations {
		if keepIDs[ann.CategoryID] {
			annotations = append(annotations, ann)
		}
	}

	return &coco.Dataset{
		Info:        ds.Info,
		Images:      ds.Images,
		Annotations: annotations,
		Type:        coco.TypeInstances,
		Licenses:    ds.Licenses,
		Categories:  categories,
	}
}
