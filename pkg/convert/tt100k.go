package convert

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/cyclopcam/cococonv/pkg/coco"
	"github.com/cyclopcam/cococonv/pkg/idgen"
	"github.com/cyclopcam/cococonv/pkg/imgsize"
	"github.com/cyclopcam/cococonv/pkg/iox"
	"github.com/cyclopcam/cococonv/pkg/perfstats"
	"github.com/cyclopcam/logs"
)

// TT100K (Tsinghua-Tencent 100K traffic signs) layout:
//
//	<root>/annotations.json
//	<root>/train/ids.txt, <root>/train/<id>.jpg
//	<root>/test/ids.txt,  <root>/test/<id>.jpg
//	<root>/other/ids.txt, <root>/other/<id>.jpg
//
// annotations.json:
//
//	{
//	  "imgs": {"<id>": {"path": "train/<id>.jpg", "objects": [{"category": "pl80", "bbox": {"xmin", "ymin", "xmax", "ymax"}}]}},
//	  "types": ["pl80", "w57", ...]
//	}
type tt100kSource struct {
	Imgs  map[string]tt100kImage `json:"imgs"`
	Types []string               `json:"types"`
}

type tt100kImage struct {
	Path    string         `json:"path"`
	Objects []tt100kObject `json:"objects"`
}

type tt100kObject struct {
	Category string       `json:"category"`
	BBox     coco.Corners `json:"bbox"`
}

type tt100kSplit struct {
	split Split
	dir   string // Directory name inside the dataset root, which also names the output file
}

// Splits are processed in this order, and annotation IDs continue from one split into the next
var tt100kSplits = []tt100kSplit{
	{SplitTrain, "train"},
	{SplitTest, "test"},
	{SplitValidation, "other"},
}

const tt100kAnnotationsFile = "annotations.json"
const tt100kIDsFile = "ids.txt"

type TT100K struct {
	base
	options Options
	annIDs  idgen.Counter // Shared by all splits of a single Convert
}

func newTT100K(log logs.Log, rootDir string, options Options) *TT100K {
	return &TT100K{
		base: base{
			log:        log,
			kind:       KindTT100K,
			rootDir:    rootDir,
			filePrefix: "tt100k",
		},
		options: options,
	}
}

func (t *TT100K) Convert() error {
	// Check for all required inputs before doing any work
	srcFile := filepath.Join(t.rootDir, tt100kAnnotationsFile)
	if !iox.FileExists(srcFile) {
		return fmt.Errorf("%w: %v", ErrMissingInput, srcFile)
	}
	for _, s := range tt100kSplits {
		idsFile := filepath.Join(t.rootDir, s.dir, tt100kIDsFile)
		if !iox.FileExists(idsFile) {
			return fmt.Errorf("%w: %v", ErrMissingInput, idsFile)
		}
	}

	src := &tt100kSource{}
	if err := iox.ReadJSONFile(srcFile, src); err != nil {
		return fmt.Errorf("Error loading %v: %w", srcFile, err)
	}

	info := coco.NewInfo()
	licenses := []coco.License{coco.NewLicense(0, "", "")}
	categories := make([]coco.Category, 0, len(src.Types))
	seen := map[string]bool{}
	for _, name := range src.Types {
		if seen[name] {
			t.log.Warnf("Category '%v' is listed more than once in %v. Ignoring the repeat", name, srcFile)
			continue
		}
		seen[name] = true
		categories = append(categories, coco.NewCategory(len(categories)+1, name, coco.SupercategoryNone))
	}

	t.annIDs = idgen.Counter{}
	t.outputs = nil

	// Build everything in memory first, so that a failure in a later split doesn't leave
	// earlier splits on disk from a half-finished run.
	datasets := make([]*coco.Dataset, 0, len(tt100kSplits))
	for _, s := range tt100kSplits {
		ds := &coco.Dataset{
			Info:        &info,
			Images:      []coco.Image{},
			Annotations: []coco.Annotation{},
			Licenses:    licenses,
			Categories:  categories,
		}
		if err := t.convertSplit(src, s, ds); err != nil {
			return err
		}
		datasets = append(datasets, ds)
	}

	// Stage every file before renaming any of them into place
	staged := &iox.Staged{}
	defer staged.Abort()
	outputs := make([]OutputFile, 0, len(tt100kSplits))
	for i, s := range tt100kSplits {
		filename := t.outputFilename(s.dir)
		if err := staged.WriteJSONFile(filename, datasets[i]); err != nil {
			return fmt.Errorf("Error writing COCO dataset %v: %w", filename, err)
		}
		outputs = append(outputs, OutputFile{Split: s.split, Filename: filename})
	}
	if err := staged.Commit(); err != nil {
		return err
	}
	for i, out := range outputs {
		t.log.Infof("Wrote %v (%v images, %v annotations)", out.Filename, len(datasets[i].Images), len(datasets[i].Annotations))
	}
	t.outputs = outputs
	return nil
}

func (t *TT100K) convertSplit(src *tt100kSource, s tt100kSplit, ds *coco.Dataset) error {
	splitLog := logs.NewPrefixLogger(t.log, fmt.Sprintf("%v %v:", t.kind, s.dir))

	idsFile := filepath.Join(t.rootDir, s.dir, tt100kIDsFile)
	keys, err := iox.ReadLines(idsFile)
	if err != nil {
		return fmt.Errorf("Error reading %v: %w", idsFile, err)
	}

	categoryIDs := make(map[string]int, len(ds.Categories))
	for _, cat := range ds.Categories {
		if _, exists := categoryIDs[cat.Name]; !exists {
			categoryIDs[cat.Name] = cat.ID
		}
	}

	nMissing := 0
	nUnknown := 0
	readTime := perfstats.TimeAccumulator{}
	for _, key := range keys {
		img, ok := src.Imgs[key]
		if !ok {
			return fmt.Errorf("Image '%v' listed in %v is not in %v", key, idsFile, tt100kAnnotationsFile)
		}
		fileName := path.Base(img.Path)
		imgFile := filepath.Join(t.rootDir, s.dir, fileName)
		if !iox.FileExists(imgFile) {
			splitLog.Warnf("Image file %v does not exist. Skipping image '%v'", imgFile, key)
			nMissing++
			continue
		}
		var size imgsize.Size
		if err := readTime.Time(func() (err error) {
			size, err = imgsize.ReadFile(imgFile)
			return
		}); err != nil {
			return err
		}
		imageID, err := coco.ImageIDFromFileName(fileName)
		if err != nil {
			return err
		}
		ds.Images = append(ds.Images, coco.NewImage(fileName, size.Height, size.Width, imageID))

		for _, obj := range img.Objects {
			categoryID, ok := categoryIDs[obj.Category]
			if !ok {
				if !t.options.SkipUnknownCategories {
					return fmt.Errorf("%w '%v' in image '%v'", ErrUnknownCategory, obj.Category, key)
				}
				splitLog.Warnf("Skipping object of unknown category '%v' in image '%v'", obj.Category, key)
				nUnknown++
				continue
			}
			bbox := obj.BBox.ToBBox()
			ds.Annotations = append(ds.Annotations, coco.NewAnnotation(t.annIDs.Next(), imageID, categoryID, bbox.Area(), bbox, 0))
		}
	}

	splitLog.Infof("%v images, %v annotations, %v missing images, %v unknown objects", len(ds.Images), len(ds.Annotations), nMissing, nUnknown)
	splitLog.Debugf("Image size lookup: %v average over %v images", readTime.Average(), readTime.Samples)
	return nil
}
