package convert

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cyclopcam/cococonv/pkg/coco"
	"github.com/cyclopcam/cococonv/pkg/cocoapi"
	"github.com/cyclopcam/cococonv/pkg/stats"
	"github.com/cyclopcam/logs"
)

// ValidationReport is what we learned by loading one COCO file through the COCO reader
type ValidationReport struct {
	Split                   Split // Empty when the file didn't come from a converter
	Filename                string
	Categories              []string
	Supercategories         []string // Unique, sorted
	NumImages               int
	NumAnnotations          int
	MeanAnnotationsPerImage float64
	MeanBoxArea             float64
	StdDevBoxArea           float64
	MostFrequentCategory    string
	Problems                []coco.Problem // Integrity violations and empty images
	Err                     error          // If not nil, validation of this file was aborted
}

// OK is true if the file loaded, and has no integrity problems
func (r *ValidationReport) OK() bool {
	return r.Err == nil && len(r.Problems) == 0
}

func (b *base) Validate() []*ValidationReport {
	reports := []*ValidationReport{}
	for _, out := range b.outputs {
		r := ValidateFile(b.log, out.Filename)
		r.Split = out.Split
		reports = append(reports, r)
	}
	return reports
}

// ValidateFile loads a COCO file and reports its statistics.
// Failures are recorded in the report's Err, and are also logged.
func ValidateFile(log logs.Log, filename string) *ValidationReport {
	r := &ValidationReport{
		Filename: filename,
	}
	if err := validateInto(r, filename); err != nil {
		r.Err = err
		log.Errorf("Validation of %v failed: %v", filename, err)
		return r
	}

	log.Infof("%v", filename)
	log.Infof("  Categories: %v", strings.Join(r.Categories, " "))
	log.Infof("  Supercategories: %v", strings.Join(r.Supercategories, " "))
	log.Infof("  Images: %v", r.NumImages)
	log.Infof("  Annotations: %v (%.2f per image, most frequent '%v')", r.NumAnnotations, r.MeanAnnotationsPerImage, r.MostFrequentCategory)
	log.Infof("  Box area: mean %.1f, stddev %.1f", r.MeanBoxArea, r.StdDevBoxArea)
	for _, p := range r.Problems {
		log.Warnf("  %v", p.Error())
	}
	return r
}

func validateInto(r *ValidationReport, filename string) error {
	c, err := cocoapi.Open(filename)
	if err != nil {
		return err
	}

	cats, err := c.LoadCats(c.GetCatIDs(nil, nil, nil))
	if err != nil {
		return err
	}
	catNames := map[int]string{}
	supercategories := map[string]bool{}
	for _, cat := range cats {
		r.Categories = append(r.Categories, cat.Name)
		catNames[cat.ID] = cat.Name
		supercategories[cat.Supercategory] = true
	}
	for sup := range supercategories {
		r.Supercategories = append(r.Supercategories, sup)
	}
	slices.Sort(r.Supercategories)

	imgIDs := c.GetImgIDs(nil, nil)
	imgs, err := c.LoadImgs(imgIDs)
	if err != nil {
		return err
	}
	r.NumImages = len(imgs)
	var emptyImages []coco.Problem
	for _, img := range imgs {
		if img.Width <= 0 || img.Height <= 0 {
			emptyImages = append(emptyImages, coco.Problem{Kind: coco.ProblemEmptyImage, ID: img.ID})
		}
	}

	anns, err := c.LoadAnns(c.GetAnnIDs(cocoapi.AnnFilter{}))
	if err != nil {
		return fmt.Errorf("Failed to load annotations: %w", err)
	}
	r.NumAnnotations = len(anns)

	perImage := make([]int, 0, len(imgIDs))
	for _, id := range imgIDs {
		perImage = append(perImage, len(c.GetAnnIDs(cocoapi.AnnFilter{ImgIDs: []int64{id}})))
	}
	r.MeanAnnotationsPerImage = stats.Mean(perImage)

	areas := make([]float64, 0, len(anns))
	catIDs := make([]int, 0, len(anns))
	for _, ann := range anns {
		areas = append(areas, ann.Area)
		catIDs = append(catIDs, ann.CategoryID)
	}
	r.MeanBoxArea = stats.Mean(areas)
	r.StdDevBoxArea = stats.StdDev(areas)
	if mode, count := stats.Mode(catIDs); count != 0 {
		r.MostFrequentCategory = catNames[mode]
	}

	r.Problems = append(coco.CheckReferences(c.Dataset), emptyImages...)
	return nil
}
