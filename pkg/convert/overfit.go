package convert

import (
	"errors"
	"fmt"

	"github.com/cyclopcam/cococonv/pkg/coco"
)

func (b *base) CreateOverfitSubset(numImages int) (string, error) {
	if numImages <= 0 {
		return "", fmt.Errorf("Overfit subset needs at least one image, not %v", numImages)
	}
	train, ok := b.outputFor(SplitTrain)
	if !ok {
		return "", ErrNotConverted
	}
	ds, err := coco.Load(train.Filename)
	if err != nil {
		return "", err
	}
	if len(ds.Images) == 0 {
		return "", errors.New("Training split has no images")
	}
	subset := OverfitSubset(ds, numImages)
	filename := b.outputFilename("overfit")
	if err := coco.Save(filename, subset); err != nil {
		return "", err
	}
	b.log.Infof("Wrote %v (%v images, %v annotations)", filename, len(subset.Images), len(subset.Annotations))
	return filename, nil
}

// OverfitSubset returns the first numImages images of ds, with their annotations.
// Categories, info and licenses are shared with ds.
func OverfitSubset(ds *coco.Dataset, numImages int) *coco.Dataset {
	numImages = min(numImages, len(ds.Images))
	images := append([]coco.Image{}, ds.Images[:numImages]...)
	keep := make(map[int64]bool, numImages)
	for _, img := range images {
		keep[img.ID] = true
	}
	annotations := []coco.Annotation{}
	for _, ann := range ds.Annotations {
		if keep[ann.ImageID] {
			annotations = append(annotations, ann)
		}
	}
	return &coco.Dataset{
		Info:        ds.Info,
		Images:      images,
		Annotations: annotations,
		Licenses:    ds.Licenses,
		Categories:  ds.Categories,
	}
}
