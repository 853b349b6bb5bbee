// Package cocoapi is a read-only index over a COCO annotation file.
// The query methods follow the semantics of the reference COCO API (getCatIds, getImgIds,
// getAnnIds, loadCats, loadImgs, loadAnns), so that files which pass here will also load
// in other COCO tooling.
package cocoapi

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cyclopcam/cococonv/pkg/coco"
)

var ErrMissingImages = errors.New("Dataset has no 'images' list")
var ErrMissingCategories = errors.New("Dataset has no 'categories' list")

// COCO is an index over a loaded dataset
type COCO struct {
	Dataset *coco.Dataset

	anns      map[int64]*coco.Annotation
	imgs      map[int64]*coco.Image
	cats      map[int]*coco.Category
	imgToAnns map[int64][]*coco.Annotation
	catToImgs map[int][]int64
}

// Open loads a dataset file and builds the index
func Open(filename string) (*COCO, error) {
	ds, err := coco.Load(filename)
	if err != nil {
		return nil, err
	}
	return New(ds)
}

// New builds the index over an in-memory dataset
func New(ds *coco.Dataset) (*COCO, error) {
	if ds.Images == nil {
		return nil, ErrMissingImages
	}
	if ds.Categories == nil {
		return nil, ErrMissingCategories
	}
	c := &COCO{
		Dataset:   ds,
		anns:      make(map[int64]*coco.Annotation, len(ds.Annotations)),
		imgs:      make(map[int64]*coco.Image, len(ds.Images)),
		cats:      make(map[int]*coco.Category, len(ds.Categories)),
		imgToAnns: map[int64][]*coco.Annotation{},
		catToImgs: map[int][]int64{},
	}
	for i := range ds.Annotations {
		ann := &ds.Annotations[i]
		c.anns[ann.ID] = ann
		c.imgToAnns[ann.ImageID] = append(c.imgToAnns[ann.ImageID], ann)
		c.catToImgs[ann.CategoryID] = append(c.catToImgs[ann.CategoryID], ann.ImageID)
	}
	for i := range ds.Images {
		c.imgs[ds.Images[i].ID] = &ds.Images[i]
	}
	for i := range ds.Categories {
		c.cats[ds.Categories[i].ID] = &ds.Categories[i]
	}
	return c, nil
}

// GetCatIDs returns the IDs of categories that satisfy all of the given filters.
// An empty filter matches everything.
func (c *COCO) GetCatIDs(names, supercategories []string, ids []int) []int {
	result := []int{}
	for _, cat := range c.Dataset.Categories {
		if len(names) != 0 && !slices.Contains(names, cat.Name) {
			continue
		}
		if len(supercategories) != 0 && !slices.Contains(supercategories, cat.Supercategory) {
			continue
		}
		if len(ids) != 0 && !slices.Contains(ids, cat.ID) {
			continue
		}
		result = append(result, cat.ID)
	}
	return result
}

// GetImgIDs returns the sorted IDs of images that are in imgIDs (if not empty),
// and contain at least one instance of every category in catIDs.
func (c *COCO) GetImgIDs(imgIDs []int64, catIDs []int) []int64 {
	if len(imgIDs) == 0 && len(catIDs) == 0 {
		all := make([]int64, 0, len(c.imgs))
		for id := range c.imgs {
			all = append(all, id)
		}
		slices.Sort(all)
		return all
	}
	ids := map[int64]bool{}
	for _, id := range imgIDs {
		ids[id] = true
	}
	for i, catID := range catIDs {
		withCat := map[int64]bool{}
		for _, id := range c.catToImgs[catID] {
			withCat[id] = true
		}
		if i == 0 && len(ids) == 0 {
			ids = withCat
			continue
		}
		for id := range ids {
			if !withCat[id] {
				delete(ids, id)
			}
		}
	}
	result := make([]int64, 0, len(ids))
	for id := range ids {
		result = append(result, id)
	}
	slices.Sort(result)
	return result
}

// AnnFilter restricts GetAnnIDs. The zero value matches all annotations.
type AnnFilter struct {
	ImgIDs  []int64
	CatIDs  []int
	AreaRng *[2]float64 // Inclusive [min, max]
	IsCrowd *int
}

// GetAnnIDs returns the IDs of annotations that satisfy the filter, in file order
// (or in the order of ImgIDs, if given).
func (c *COCO) GetAnnIDs(filter AnnFilter) []int64 {
	var candidates []*coco.Annotation
	if len(filter.ImgIDs) != 0 {
		for _, imgID := range filter.ImgIDs {
			candidates = append(candidates, c.imgToAnns[imgID]...)
		}
	} else {
		for i := range c.Dataset.Annotations {
			candidates = append(candidates, &c.Dataset.Annotations[i])
		}
	}
	result := []int64{}
	for _, ann := range candidates {
		if len(filter.CatIDs) != 0 && !slices.Contains(filter.CatIDs, ann.CategoryID) {
			continue
		}
		if filter.AreaRng != nil && (ann.Area < filter.AreaRng[0] || ann.Area > filter.AreaRng[1]) {
			continue
		}
		if filter.IsCrowd != nil && ann.IsCrowd != *filter.IsCrowd {
			continue
		}
		result = append(result, ann.ID)
	}
	return result
}

func (c *COCO) LoadCats(ids []int) ([]coco.Category, error) {
	result := make([]coco.Category, 0, len(ids))
	for _, id := range ids {
		cat, ok := c.cats[id]
		if !ok {
			return nil, fmt.Errorf("Unknown category id %v", id)
		}
		result = append(result, *cat)
	}
	return result, nil
}

func (c *COCO) LoadImgs(ids []int64) ([]coco.Image, error) {
	result := make([]coco.Image, 0, len(ids))
	for _, id := range ids {
		img, ok := c.imgs[id]
		if !ok {
			return nil, fmt.Errorf("Unknown image id %v", id)
		}
		result = append(result, *img)
	}
	return result, nil
}

func (c *COCO) LoadAnns(ids []int64) ([]coco.Annotation, error) {
	result := make([]coco.Annotation, 0, len(ids))
	for _, id := range ids {
		ann, ok := c.anns[id]
		if !ok {
			return nil, fmt.Errorf("Unknown annotation id %v", id)
		}
		result = append(result, *ann)
	}
	return result, nil
}
