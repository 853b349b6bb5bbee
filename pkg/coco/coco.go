// Package coco holds the MS-COCO style annotation schema that all of our dataset
// converters produce, plus the constructors and file I/O around it.
//
// A dataset file looks like this:
//
//	{
//	    "info":        {...},
//	    "images":      [{"file_name", "height", "width", "id"}, ...],
//	    "annotations": [{"id", "image_id", "category_id", "segmentation", "area", "bbox", "iscrowd"}, ...],
//	    "licenses":    [{"id", "name", "url"}, ...],
//	    "categories":  [{"id", "name", "supercategory"}, ...]
//	}
package coco

// SupercategoryNone is the supercategory of every category that has no natural grouping
const SupercategoryNone = "none"

// TypeInstances is written into the "type" field by tools that rewrite an existing dataset
const TypeInstances = "instances"

// DateCreatedFormat is the layout of Info.DateCreated
const DateCreatedFormat = "2006-01-02 15:04:05.000000"

type Info struct {
	Description string `json:"description"`
	URL         string `json:"url"`
	Version     int    `json:"version"`
	Year        int    `json:"year"`
	Contributor string `json:"contributor"`
	DateCreated string `json:"date_created"`
}

type License struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Category struct {
	ID            int    `json:"id"` // Dense, starting at 1
	Name          string `json:"name"`
	Supercategory string `json:"supercategory"`
}

type Image struct {
	FileName string `json:"file_name"`
	Height   int    `json:"height"`
	Width    int    `json:"width"`
	ID       int64  `json:"id"` // Parsed from the file name, see ImageIDFromFileName
}

// Annotation is a single object instance inside an image
type Annotation struct {
	ID           int64       `json:"id"`
	ImageID      int64       `json:"image_id"`
	CategoryID   int         `json:"category_id"`
	Segmentation [][]float64 `json:"segmentation"`
	Area         float64     `json:"area"`
	BBox         BBox        `json:"bbox"`
	IsCrowd      int         `json:"iscrowd"` // 0 = polygons, 1 = RLE. We only ever produce 0.
}

// Dataset is the top level container of a COCO annotation file
type Dataset struct {
	Info        *Info        `json:"info"`
	Images      []Image      `json:"images"`
	Annotations []Annotation `json:"annotations"`
	Type        string       `json:"type,omitempty"`
	Licenses    []License    `json:"licenses"`
	Categories  []Category   `json:"categories"`
}

// CategoryByName returns the category with the given name, or nil
func (d *Dataset) CategoryByName(name string) *Category {
	for i := range d.Categories {
		if d.Categories[i].Name == name {
			return &d.Categories[i]
		}
	}
	return nil
}

// CategoryNames returns the category names, in file order
func (d *Dataset) CategoryNames() []string {
	names := make([]string, 0, len(d.Categories))
	for _, c := range d.Categories {
		names = append(names, c.Name)
	}
	return names
}
