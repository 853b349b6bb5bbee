package coco

import "time"

// The constructors below perform no validation. Callers are responsible for passing sane values.

func NewCategory(id int, name, supercategory string) Category {
	return Category{
		ID:            id,
		Name:          name,
		Supercategory: supercategory,
	}
}

func NewImage(fileName string, height, width int, id int64) Image {
	return Image{
		FileName: fileName,
		Height:   height,
		Width:    width,
		ID:       id,
	}
}

// NewAnnotation creates an annotation without segmentation polygons.
// Segmentation is emitted as [[]], which is what COCO readers expect for "no polygon".
func NewAnnotation(id, imageID int64, categoryID int, area float64, bbox BBox, isCrowd int) Annotation {
	return Annotation{
		ID:           id,
		ImageID:      imageID,
		CategoryID:   categoryID,
		Segmentation: [][]float64{{}},
		Area:         area,
		BBox:         bbox,
		IsCrowd:      isCrowd,
	}
}

func NewLicense(id int, name, url string) License {
	return License{
		ID:   id,
		Name: name,
		URL:  url,
	}
}

type InfoOption func(info *Info)

func WithDescription(description string) InfoOption {
	return func(info *Info) { info.Description = description }
}

func WithURL(url string) InfoOption {
	return func(info *Info) { info.URL = url }
}

func WithVersion(version int) InfoOption {
	return func(info *Info) { info.Version = version }
}

func WithYear(year int) InfoOption {
	return func(info *Info) { info.Year = year }
}

func WithContributor(contributor string) InfoOption {
	return func(info *Info) { info.Contributor = contributor }
}

func WithDateCreated(t time.Time) InfoOption {
	return func(info *Info) { info.DateCreated = t.UTC().Format(DateCreatedFormat) }
}

// NewInfo creates an Info record. Year and version default to zero, the strings default to empty,
// and the creation date defaults to the current UTC time.
func NewInfo(options ...InfoOption) Info {
	info := Info{
		DateCreated: time.Now().UTC().Format(DateCreatedFormat),
	}
	for _, opt := range options {
		opt(&info)
	}
	return info
}
