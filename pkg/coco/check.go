package coco

import "fmt"

// Problem is something wrong with a dataset's records or the references between them
type Problem struct {
	Kind ProblemKind
	ID   int64 // ID of the offending record (annotation, image, or category)
	Ref  int64 // The dangling or duplicated value
}

type ProblemKind int

const (
	ProblemUnknownImage       ProblemKind = iota // annotation.image_id not in images
	ProblemUnknownCategory                       // annotation.category_id not in categories
	ProblemDuplicateImage                        // two images with the same id
	ProblemDuplicateCategory                     // two categories with the same id or name
	ProblemDuplicateAnnotation                   // two annotations with the same id
	ProblemEmptyImage                            // image with zero width or height
)

func (p Problem) Error() string {
	switch p.Kind {
	case ProblemUnknownImage:
		return fmt.Sprintf("Annotation %v references unknown image %v", p.ID, p.Ref)
	case ProblemUnknownCategory:
		return fmt.Sprintf("Annotation %v references unknown category %v", p.ID, p.Ref)
	case ProblemDuplicateImage:
		return fmt.Sprintf("Duplicate image id %v", p.Ref)
	case ProblemDuplicateCategory:
		return fmt.Sprintf("Duplicate category %v", p.Ref)
	case ProblemDuplicateAnnotation:
		return fmt.Sprintf("Duplicate annotation id %v", p.Ref)
	case ProblemEmptyImage:
		return fmt.Sprintf("Image %v has no pixels", p.ID)
	}
	return fmt.Sprintf("Unknown problem %v", p.Kind)
}

// CheckReferences verifies that IDs are unique, and that every annotation refers to an image
// and a category inside the same dataset.
func CheckReferences(ds *Dataset) []Problem {
	problems := []Problem{}

	images := make(map[int64]bool, len(ds.Images))
	for _, img := range ds.Images {
		if images[img.ID] {
			problems = append(problems, Problem{Kind: ProblemDuplicateImage, ID: img.ID, Ref: img.ID})
		}
		images[img.ID] = true
	}

	categories := make(map[int]bool, len(ds.Categories))
	categoryNames := make(map[string]bool, len(ds.Categories))
	for _, cat := range ds.Categories {
		if categories[cat.ID] || categoryNames[cat.Name] {
			problems = append(problems, Problem{Kind: ProblemDuplicateCategory, ID: int64(cat.ID), Ref: int64(cat.ID)})
		}
		categories[cat.ID] = true
		categoryNames[cat.Name] = true
	}

	annotations := make(map[int64]bool, len(ds.Annotations))
	for _, ann := range ds.Annotations {
		if annotations[ann.ID] {
			problems = append(problems, Problem{Kind: ProblemDuplicateAnnotation, ID: ann.ID, Ref: ann.ID})
		}
		annotations[ann.ID] = true
		if !images[ann.ImageID] {
			problems = append(problems, Problem{Kind: ProblemUnknownImage, ID: ann.ID, Ref: ann.ImageID})
		}
		if !categories[ann.CategoryID] {
			problems = append(problems, Problem{Kind: ProblemUnknownCategory, ID: ann.ID, Ref: int64(ann.CategoryID)})
		}
	}

	return problems
}
