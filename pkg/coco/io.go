package coco

import (
	"fmt"

	"github.com/cyclopcam/cococonv/pkg/iox"
)

// Load reads a dataset file
func Load(filename string) (*Dataset, error) {
	ds := &Dataset{}
	if err := iox.ReadJSONFile(filename, ds); err != nil {
		return nil, fmt.Errorf("Error loading COCO dataset %v: %w", filename, err)
	}
	return ds, nil
}

// Save writes a dataset file. The file is replaced atomically.
func Save(filename string, ds *Dataset) error {
	if err := iox.WriteJSONFile(filename, ds); err != nil {
		return fmt.Errorf("Error writing COCO dataset %v: %w", filename, err)
	}
	return nil
}
