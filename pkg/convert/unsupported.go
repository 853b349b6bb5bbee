package convert

import (
	"fmt"

	"github.com/cyclopcam/logs"
)

// unsupported is a dataset type that we recognize, but cannot convert yet.
// Convert always fails, so that nobody mistakes an empty output for a successful conversion.
type unsupported struct {
	base
}

func newUnsupported(log logs.Log, kind Kind, rootDir, filePrefix string) *unsupported {
	return &unsupported{
		base: base{
			log:        log,
			kind:       kind,
			rootDir:    rootDir,
			filePrefix: filePrefix,
		},
	}
}

func (u *unsupported) Convert() error {
	return fmt.Errorf("%w: %v", ErrNotSupported, u.kind)
}
