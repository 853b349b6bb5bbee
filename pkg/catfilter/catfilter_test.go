package catfilter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cyclopcam/cococonv/pkg/coco"
	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
)

func testDataset() *coco.Dataset {
	info := coco.NewInfo(coco.WithDescription("test"))
	return &coco.Dataset{
		Info: &info,
		Images: []coco.Image{
			coco.NewImage("1.jpg", 10, 10, 1),
			coco.NewImage("2.jpg", 10, 10, 2),
		},
		Annotations: []coco.Annotation{
			coco.NewAnnotation(1, 1, 1, 1, coco.BBox{0, 0, 1, 1}, 0),
			coco.NewAnnotation(2, 1, 2, 1, coco.BBox{0, 0, 1, 1}, 0),
			coco.NewAnnotation(3, 2, 3, 1, coco.BBox{0, 0, 1, 1}, 0),
			coco.NewAnnotation(4, 2, 2, 1, coco.BBox{0, 0, 1, 1}, 0),
		},
		Licenses: []coco.License{coco.NewLicense(0, "", "")},
		Categories: []coco.Category{
			coco.NewCategory(1, "pl80", coco.SupercategoryNone),
			coco.NewCategory(2, "w57", coco.SupercategoryNone),
			coco.NewCategory(3, "p5", coco.SupercategoryNone),
		},
	}
}

func annotationIDs(ds *coco.Dataset) []int64 {
	ids := []int64{}
	for _, ann := range ds.Annotations {
		ids = append(ids, ann.ID)
	}
	return ids
}

func TestFilterRemove(t *testing.T) {
	ds := testDataset()
	out := Filter(ds, ModeRemove, []string{"w57", "not-a-category"})
	require.Equal(t, []string{"pl80", "p5"}, out.CategoryNames())
	require.Equal(t, []int64{1, 3}, annotationIDs(out))
	for _, ann := range out.Annotations {
		require.NotEqual(t, 2, ann.CategoryID)
	}
	require.Equal(t, ds.Images, out.Images)
	require.Equal(t, ds.Info, out.Info)
	require.Equal(t, ds.Licenses, out.Licenses)
	require.Equal(t, coco.TypeInstances, out.Type)

	// The input is not modified
	require.Len(t, ds.Categories, 3)
	require.Len(t, ds.Annotations, 4)
}

func TestFilterKeep(t *testing.T) {
	ds := testDataset()

	// Keeping every category is a no-op
	out := Filter(ds, ModeKeep, ds.CategoryNames())
	require.Equal(t, ds.Categories, out.Categories)
	require.Equal(t, ds.Annotations, out.Annotations)

	// Names that aren't present are ignored, and file order is preserved
	out = Filter(ds, ModeKeep, []string{"p5", "nope", "pl80"})
	require.Equal(t, []string{"pl80", "p5"}, out.CategoryNames())
	require.Equal(t, []int64{1, 3}, annotationIDs(out))

	// An empty result is valid
	out = Filter(ds, ModeKeep, []string{"nope"})
	require.Empty(t, out.Categories)
	require.Empty(t, out.Annotations)
	require.Len(t, out.Images, 2)
}

type runFixture struct {
	dir   string
	input string
}

func newRunFixture(t *testing.T) runFixture {
	dir := t.TempDir()
	input := filepath.Join(dir, "tt100k_test.json")
	require.NoError(t, coco.Save(input, testDataset()))
	return runFixture{dir: dir, input: input}
}

func (f runFixture) writeList(t *testing.T, name, content string) string {
	filename := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func TestRun(t *testing.T) {
	f := newRunFixture(t)
	remove := f.writeList(t, "remove.txt", "w57,p5\n")

	output, err := Run(logs.NewTestingLog(t), f.input, Options{RemoveFile: remove})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(f.dir, "tt100k_test_ignore.json"), output)

	ds, err := coco.Load(output)
	require.NoError(t, err)
	require.Equal(t, []string{"pl80"}, ds.CategoryNames())
	require.Equal(t, []int64{1}, annotationIDs(ds))
	require.Equal(t, coco.TypeInstances, ds.Type)
	require.Empty(t, coco.CheckReferences(ds))

	// The input is left untouched
	orig, err := coco.Load(f.input)
	require.NoError(t, err)
	require.Equal(t, testDataset().Categories, orig.Categories)
	require.Equal(t, "", orig.Type)
}

func TestRunKeepAll(t *testing.T) {
	f := newRunFixture(t)
	keep := f.writeList(t, "keep.txt", "pl80,w57,p5")
	output, err := Run(logs.NewTestingLog(t), f.input, Options{KeepFile: keep})
	require.NoError(t, err)

	in, err := coco.Load(f.input)
	require.NoError(t, err)
	out, err := coco.Load(output)
	require.NoError(t, err)
	require.Equal(t, in.Categories, out.Categories)
	require.Equal(t, in.Annotations, out.Annotations)
	require.Equal(t, in.Images, out.Images)
}

func TestRunErrors(t *testing.T) {
	f := newRunFixture(t)
	keep := f.writeList(t, "keep.txt", "pl80")
	remove := f.writeList(t, "remove.txt", "w57")
	log := logs.NewTestingLog(t)

	_, err := Run(log, f.input, Options{KeepFile: keep, RemoveFile: remove})
	require.ErrorIs(t, err, ErrConflictingLists)

	_, err = Run(log, f.input, Options{})
	require.ErrorIs(t, err, ErrNoList)

	_, err = Run(log, f.input, Options{KeepFile: filepath.Join(f.dir, "missing.txt")})
	require.ErrorIs(t, err, ErrMissingFile)

	_, err = Run(log, filepath.Join(f.dir, "missing.json"), Options{KeepFile: keep})
	require.ErrorIs(t, err, ErrMissingFile)

	require.NoFileExists(t, OutputFilename(f.input))
}

func TestOutputFilename(t *testing.T) {
	require.Equal(t, "/data/tt100k_test_ignore.json", OutputFilename("/data/tt100k_test.json"))
	require.Equal(t, "/data/v1.2/test_ignore.json", OutputFilename("/data/v1.2/test.json"))
	require.Equal(t, "noext_ignore.json", OutputFilename("noext"))
}
