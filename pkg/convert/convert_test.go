package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cyclopcam/cococonv/pkg/coco"
	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range AllKinds {
		parsed, err := ParseKind(string(k))
		require.NoError(t, err)
		require.Equal(t, k, parsed)
	}
	_, err := ParseKind("coco")
	require.Error(t, err)
}

func TestUnsupportedKinds(t *testing.T) {
	root := t.TempDir()
	for _, k := range []Kind{KindCaltechPedestrian, KindKitti, KindVkitti} {
		conv, err := New(logs.NewTestingLog(t), k, root, Options{})
		require.NoError(t, err)
		require.Equal(t, k, conv.Kind())
		require.ErrorIs(t, conv.Convert(), ErrNotSupported)
		require.Empty(t, conv.OutputFiles())
		require.Empty(t, conv.Validate())
	}
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Empty(t, entries)

	_, err = New(logs.NewTestingLog(t), Kind("bogus"), root, Options{})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	root := createTT100K(t, testImages)
	conv := convertTestDataset(t, root, Options{})

	reports := conv.Validate()
	require.Len(t, reports, 3)
	for _, r := range reports {
		require.True(t, r.OK(), r.Filename)
		require.Equal(t, []string{"pl80", "w57", "p5"}, r.Categories)
		require.Equal(t, []string{"none"}, r.Supercategories)
	}
	require.Equal(t, SplitTrain, reports[0].Split)
	require.Equal(t, 2, reports[0].NumImages)
	require.Equal(t, 3, reports[0].NumAnnotations)
	require.Equal(t, 1.5, reports[0].MeanAnnotationsPerImage)
	require.Equal(t, "pl80", reports[0].MostFrequentCategory)
	require.Equal(t, 1, reports[1].NumImages)
	require.Equal(t, 1, reports[1].NumAnnotations)
	require.Equal(t, 2, reports[2].NumImages)
	require.Equal(t, 2, reports[2].NumAnnotations)

	// A broken file only fails its own report
	require.NoError(t, os.WriteFile(conv.OutputFiles()[1].Filename, []byte("{"), 0644))
	reports = conv.Validate()
	require.Len(t, reports, 3)
	require.True(t, reports[0].OK())
	require.Error(t, reports[1].Err)
	require.False(t, reports[1].OK())
	require.True(t, reports[2].OK())
}

func TestValidateFileProblems(t *testing.T) {
	ds := &coco.Dataset{
		Images:      []coco.Image{coco.NewImage("1.jpg", 4, 4, 1), coco.NewImage("3.jpg", 0, 4, 3)},
		Annotations: []coco.Annotation{coco.NewAnnotation(1, 2, 5, 1, coco.BBox{0, 0, 1, 1}, 0)},
		Licenses:    []coco.License{},
		Categories:  []coco.Category{coco.NewCategory(1, "a", "x"), coco.NewCategory(2, "b", "y")},
	}
	filename := filepath.Join(t.TempDir(), "dangling.json")
	require.NoError(t, coco.Save(filename, ds))

	r := ValidateFile(logs.NewTestingLog(t), filename)
	require.NoError(t, r.Err)
	require.False(t, r.OK())
	kinds := []coco.ProblemKind{}
	for _, p := range r.Problems {
		kinds = append(kinds, p.Kind)
	}
	require.ElementsMatch(t, []coco.ProblemKind{coco.ProblemUnknownImage, coco.ProblemUnknownCategory, coco.ProblemEmptyImage}, kinds)
	require.Equal(t, 2, r.NumImages)
	require.Equal(t, []string{"x", "y"}, r.Supercategories)
	require.Equal(t, "", r.MostFrequentCategory)

	r = ValidateFile(logs.NewTestingLog(t), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, r.Err)
}

func TestOverfitSubset(t *testing.T) {
	root := createTT100K(t, testImages)
	conv, err := New(logs.NewTestingLog(t), KindTT100K, root, Options{})
	require.NoError(t, err)

	_, err = conv.CreateOverfitSubset(1)
	require.ErrorIs(t, err, ErrNotConverted)

	require.NoError(t, conv.Convert())
	_, err = conv.CreateOverfitSubset(0)
	require.Error(t, err)

	filename, err := conv.CreateOverfitSubset(1)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "tt100k_overfit.json"), filename)
	ds, err := coco.Load(filename)
	require.NoError(t, err)
	require.Len(t, ds.Images, 1)
	require.Equal(t, int64(1001), ds.Images[0].ID)
	require.Len(t, ds.Annotations, 2)
	require.Len(t, ds.Categories, 3)
	require.Empty(t, coco.CheckReferences(ds))

	// Asking for more images than exist gives all of them
	filename, err = conv.CreateOverfitSubset(100)
	require.NoError(t, err)
	ds, err = coco.Load(filename)
	require.NoError(t, err)
	require.Len(t, ds.Images, 2)
	require.Len(t, ds.Annotations, 3)
}
