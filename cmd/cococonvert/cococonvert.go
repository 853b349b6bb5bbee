package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/cococonv/pkg/config"
	"github.com/cyclopcam/cococonv/pkg/convert"
	"github.com/cyclopcam/logs"
)

func main() {
	parser := argparse.NewParser("cococonvert", "Convert a dataset to MS-COCO style annotation files")
	dataDir := parser.String("d", "datadir", &argparse.Options{Help: "Root directory of the dataset (default $COCOCONV_DATADIR)", Required: false})
	dsType := parser.String("t", "type", &argparse.Options{Help: fmt.Sprintf("Dataset type %v (default $COCOCONV_TYPE)", convert.AllKinds), Required: false})
	jobFile := parser.String("c", "config", &argparse.Options{Help: "YAML job file. Command line arguments override its values", Required: false})
	check := parser.Flag("", "check", &argparse.Options{Help: "Validate the output files through the COCO reader", Default: false})
	overfit := parser.Int("", "overfit", &argparse.Options{Help: "Also write an overfitting subset with this many training images", Default: 0})
	skipUnknown := parser.Flag("", "skip-unknown", &argparse.Options{Help: "Skip objects whose category is unknown, instead of failing", Default: false})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	job := &config.Job{}
	if *jobFile != "" {
		if job, err = config.LoadJob(*jobFile); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
	}
	if *dataDir != "" {
		job.DataDir = *dataDir
	}
	if *dsType != "" {
		job.Type = *dsType
	}
	if *overfit != 0 {
		job.OverfitImages = *overfit
	}
	job.Check = job.Check || *check
	job.SkipUnknownCategories = job.SkipUnknownCategories || *skipUnknown

	env, err := config.LoadEnv(".env")
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	job.ApplyEnv(env)

	if err := job.Validate(); err != nil {
		logger.Errorf("%v", err)
		fmt.Print(parser.Usage(nil))
		os.Exit(1)
	}

	if err := run(logger, job); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(logger logs.Log, job *config.Job) error {
	kind, err := convert.ParseKind(job.Type)
	if err != nil {
		return err
	}
	conv, err := convert.New(logger, kind, job.DataDir, convert.Options{SkipUnknownCategories: job.SkipUnknownCategories})
	if err != nil {
		return err
	}
	if err := conv.Convert(); err != nil {
		return err
	}

	if job.Check {
		failed := 0
		for _, r := range conv.Validate() {
			if !r.OK() {
				failed++
			}
		}
		if failed != 0 {
			logger.Warnf("%v of %v output files failed validation", failed, len(conv.OutputFiles()))
		}
	}

	if job.OverfitImages > 0 {
		if _, err := conv.CreateOverfitSubset(job.OverfitImages); err != nil {
			return err
		}
	}
	return nil
}
