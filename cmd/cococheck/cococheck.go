package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/cococonv/pkg/convert"
	"github.com/cyclopcam/logs"
)

func main() {
	parser := argparse.NewParser("cococheck", "Load COCO annotation files and print their statistics")
	jsonFiles := parser.StringList("j", "json", &argparse.Options{Help: "COCO annotation file (may be repeated)", Required: true})
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

	failed := 0
	for _, f := range *jsonFiles {
		if r := convert.ValidateFile(logger, f); !r.OK() {
			failed++
		}
	}
	if failed != 0 {
		logger.Errorf("%v of %v files failed validation", failed, len(*jsonFiles))
		os.Exit(1)
	}
}
