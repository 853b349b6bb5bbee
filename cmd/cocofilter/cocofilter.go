package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/cococonv/pkg/catfilter"
	"github.com/cyclopcam/logs"
)

func main() {
	parser := argparse.NewParser("cocofilter", "Remove categories that should be ignored during testing from a COCO annotation file")
	jsonFile := parser.String("j", "json", &argparse.Options{Help: "COCO annotation file", Required: true})
	removeFile := parser.String("r", "remove", &argparse.Options{Help: "Text file with comma-separated categories to remove", Default: ""})
	keepFile := parser.String("k", "keep", &argparse.Options{Help: "Text file with comma-separated categories to keep", Default: ""})
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

	_, err = catfilter.Run(logger, *jsonFile, catfilter.Options{
		RemoveFile: *removeFile,
		KeepFile:   *keepFile,
	})
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
