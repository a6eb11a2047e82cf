package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/textsieve/textsieve"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version information")
	language := flag.String("lang", textsieve.DefaultLanguage, "trained OCR dictionary identifier")
	stageOne := flag.String("classifier-nm1", "", "path to the stage-1 cascade classifier")
	stageTwo := flag.String("classifier-nm2", "", "path to the stage-2 cascade classifier")
	grouping := flag.String("classifier-grouping", "", "path to the grouping classifier")
	normalize := flag.Bool("normalize", false, "drop repeated words from the result")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "textsieve - read machine-printed text from noisy images")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: textsieve [options] image...")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("textsieve %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	opts := []textsieve.Option{textsieve.WithLanguage(*language)}
	if *stageOne != "" || *stageTwo != "" || *grouping != "" {
		opts = append(opts, textsieve.WithClassifiers(*stageOne, *stageTwo, *grouping))
	}
	if *normalize {
		opts = append(opts, textsieve.WithWordNormalization())
	}

	recognizer, err := textsieve.New(opts...)
	if err != nil {
		log.Fatalf("failed to create recognizer: %v", err)
	}

	exitCode := 0
	for _, path := range flag.Args() {
		text, err := recognizer.FromFile(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			exitCode = 1
			continue
		}
		if flag.NArg() > 1 {
			fmt.Printf("%s: %s\n", path, text)
		} else {
			fmt.Println(text)
		}
	}
	os.Exit(exitCode)
}
