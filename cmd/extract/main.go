package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/config"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/extract"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/platform"
)

func main() {
	var (
		url        = flag.String("url", "", "Video or article URL")
		format     = flag.String("format", "text", "Output format: text, json")
		outputFile = flag.String("o", "", "Output file (default: stdout)")
		timeout    = flag.Duration("timeout", 5*time.Minute, "Overall extraction timeout")
		verbose    = flag.Bool("v", false, "Verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -url https://www.youtube.com/watch?v=xxx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -url https://example.com/article -format json\n", os.Args[0])
	}

	flag.Parse()

	if *url == "" {
		fmt.Fprintf(os.Stderr, "Error: URL is required\n\n")
		flag.Usage()
		os.Exit(1)
	}
	if *format != "text" && *format != "json" {
		fmt.Fprintf(os.Stderr, "Error: Invalid format '%s'. Must be: text or json\n", *format)
		os.Exit(1)
	}

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).Level(level)

	cfg := config.Load()

	extractor, err := extract.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	kind := platform.Classify(*url)
	if *verbose {
		fmt.Fprintf(os.Stderr, "Extracting %s (%s)\n", *url, kind.String())
	}

	content := extractor.Extract(ctx, *url)

	var output string
	switch *format {
	case "json":
		data, err := json.MarshalIndent(map[string]string{
			"url":      *url,
			"platform": kind.String(),
			"source":   string(content.Source),
			"content":  content.Text,
		}, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
			os.Exit(1)
		}
		output = string(data)
	default:
		output = content.Text
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output+"\n"), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to write output: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Written to %s\n", *outputFile)
		return
	}

	fmt.Println(output)
}
