package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/YounGuru03/FormulaSnap/internal/imaging"
	"github.com/YounGuru03/FormulaSnap/internal/ocr"
	"github.com/YounGuru03/FormulaSnap/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	debug := os.Getenv("FORMULASNAP_LOG_LEVEL") == "debug"

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("formulasnap %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
	case "--help", "-h", "help":
		printHelp()
	case "info":
		runInfo()
	case "recognize":
		if err := runRecognize(os.Args[2:], debug); err != nil {
			log.Fatalf("recognize: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(2)
	}
}

func printHelp() {
	fmt.Println("formulasnap - math formula image to LaTeX and Typst")
	fmt.Println()
	fmt.Println("Usage: formulasnap <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  recognize <image>   Recognize the formula in an image file")
	fmt.Println("  info                Report recognition engine availability")
	fmt.Println("  version             Print version information")
	fmt.Println("  help                Print this help message")
	fmt.Println()
	fmt.Println("Recognize flags:")
	fmt.Println("  -latex-out <file>          Write the LaTeX result (raw text)")
	fmt.Println("  -typst-out <file>          Write the Typst result (raw text)")
	fmt.Println("  -dump-preprocessed <file>  Write the normalized bitmap")
	fmt.Println("  -lang <code>               Engine language code (default eng)")
	fmt.Println("  -no-engine                 Skip the engine, use the fallback")
	fmt.Println("  -trim                      Crop uniform margins first")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  FORMULASNAP_LOG_LEVEL=debug    Enable debug logging")
}

// runInfo prints the recognition engine availability report as JSON.
func runInfo() {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ocr.Info()); err != nil {
		log.Fatalf("info: %v", err)
	}
}

func runRecognize(args []string, debug bool) error {
	fs := flag.NewFlagSet("recognize", flag.ExitOnError)
	latexOut := fs.String("latex-out", "", "write the LaTeX result to this file (raw text)")
	typstOut := fs.String("typst-out", "", "write the Typst result to this file (raw text)")
	dump := fs.String("dump-preprocessed", "", "write the normalized bitmap to this file")
	lang := fs.String("lang", "eng", "recognition engine language code")
	noEngine := fs.Bool("no-engine", false, "skip the recognition engine, answer from the heuristic fallback")
	trim := fs.Bool("trim", false, "crop uniform margins before recognition")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: formulasnap recognize [flags] <image>")
	}

	img, info, err := imaging.LoadFileInfo(fs.Arg(0))
	if err != nil {
		return err
	}
	if debug {
		log.Printf("loaded %s: %dx%d %s %s", fs.Arg(0), info.Width, info.Height, info.Format, info.ColorDepth)
	}

	img = imaging.EnsureDarkOnLight(img)
	if *trim {
		img = imaging.TrimToContent(img, 4)
	}

	var engine ocr.Engine
	if !*noEngine {
		if engineInfo := ocr.Info(); engineInfo.Available {
			engine = &ocr.TesseractEngine{Language: *lang}
			if debug {
				log.Printf("recognition engine: %s %s", engineInfo.Backend, engineInfo.Version)
			}
		} else if debug {
			// Engine unavailability is not an error; degrade silently.
			log.Printf("recognition engine unavailable, using fallback: %s", engineInfo.Error)
		}
	}

	runner := pipeline.NewRunner(engine, pipeline.Hooks{})
	res, err := runner.Run(context.Background(), img)
	if err != nil {
		return err
	}
	if debug {
		log.Printf("recognized via %s in %s (fallback=%v)", res.Engine, res.Duration, res.Fallback)
	}

	fmt.Printf("LaTeX: %s\n", res.LaTeX)
	fmt.Printf("Typst: %s\n", res.Typst)

	if *latexOut != "" {
		if err := pipeline.WriteNotation(res.LaTeX, *latexOut); err != nil {
			return err
		}
	}
	if *typstOut != "" {
		if err := pipeline.WriteNotation(res.Typst, *typstOut); err != nil {
			return err
		}
	}
	if *dump != "" {
		if err := imaging.SaveImage(res.Normalized, *dump); err != nil {
			return err
		}
	}
	return nil
}
